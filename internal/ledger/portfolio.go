package ledger

import (
	"context"
	"sort"
	"time"

	"paper-trader/internal/models"
)

// PositionWeight is one position's contribution to the portfolio.
type PositionWeight struct {
	Symbol              string  `json:"symbol"`
	Value               float64 `json:"value"`
	Weight              float64 `json:"weight"`
	UnrealizedPL        float64 `json:"unrealized_pl"`
	UnrealizedPLPercent float64 `json:"unrealized_pl_percent"`
}

// DailyPLStats aggregates realized P&L across all recorded days.
type DailyPLStats struct {
	Avg   float64 `json:"avg"`
	Best  float64 `json:"best"`
	Worst float64 `json:"worst"`
}

// PortfolioSummary is the read-side analysis of an account. Empty is set when
// there are no positions to analyze.
type PortfolioSummary struct {
	Empty bool `json:"empty"`

	TotalValue               float64 `json:"total_value"`
	Cash                     float64 `json:"cash"`
	CashPercent              float64 `json:"cash_percent"`
	Invested                 float64 `json:"invested"`
	InvestedPercent          float64 `json:"invested_percent"`
	TotalUnrealizedPL        float64 `json:"total_unrealized_pl"`
	TotalUnrealizedPLPercent float64 `json:"total_unrealized_pl_percent"`
	NumPositions             int     `json:"num_positions"`

	// Positions are sorted by market value, descending.
	Positions        []PositionWeight `json:"positions"`
	MostConcentrated *PositionWeight  `json:"most_concentrated,omitempty"`
	DailyPL          *DailyPLStats    `json:"daily_pl,omitempty"`
}

// RefreshPrices returns a copy of the account with the derived position
// fields recomputed from the supplied prices. Positions whose symbol has no
// supplied price are left unchanged (stale). The input account is not mutated.
func RefreshPrices(account *models.Account, prices map[string]float64) *models.Account {
	refreshed := account.Clone()
	for symbol, pos := range refreshed.Positions {
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		marketValue := pos.Quantity * price
		unrealized := marketValue - pos.Invested()
		pos.CurrentPrice = models.Float64Ptr(price)
		pos.MarketValue = models.Float64Ptr(marketValue)
		pos.UnrealizedPL = models.Float64Ptr(unrealized)
		if invested := pos.Invested(); invested != 0 {
			pos.UnrealizedPLPercent = models.Float64Ptr(unrealized / invested * 100)
		} else {
			pos.UnrealizedPLPercent = models.Float64Ptr(0)
		}
	}
	return refreshed
}

// Analyze computes portfolio composition and metrics. It performs no mutation
// and no persistence.
func Analyze(account *models.Account) *PortfolioSummary {
	if len(account.Positions) == 0 {
		return &PortfolioSummary{Empty: true}
	}

	totalValue := account.Cash
	totalInvested := 0.0
	weights := make([]PositionWeight, 0, len(account.Positions))

	for symbol, pos := range account.Positions {
		value := floatOrZero(pos.MarketValue)
		totalValue += value
		totalInvested += pos.Invested()
		weights = append(weights, PositionWeight{
			Symbol:              symbol,
			Value:               value,
			UnrealizedPL:        floatOrZero(pos.UnrealizedPL),
			UnrealizedPLPercent: floatOrZero(pos.UnrealizedPLPercent),
		})
	}

	totalUnrealized := 0.0
	for i := range weights {
		if totalValue > 0 {
			weights[i].Weight = weights[i].Value / totalValue * 100
		}
		totalUnrealized += weights[i].UnrealizedPL
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Value != weights[j].Value {
			return weights[i].Value > weights[j].Value
		}
		return weights[i].Symbol < weights[j].Symbol
	})

	summary := &PortfolioSummary{
		TotalValue:        totalValue,
		Cash:              account.Cash,
		Invested:          totalValue - account.Cash,
		TotalUnrealizedPL: totalUnrealized,
		NumPositions:      len(weights),
		Positions:         weights,
	}
	if totalValue > 0 {
		summary.CashPercent = account.Cash / totalValue * 100
		summary.InvestedPercent = summary.Invested / totalValue * 100
	}
	if totalInvested > 0 {
		summary.TotalUnrealizedPLPercent = totalUnrealized / totalInvested * 100
	}
	if len(weights) > 0 {
		top := weights[0]
		summary.MostConcentrated = &top
	}

	if len(account.DailyPL) > 0 {
		stats := DailyPLStats{}
		first := true
		sum := 0.0
		for _, pl := range account.DailyPL {
			sum += pl
			if first {
				stats.Best = pl
				stats.Worst = pl
				first = false
				continue
			}
			if pl > stats.Best {
				stats.Best = pl
			}
			if pl < stats.Worst {
				stats.Worst = pl
			}
		}
		stats.Avg = sum / float64(len(account.DailyPL))
		summary.DailyPL = &stats
	}

	return summary
}

// TradingHistory returns the trades executed within the last `days` days,
// newest first. The account's trade sequence is not modified.
func TradingHistory(account *models.Account, days int, now time.Time) []models.Trade {
	cutoff := now.AddDate(0, 0, -days)
	recent := make([]models.Trade, 0)
	for _, t := range account.Trades {
		if !t.Timestamp.Before(cutoff) {
			recent = append(recent, t)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	return recent
}

// AnalyzePortfolio loads the account, refreshes prices from the quote source
// (cost basis fallback) and runs the analysis.
func (e *Engine) AnalyzePortfolio(ctx context.Context) (*PortfolioSummary, error) {
	account, err := e.Account()
	if err != nil {
		return nil, err
	}
	if len(account.Positions) > 0 {
		account = RefreshPrices(account, e.CurrentPrices(ctx, account))
	}
	return Analyze(account), nil
}

// AccountSummary is the refreshed view used by the summary command.
type AccountSummary struct {
	Cash         float64            `json:"cash"`
	Positions    []*models.Position `json:"positions"`
	TotalValue   float64            `json:"total_value"`
	UnrealizedPL float64            `json:"unrealized_pl"`
	TodayPL      *float64           `json:"today_pl,omitempty"`
}

// Summary loads the account, refreshes position prices and computes account
// totals.
func (e *Engine) Summary(ctx context.Context) (*AccountSummary, error) {
	account, err := e.Account()
	if err != nil {
		return nil, err
	}
	if len(account.Positions) > 0 {
		account = RefreshPrices(account, e.CurrentPrices(ctx, account))
	}

	summary := &AccountSummary{
		Cash:       account.Cash,
		TotalValue: account.Cash,
	}

	symbols := make([]string, 0, len(account.Positions))
	for symbol := range account.Positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		pos := account.Positions[symbol]
		summary.Positions = append(summary.Positions, pos)
		summary.TotalValue += floatOrZero(pos.MarketValue)
		summary.UnrealizedPL += floatOrZero(pos.UnrealizedPL)
	}

	if pl, ok := account.TodayPL(e.now()); ok {
		summary.TodayPL = models.Float64Ptr(pl)
	}
	return summary, nil
}

// History loads the account and returns its recent trading history.
func (e *Engine) History(days int) ([]models.Trade, error) {
	account, err := e.Account()
	if err != nil {
		return nil, err
	}
	return TradingHistory(account, days, e.now()), nil
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
