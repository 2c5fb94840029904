package store

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"paper-trader/internal/models"
)

// Property: For any account state, saving the snapshot and loading it back
// produces an equivalent account (round-trip consistency).
func TestProperty_AccountRoundTripConsistency(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "account.json"), 100000, zerolog.Nop())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	symbols := []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "NVDA", "META", "NFLX"}

	cashGen := gen.Float64Range(0, 1_000_000)
	posCountGen := gen.IntRange(0, 5)
	qtyGen := gen.Float64Range(-500, 500)
	priceGen := gen.Float64Range(0.01, 5000)
	plGen := gen.Float64Range(-10_000, 10_000)

	properties.Property("save then load produces an equivalent account", prop.ForAll(
		func(cash float64, posCount int, qty, price, pl float64) bool {
			account := models.NewAccount(cash)
			for i := 0; i < posCount; i++ {
				symbol := symbols[i%len(symbols)]
				account.Positions[symbol] = &models.Position{
					Symbol:    symbol,
					Quantity:  qty + float64(i),
					CostBasis: price + float64(i),
				}
			}
			ts := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
			for i := 0; i < posCount; i++ {
				account.Trades = append(account.Trades, models.Trade{
					TradeID:    fmt.Sprintf("trade-%08d", i),
					OrderID:    fmt.Sprintf("order-%08d", i),
					Symbol:     symbols[i%len(symbols)],
					Action:     models.ActionBuy,
					Quantity:   qty + float64(i),
					Price:      price,
					Timestamp:  ts.Add(time.Duration(i) * time.Minute),
					Commission: 4.95,
				})
			}
			account.DailyPL["2025-06-02"] = pl

			if err := s.Save(account); err != nil {
				t.Logf("Save failed: %v", err)
				return false
			}
			loaded, err := s.Load()
			if err != nil {
				t.Logf("Load failed: %v", err)
				return false
			}

			if math.Abs(loaded.Cash-account.Cash) > 1e-9 {
				t.Logf("cash = %v, want %v", loaded.Cash, account.Cash)
				return false
			}
			if len(loaded.Positions) != len(account.Positions) {
				t.Logf("positions = %d, want %d", len(loaded.Positions), len(account.Positions))
				return false
			}
			for symbol, want := range account.Positions {
				got := loaded.Positions[symbol]
				if got == nil ||
					math.Abs(got.Quantity-want.Quantity) > 1e-9 ||
					math.Abs(got.CostBasis-want.CostBasis) > 1e-9 {
					t.Logf("position %s = %+v, want %+v", symbol, got, want)
					return false
				}
			}
			if len(loaded.Trades) != len(account.Trades) {
				return false
			}
			for i, want := range account.Trades {
				got := loaded.Trades[i]
				if got.TradeID != want.TradeID || !got.Timestamp.Equal(want.Timestamp) {
					t.Logf("trade %d = %+v, want %+v", i, got, want)
					return false
				}
			}
			if math.Abs(loaded.DailyPL["2025-06-02"]-pl) > 1e-9 {
				return false
			}
			return true
		},
		cashGen,
		posCountGen,
		qtyGen,
		priceGen,
		plGen,
	))

	properties.TestingRun(t)
}
