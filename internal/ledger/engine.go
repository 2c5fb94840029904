package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"paper-trader/internal/logging"
	"paper-trader/internal/models"
	"paper-trader/internal/quotes"
	"paper-trader/internal/store"
	"paper-trader/pkg/utils"
)

// Options holds engine configuration.
type Options struct {
	// Commission is the flat fee charged on every executed trade.
	Commission float64
	// MaxPositionSize is the advisory per-order value limit; 0 disables the
	// warning.
	MaxPositionSize float64
	// QuoteTimeout bounds each quote request made by the engine.
	QuoteTimeout time.Duration
	// Journal, when set, receives an audit record for every executed trade.
	Journal store.TradeJournal
}

// Engine owns the account ledger: it loads the snapshot, applies order
// transitions and persists the result. The mutex spans the whole
// load-modify-save sequence so two concurrent operations cannot lose updates.
type Engine struct {
	mu      sync.Mutex
	store   store.AccountStore
	source  quotes.Source
	journal store.TradeJournal

	commission      float64
	maxPositionSize float64
	quoteTimeout    time.Duration

	logger zerolog.Logger
	now    func() time.Time
}

// New creates a ledger engine backed by the given account store and quote
// source.
func New(accountStore store.AccountStore, source quotes.Source, opts Options, logger zerolog.Logger) *Engine {
	timeout := opts.QuoteTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		store:           accountStore,
		source:          source,
		journal:         opts.Journal,
		commission:      opts.Commission,
		maxPositionSize: opts.MaxPositionSize,
		quoteTimeout:    timeout,
		logger:          logger.With().Str("component", "ledger").Logger(),
		now:             time.Now,
	}
}

// Setup initializes or resets the account with the given cash balance.
func (e *Engine) Setup(initialCash float64) (*models.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Reset(initialCash)
}

// Account loads the current account snapshot.
func (e *Engine) Account() (*models.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Load()
}

// GetQuote fetches a quote for symbol, bounded by the configured timeout.
func (e *Engine) GetQuote(ctx context.Context, symbol string) (*quotes.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, e.quoteTimeout)
	defer cancel()
	return e.source.GetQuote(ctx, symbol)
}

// PlaceOrder runs the full submission flow: fetch the execution price, build
// a validated order and submit it against the account.
func (e *Engine) PlaceOrder(ctx context.Context, p OrderParams) *ExecutionResult {
	quote, err := e.GetQuote(ctx, p.Symbol)
	if err != nil {
		return quoteFailure(p.Symbol, err)
	}
	p.CurrentPrice = quote.Price

	order, err := e.CreateOrder(p)
	if err != nil {
		return failed(KindValidation, err.Error())
	}

	return e.Submit(ctx, order, quote.Price)
}

func quoteFailure(symbol string, err error) *ExecutionResult {
	if errors.Is(err, quotes.ErrTimeout) {
		return failed(KindQuoteTimeout, fmt.Sprintf("Timed out while retrieving quote for %s. Please try again later.", symbol))
	}
	return failed(KindQuoteUnavailable, fmt.Sprintf("Could not get current price for %s: %v", symbol, err))
}

// Submit applies an order to the account at the given execution price.
// Market orders execute immediately; all other order types are stored OPEN
// without execution simulation. A rejected order leaves the account untouched
// and is not stored.
func (e *Engine) Submit(ctx context.Context, order *models.Order, executionPrice float64) *ExecutionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.store.Load()
	if err != nil {
		return failed(KindPersistence, fmt.Sprintf("Could not load account: %v", err))
	}

	if order.OrderType != models.OrderTypeMarket {
		account.Orders[order.OrderID] = order
		if err := e.store.Save(account); err != nil {
			return e.persistFailure(order, nil, err)
		}
		logging.LogOrder(e.logger, order.OrderID, order.Symbol, string(order.Action), string(order.Status))
		return succeeded(fmt.Sprintf("Order submitted (ID: %s)", order.OrderID), order, nil)
	}

	now := e.now()
	tradeValue := order.Quantity * executionPrice
	commission := e.commission

	var message string
	switch {
	case order.Action.IsBuy():
		required := tradeValue + commission
		if account.Cash < required {
			order.Status = models.StatusRejected
			return failed(KindInsufficientFunds, fmt.Sprintf("Insufficient funds. Required: %s, Available: %s",
				utils.FormatMoney(required), utils.FormatMoney(account.Cash)))
		}
		account.Cash -= required
		e.applyBuy(account, order, executionPrice, tradeValue, now)
		message = fmt.Sprintf("Bought %s shares of %s at %s",
			utils.FormatQuantity(order.Quantity), order.Symbol, utils.FormatMoney(executionPrice))

	case order.Action == models.ActionSell:
		pos, ok := account.Positions[order.Symbol]
		if !ok || pos.Quantity < order.Quantity {
			available := 0.0
			if ok {
				available = pos.Quantity
			}
			order.Status = models.StatusRejected
			return failed(KindInsufficientShares, fmt.Sprintf("Insufficient shares. Required: %s, Available: %s",
				utils.FormatQuantity(order.Quantity), utils.FormatQuantity(available)))
		}
		account.Cash += tradeValue - commission
		pos.Quantity -= order.Quantity
		if pos.Quantity == 0 {
			realized := tradeValue - order.Quantity*pos.CostBasis
			account.AddRealizedPL(now, realized)
			delete(account.Positions, order.Symbol)
		}
		message = fmt.Sprintf("Sold %s shares of %s at %s",
			utils.FormatQuantity(order.Quantity), order.Symbol, utils.FormatMoney(executionPrice))

	case order.Action == models.ActionSellShort:
		account.Cash += tradeValue - commission
		// Overwrites any existing position for the symbol instead of
		// merging. Known inconsistency with the buy-side merge; see
		// DESIGN.md.
		account.Positions[order.Symbol] = &models.Position{
			Symbol:    order.Symbol,
			Quantity:  -order.Quantity,
			CostBasis: executionPrice,
		}
		message = fmt.Sprintf("Sold short %s shares of %s at %s",
			utils.FormatQuantity(order.Quantity), order.Symbol, utils.FormatMoney(executionPrice))

	default:
		order.Status = models.StatusRejected
		return failed(KindValidation, fmt.Sprintf("Unsupported order action: %s", order.Action))
	}

	order.Status = models.StatusExecuted
	order.ExecutedAt = &now
	order.ExecutionPrice = models.Float64Ptr(executionPrice)

	trade := &models.Trade{
		TradeID:    generateID("trade"),
		OrderID:    order.OrderID,
		Symbol:     order.Symbol,
		Action:     order.Action,
		Quantity:   order.Quantity,
		Price:      executionPrice,
		Timestamp:  now,
		Commission: commission,
	}

	account.Orders[order.OrderID] = order
	account.Trades = append(account.Trades, *trade)

	if err := e.store.Save(account); err != nil {
		return e.persistFailure(order, trade, err)
	}

	e.journalTrade(ctx, trade)
	logging.LogTrade(e.logger, trade.Symbol, string(trade.Action), trade.Quantity, trade.Price)

	return succeeded(message, order, trade)
}

// applyBuy merges a buy into an existing position using weighted-average cost
// basis, or opens a new one at the execution price.
func (e *Engine) applyBuy(account *models.Account, order *models.Order, executionPrice, tradeValue float64, now time.Time) {
	pos, ok := account.Positions[order.Symbol]
	if !ok {
		account.Positions[order.Symbol] = &models.Position{
			Symbol:    order.Symbol,
			Quantity:  order.Quantity,
			CostBasis: executionPrice,
		}
		return
	}

	totalShares := pos.Quantity + order.Quantity
	if totalShares == 0 {
		// Buying to cover exactly closes a short: realize the P&L and
		// drop the position rather than divide by zero.
		realized := order.Quantity*pos.CostBasis - tradeValue
		account.AddRealizedPL(now, realized)
		delete(account.Positions, order.Symbol)
		return
	}

	totalCost := pos.Quantity*pos.CostBasis + tradeValue
	pos.Quantity = totalShares
	pos.CostBasis = totalCost / totalShares
}

// Cancel cancels a pending order. Only OPEN orders can be canceled.
func (e *Engine) Cancel(ctx context.Context, orderID string) *ExecutionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.store.Load()
	if err != nil {
		return failed(KindPersistence, fmt.Sprintf("Could not load account: %v", err))
	}

	order, ok := account.Orders[orderID]
	if !ok {
		return failed(KindOrderNotFound, fmt.Sprintf("Order with ID %s not found.", orderID))
	}
	if order.Status != models.StatusOpen {
		return failed(KindCannotCancel, fmt.Sprintf("Cannot cancel order with status %s.", order.Status))
	}

	order.Status = models.StatusCanceled
	if err := e.store.Save(account); err != nil {
		return e.persistFailure(order, nil, err)
	}

	logging.LogOrder(e.logger, order.OrderID, order.Symbol, string(order.Action), string(order.Status))
	return &ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("Order %s for %s shares of %s has been canceled.",
			orderID, utils.FormatQuantity(order.Quantity), order.Symbol),
		Order: order,
	}
}

// persistFailure reports a failed save. The in-memory mutation is lost when
// the next operation reloads the snapshot; the caller must not assume the
// operation durably completed.
func (e *Engine) persistFailure(order *models.Order, trade *models.Trade, err error) *ExecutionResult {
	e.logger.Error().Err(err).Msg("Failed to persist account")
	return &ExecutionResult{
		Success: false,
		Kind:    KindPersistence,
		Message: fmt.Sprintf("Operation did not durably complete: %v", err),
		Order:   order,
		Trade:   trade,
	}
}

// journalTrade writes the trade to the audit journal, best effort.
func (e *Engine) journalTrade(ctx context.Context, trade *models.Trade) {
	if e.journal == nil {
		return
	}
	if err := e.journal.LogTrade(ctx, trade); err != nil {
		e.logger.Warn().Err(err).Str("trade_id", trade.TradeID).Msg("Failed to journal trade")
	}
}

// CurrentPrices resolves current prices for every held symbol, falling back to
// the position's cost basis when a quote cannot be retrieved.
func (e *Engine) CurrentPrices(ctx context.Context, account *models.Account) map[string]float64 {
	prices := make(map[string]float64, len(account.Positions))
	for symbol, pos := range account.Positions {
		quote, err := e.GetQuote(ctx, symbol)
		if err != nil {
			e.logger.Error().Err(err).Str("symbol", symbol).Msg("Error getting price, falling back to cost basis")
			prices[symbol] = pos.CostBasis
			continue
		}
		prices[symbol] = quote.Price
	}
	return prices
}
