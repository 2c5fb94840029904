package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"paper-trader/internal/models"
)

// ErrValidation is the sentinel wrapped by all order validation failures.
var ErrValidation = errors.New("validation error")

// OrderParams holds user-supplied parameters for a new order.
type OrderParams struct {
	Symbol     string
	Action     models.OrderAction
	Quantity   float64
	OrderType  models.OrderType
	LimitPrice *float64
	StopPrice  *float64

	// CurrentPrice is an optional price estimate used only for the advisory
	// risk-limit warning; it never causes a rejection.
	CurrentPrice float64
}

// CreateOrder constructs a validated order with a fresh id and status OPEN.
// It has no side effects on the account.
func (e *Engine) CreateOrder(p OrderParams) (*models.Order, error) {
	symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if !p.Action.Valid() {
		return nil, fmt.Errorf("%w: invalid action %q", ErrValidation, string(p.Action))
	}
	if p.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}
	if !p.OrderType.Valid() {
		return nil, fmt.Errorf("%w: invalid order type %q", ErrValidation, string(p.OrderType))
	}
	if p.OrderType.RequiresLimitPrice() && p.LimitPrice == nil {
		return nil, fmt.Errorf("%w: limit price is required for %s orders", ErrValidation, p.OrderType)
	}
	if p.OrderType.RequiresStopPrice() && p.StopPrice == nil {
		return nil, fmt.Errorf("%w: stop price is required for %s orders", ErrValidation, p.OrderType)
	}

	order := &models.Order{
		OrderID:     generateID("order"),
		Symbol:      symbol,
		Action:      p.Action,
		Quantity:    p.Quantity,
		OrderType:   p.OrderType,
		LimitPrice:  p.LimitPrice,
		StopPrice:   p.StopPrice,
		Status:      models.StatusOpen,
		SubmittedAt: e.now(),
	}

	// Advisory risk check only; a breach logs a warning, never rejects.
	if p.CurrentPrice > 0 && e.maxPositionSize > 0 {
		estimated := p.Quantity * p.CurrentPrice
		if estimated > e.maxPositionSize {
			e.logger.Warn().
				Str("symbol", symbol).
				Float64("estimated_value", estimated).
				Float64("max_position_size", e.maxPositionSize).
				Msg("Order value exceeds maximum position size")
		}
	}

	return order, nil
}

// generateID returns a prefixed unique id like "order-1a2b3c4d".
func generateID(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}
