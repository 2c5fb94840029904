// Package models provides domain models for the paper trading ledger.
package models

// OrderAction represents the direction of an order.
type OrderAction string

const (
	ActionBuy        OrderAction = "BUY"
	ActionSell       OrderAction = "SELL"
	ActionBuyToCover OrderAction = "BUY_TO_COVER"
	ActionSellShort  OrderAction = "SELL_SHORT"
)

// IsBuy reports whether the action adds to a long (or closes a short) position
// by paying cash.
func (a OrderAction) IsBuy() bool {
	return a == ActionBuy || a == ActionBuyToCover
}

// IsSell reports whether the action raises cash.
func (a OrderAction) IsSell() bool {
	return a == ActionSell || a == ActionSellShort
}

// Valid reports whether the action is one of the known values.
func (a OrderAction) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionBuyToCover, ActionSellShort:
		return true
	}
	return false
}

// OrderType represents the type of an order.
type OrderType string

const (
	OrderTypeMarket       OrderType = "MARKET"
	OrderTypeLimit        OrderType = "LIMIT"
	OrderTypeStop         OrderType = "STOP"
	OrderTypeStopLimit    OrderType = "STOP_LIMIT"
	OrderTypeTrailingStop OrderType = "TRAILING_STOP"
)

// Valid reports whether the order type is one of the known values.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit, OrderTypeTrailingStop:
		return true
	}
	return false
}

// RequiresLimitPrice reports whether the order type needs a limit price.
func (t OrderType) RequiresLimitPrice() bool {
	return t == OrderTypeLimit || t == OrderTypeStopLimit
}

// RequiresStopPrice reports whether the order type needs a stop price.
func (t OrderType) RequiresStopPrice() bool {
	return t == OrderTypeStop || t == OrderTypeStopLimit || t == OrderTypeTrailingStop
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusOpen     OrderStatus = "OPEN"
	StatusExecuted OrderStatus = "EXECUTED"
	StatusCanceled OrderStatus = "CANCELED"
	StatusRejected OrderStatus = "REJECTED"
	StatusExpired  OrderStatus = "EXPIRED"
)

// Position represents a held (possibly short) quantity of a symbol.
// The derived fields are refreshed on demand from a price feed and are nil
// until a price has been supplied.
type Position struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`

	CurrentPrice        *float64 `json:"current_price,omitempty"`
	MarketValue         *float64 `json:"market_value,omitempty"`
	UnrealizedPL        *float64 `json:"unrealized_pl,omitempty"`
	UnrealizedPLPercent *float64 `json:"unrealized_pl_percent,omitempty"`
}

// Invested returns the total cost basis of the position.
func (p *Position) Invested() float64 {
	return p.Quantity * p.CostBasis
}
