package models

import "time"

// Trade is an immutable execution record, one per executed order.
type Trade struct {
	TradeID    string      `json:"trade_id"`
	OrderID    string      `json:"order_id"`
	Symbol     string      `json:"symbol"`
	Action     OrderAction `json:"action"`
	Quantity   float64     `json:"quantity"`
	Price      float64     `json:"price"`
	Timestamp  time.Time   `json:"timestamp"`
	Commission float64     `json:"commission"`
}

// Value returns the gross trade value before commission.
func (t *Trade) Value() float64 {
	return t.Quantity * t.Price
}
