package models

import "time"

// Order represents a requested trade.
type Order struct {
	OrderID     string      `json:"order_id"`
	Symbol      string      `json:"symbol"`
	Action      OrderAction `json:"action"`
	Quantity    float64     `json:"quantity"`
	OrderType   OrderType   `json:"order_type"`
	LimitPrice  *float64    `json:"limit_price,omitempty"`
	StopPrice   *float64    `json:"stop_price,omitempty"`
	Status      OrderStatus `json:"status"`
	SubmittedAt time.Time   `json:"submitted_at"`

	// Set only on execution.
	ExecutedAt     *time.Time `json:"executed_at,omitempty"`
	ExecutionPrice *float64   `json:"execution_price,omitempty"`
}
