// Package quotes provides price quote retrieval for the ledger engine.
package quotes

import (
	"context"
	"errors"
)

// Sentinel errors surfaced distinctly so callers can decide whether to retry.
var (
	// ErrTimeout indicates the quote request exceeded the caller-supplied
	// timeout. The source never retries on its own.
	ErrTimeout = errors.New("quote request timed out")
	// ErrUnavailable indicates the quote source could not deliver a price
	// for reasons other than a timeout.
	ErrUnavailable = errors.New("quote unavailable")
)

// Quote represents a current market quote.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        int64
}

// Source delivers current price data. Implementations must honor ctx
// deadlines and return ErrTimeout when one expires.
type Source interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}
