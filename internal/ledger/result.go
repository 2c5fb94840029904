// Package ledger implements the paper trading account engine: order creation,
// market order execution, cancellation and portfolio analysis over a persisted
// account snapshot.
package ledger

import (
	"paper-trader/internal/models"
)

// ErrorKind classifies recoverable failures reported to callers. Nothing in
// this taxonomy terminates the process.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindInsufficientFunds  ErrorKind = "INSUFFICIENT_FUNDS"
	KindInsufficientShares ErrorKind = "INSUFFICIENT_SHARES"
	KindOrderNotFound      ErrorKind = "ORDER_NOT_FOUND"
	KindCannotCancel       ErrorKind = "CANNOT_CANCEL"
	KindQuoteTimeout       ErrorKind = "QUOTE_TIMEOUT"
	KindQuoteUnavailable   ErrorKind = "QUOTE_UNAVAILABLE"
	KindPersistence        ErrorKind = "PERSISTENCE_ERROR"
)

// ExecutionResult is the tagged outcome of a submit or cancel operation. The
// success variant carries the order and, for executed market orders, the
// trade; the failure variant carries an error kind and message.
type ExecutionResult struct {
	Success bool          `json:"success"`
	Kind    ErrorKind     `json:"kind,omitempty"`
	Message string        `json:"message"`
	Order   *models.Order `json:"order,omitempty"`
	Trade   *models.Trade `json:"trade,omitempty"`
}

func succeeded(message string, order *models.Order, trade *models.Trade) *ExecutionResult {
	return &ExecutionResult{Success: true, Message: message, Order: order, Trade: trade}
}

func failed(kind ErrorKind, message string) *ExecutionResult {
	return &ExecutionResult{Success: false, Kind: kind, Message: message}
}
