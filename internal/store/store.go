// Package store provides persistence for the paper trading account.
package store

import (
	"context"
	"time"

	"paper-trader/internal/models"
)

// AccountStore defines persistence for the single account snapshot.
type AccountStore interface {
	// Load reads the persisted snapshot. If none exists, or the snapshot
	// cannot be read or parsed, a fresh account with the default cash
	// balance is created, persisted and returned. Load never surfaces
	// read/parse errors to callers.
	Load() (*models.Account, error)

	// Save serializes the full account to the persisted location. A non-nil
	// error means the operation did not durably complete; callers report it
	// rather than crash.
	Save(account *models.Account) error

	// Reset unconditionally overwrites the snapshot with a fresh account.
	Reset(initialCash float64) (*models.Account, error)
}

// TradeJournal is an append-only audit log of executed trades, kept separately
// from the account snapshot.
type TradeJournal interface {
	LogTrade(ctx context.Context, trade *models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	Close() error
}

// TradeFilter represents filters for querying journaled trades.
type TradeFilter struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Action    string
	Limit     int
}
