package models

import "time"

// DateKey is the format used for daily P&L map keys.
const DateKey = "2006-01-02"

// Account is the aggregate root for one paper trading session. It is the sole
// unit of persistence: positions, orders and trades have no identity outside
// their parent account.
type Account struct {
	Cash      float64              `json:"cash"`
	Positions map[string]*Position `json:"positions"`
	Orders    map[string]*Order    `json:"orders"`
	Trades    []Trade              `json:"trades"`
	DailyPL   map[string]float64   `json:"daily_pl"`
}

// NewAccount creates an empty account with the given starting cash.
func NewAccount(cash float64) *Account {
	return &Account{
		Cash:      cash,
		Positions: make(map[string]*Position),
		Orders:    make(map[string]*Order),
		Trades:    []Trade{},
		DailyPL:   make(map[string]float64),
	}
}

// Normalize ensures the collection fields are non-nil after deserialization.
func (a *Account) Normalize() {
	if a.Positions == nil {
		a.Positions = make(map[string]*Position)
	}
	if a.Orders == nil {
		a.Orders = make(map[string]*Order)
	}
	if a.Trades == nil {
		a.Trades = []Trade{}
	}
	if a.DailyPL == nil {
		a.DailyPL = make(map[string]float64)
	}
}

// AddRealizedPL accumulates realized P&L into the daily bucket for t's date.
func (a *Account) AddRealizedPL(t time.Time, pl float64) {
	a.DailyPL[t.Format(DateKey)] += pl
}

// TodayPL returns the realized P&L recorded for t's date.
func (a *Account) TodayPL(t time.Time) (float64, bool) {
	pl, ok := a.DailyPL[t.Format(DateKey)]
	return pl, ok
}

// Clone returns a deep copy of the account. The engine mutates a copy so a
// rejected or unpersisted operation never leaks into the caller's snapshot.
func (a *Account) Clone() *Account {
	c := &Account{
		Cash:      a.Cash,
		Positions: make(map[string]*Position, len(a.Positions)),
		Orders:    make(map[string]*Order, len(a.Orders)),
		Trades:    make([]Trade, len(a.Trades)),
		DailyPL:   make(map[string]float64, len(a.DailyPL)),
	}
	for sym, p := range a.Positions {
		cp := *p
		cp.CurrentPrice = clonePtr(p.CurrentPrice)
		cp.MarketValue = clonePtr(p.MarketValue)
		cp.UnrealizedPL = clonePtr(p.UnrealizedPL)
		cp.UnrealizedPLPercent = clonePtr(p.UnrealizedPLPercent)
		c.Positions[sym] = &cp
	}
	for id, o := range a.Orders {
		co := *o
		co.LimitPrice = clonePtr(o.LimitPrice)
		co.StopPrice = clonePtr(o.StopPrice)
		co.ExecutionPrice = clonePtr(o.ExecutionPrice)
		if o.ExecutedAt != nil {
			t := *o.ExecutedAt
			co.ExecutedAt = &t
		}
		c.Orders[id] = &co
	}
	copy(c.Trades, a.Trades)
	for k, v := range a.DailyPL {
		c.DailyPL[k] = v
	}
	return c
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

// Float64Ptr returns a pointer to v. Helper for the optional derived fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
