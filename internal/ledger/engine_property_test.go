package ledger

import (
	"context"
	"math"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"paper-trader/internal/models"
	"paper-trader/internal/quotes"
	"paper-trader/internal/store"
)

// Property: For any sequence of buys of the same symbol, the resulting cost
// basis equals total cost divided by total shares, and the quantity equals the
// sum of the bought quantities.
func TestProperty_BuySequenceWeightedAverageCostBasis(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	buyGen := gen.SliceOfN(4, gen.Struct(buyType, map[string]gopter.Gen{
		"Qty":   gen.Float64Range(1, 50),
		"Price": gen.Float64Range(1, 500),
	}))

	properties.Property("cost basis is the weighted average of all buys", prop.ForAll(
		func(buys []buy) bool {
			e := newPropertyEngine(t, 10_000_000)

			totalQty := 0.0
			totalCost := 0.0
			for _, b := range buys {
				order, err := e.CreateOrder(OrderParams{
					Symbol:    "AAPL",
					Action:    models.ActionBuy,
					Quantity:  b.Qty,
					OrderType: models.OrderTypeMarket,
				})
				if err != nil {
					t.Logf("CreateOrder failed: %v", err)
					return false
				}
				result := e.Submit(context.Background(), order, b.Price)
				if !result.Success {
					t.Logf("Submit failed: %s", result.Message)
					return false
				}
				totalQty += b.Qty
				totalCost += b.Qty * b.Price
			}

			account, err := e.Account()
			if err != nil {
				return false
			}
			pos := account.Positions["AAPL"]
			if pos == nil {
				return false
			}
			wantBasis := totalCost / totalQty
			if math.Abs(pos.Quantity-totalQty) > 1e-6 {
				t.Logf("qty = %v, want %v", pos.Quantity, totalQty)
				return false
			}
			if math.Abs(pos.CostBasis-wantBasis) > 1e-6 {
				t.Logf("basis = %v, want %v", pos.CostBasis, wantBasis)
				return false
			}
			return true
		},
		buyGen,
	))

	properties.TestingRun(t)
}

// Property: A buy followed by a full sell leaves cash at
// initial - buyValue - sellCommission - buyCommission + sellValue, and the
// realized P&L bucket holds exactly sellValue - buyValue.
func TestProperty_RoundTripConservesCash(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	qtyGen := gen.Float64Range(1, 100)
	buyPriceGen := gen.Float64Range(1, 500)
	sellPriceGen := gen.Float64Range(1, 500)

	properties.Property("buy then full sell conserves cash minus commissions", prop.ForAll(
		func(qty, buyPrice, sellPrice float64) bool {
			const initial = 1_000_000.0
			e := newPropertyEngine(t, initial)

			buyOrder, _ := e.CreateOrder(OrderParams{
				Symbol: "AAPL", Action: models.ActionBuy, Quantity: qty, OrderType: models.OrderTypeMarket,
			})
			if r := e.Submit(context.Background(), buyOrder, buyPrice); !r.Success {
				t.Logf("buy failed: %s", r.Message)
				return false
			}
			sellOrder, _ := e.CreateOrder(OrderParams{
				Symbol: "AAPL", Action: models.ActionSell, Quantity: qty, OrderType: models.OrderTypeMarket,
			})
			if r := e.Submit(context.Background(), sellOrder, sellPrice); !r.Success {
				t.Logf("sell failed: %s", r.Message)
				return false
			}

			account, err := e.Account()
			if err != nil {
				return false
			}

			wantCash := initial - qty*buyPrice - e.commission + qty*sellPrice - e.commission
			if math.Abs(account.Cash-wantCash) > 1e-6 {
				t.Logf("cash = %v, want %v", account.Cash, wantCash)
				return false
			}

			pl, ok := account.TodayPL(e.now())
			if !ok {
				t.Log("missing realized P&L entry after full close")
				return false
			}
			wantPL := qty*sellPrice - qty*buyPrice
			if math.Abs(pl-wantPL) > 1e-6 {
				t.Logf("realized P&L = %v, want %v", pl, wantPL)
				return false
			}

			if _, held := account.Positions["AAPL"]; held {
				t.Log("position survived a full close")
				return false
			}
			return true
		},
		qtyGen,
		buyPriceGen,
		sellPriceGen,
	))

	properties.TestingRun(t)
}

// Property: A rejected order never changes the account: cash, positions,
// orders, trades and daily P&L are all byte-for-byte what they were before.
func TestProperty_RejectionLeavesAccountUnchanged(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	// Cash is always below the cheapest possible order (1 share at 10 plus
	// commission), so every generated order must be rejected.
	cashGen := gen.Float64Range(0, 10)
	qtyGen := gen.Float64Range(1, 1000)
	priceGen := gen.Float64Range(10, 500)

	properties.Property("insufficient funds rejection is side-effect free", prop.ForAll(
		func(cash, qty, price float64) bool {
			e := newPropertyEngine(t, cash)

			before, err := e.Account()
			if err != nil {
				return false
			}

			// qty*price + commission always exceeds the tiny cash balance.
			order, _ := e.CreateOrder(OrderParams{
				Symbol: "AAPL", Action: models.ActionBuy, Quantity: qty, OrderType: models.OrderTypeMarket,
			})
			result := e.Submit(context.Background(), order, price)
			if result.Success {
				t.Logf("expected rejection for cash=%v qty=%v price=%v", cash, qty, price)
				return false
			}
			if result.Kind != KindInsufficientFunds {
				t.Logf("kind = %s", result.Kind)
				return false
			}

			after, err := e.Account()
			if err != nil {
				return false
			}
			if after.Cash != before.Cash {
				t.Logf("cash changed: %v -> %v", before.Cash, after.Cash)
				return false
			}
			if len(after.Positions) != 0 || len(after.Orders) != 0 ||
				len(after.Trades) != 0 || len(after.DailyPL) != 0 {
				t.Log("rejected order left residue on the account")
				return false
			}
			return true
		},
		cashGen,
		qtyGen,
		priceGen,
	))

	properties.TestingRun(t)
}

type buy struct {
	Qty   float64
	Price float64
}

var buyType = reflect.TypeOf(buy{})

func newPropertyEngine(t *testing.T, initialCash float64) *Engine {
	t.Helper()
	st := store.NewJSONFileStore(filepath.Join(t.TempDir(), "account.json"), initialCash, zerolog.Nop())
	e := New(st, quotes.NewSimSource(), Options{Commission: 4.95}, zerolog.Nop())
	e.now = func() time.Time { return testTime }
	if _, err := e.Setup(initialCash); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return e
}
