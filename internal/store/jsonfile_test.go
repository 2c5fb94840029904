package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"paper-trader/internal/models"
)

func newTestStore(t *testing.T) *JSONFileStore {
	t.Helper()
	return NewJSONFileStore(filepath.Join(t.TempDir(), "account.json"), 100000, zerolog.Nop())
}

func TestLoad_CreatesFreshAccountWhenMissing(t *testing.T) {
	s := newTestStore(t)

	account, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if account.Cash != 100000 {
		t.Errorf("cash = %.2f, want 100000", account.Cash)
	}
	if account.Positions == nil || account.Orders == nil || account.Trades == nil || account.DailyPL == nil {
		t.Error("fresh account has nil collections")
	}

	// The fresh account is persisted immediately.
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestLoad_FallsBackOnCorruptSnapshot(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	account, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if account.Cash != 100000 {
		t.Errorf("cash = %.2f, want fresh 100000", account.Cash)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	executedAt := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	account := models.NewAccount(98495.05)
	account.Positions["AAPL"] = &models.Position{Symbol: "AAPL", Quantity: 10, CostBasis: 150}
	account.Orders["order-1a2b3c4d"] = &models.Order{
		OrderID:        "order-1a2b3c4d",
		Symbol:         "AAPL",
		Action:         models.ActionBuy,
		Quantity:       10,
		OrderType:      models.OrderTypeMarket,
		Status:         models.StatusExecuted,
		SubmittedAt:    executedAt,
		ExecutedAt:     &executedAt,
		ExecutionPrice: models.Float64Ptr(150),
	}
	account.Trades = append(account.Trades, models.Trade{
		TradeID:    "trade-9f8e7d6c",
		OrderID:    "order-1a2b3c4d",
		Symbol:     "AAPL",
		Action:     models.ActionBuy,
		Quantity:   10,
		Price:      150,
		Timestamp:  executedAt,
		Commission: 4.95,
	})
	account.DailyPL["2025-06-02"] = 100

	if err := s.Save(account); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Cash != account.Cash {
		t.Errorf("cash = %v, want %v", loaded.Cash, account.Cash)
	}
	pos := loaded.Positions["AAPL"]
	if pos == nil || pos.Quantity != 10 || pos.CostBasis != 150 {
		t.Errorf("position = %+v", pos)
	}
	order := loaded.Orders["order-1a2b3c4d"]
	if order == nil {
		t.Fatal("order lost in round trip")
	}
	if order.Status != models.StatusExecuted || !order.SubmittedAt.Equal(executedAt) {
		t.Errorf("order = %+v", order)
	}
	if order.ExecutedAt == nil || !order.ExecutedAt.Equal(executedAt) {
		t.Errorf("executed_at = %v", order.ExecutedAt)
	}
	if len(loaded.Trades) != 1 || loaded.Trades[0].Commission != 4.95 {
		t.Errorf("trades = %+v", loaded.Trades)
	}
	if loaded.DailyPL["2025-06-02"] != 100 {
		t.Errorf("daily P&L = %v", loaded.DailyPL)
	}
}

func TestSave_UsesSnakeCaseFieldNames(t *testing.T) {
	s := newTestStore(t)

	account := models.NewAccount(100000)
	account.Positions["AAPL"] = &models.Position{Symbol: "AAPL", Quantity: 10, CostBasis: 150}
	if err := s.Save(account); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, key := range []string{"cash", "positions", "orders", "trades", "daily_pl"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing top-level key %q", key)
		}
	}

	var positions map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw["positions"], &positions); err != nil {
		t.Fatal(err)
	}
	if _, ok := positions["AAPL"]["cost_basis"]; !ok {
		t.Error("position missing snake_case cost_basis field")
	}
}

func TestReset_DiscardsExistingState(t *testing.T) {
	s := newTestStore(t)

	account, _ := s.Load()
	account.Cash = 1
	account.Positions["AAPL"] = &models.Position{Symbol: "AAPL", Quantity: 10, CostBasis: 150}
	if err := s.Save(account); err != nil {
		t.Fatal(err)
	}

	fresh, err := s.Reset(50000)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if fresh.Cash != 50000 || len(fresh.Positions) != 0 {
		t.Errorf("reset account = %+v", fresh)
	}

	reloaded, _ := s.Load()
	if reloaded.Cash != 50000 || len(reloaded.Positions) != 0 {
		t.Error("reset was not persisted")
	}
}

func TestSave_LeavesNoTempFilesBehind(t *testing.T) {
	s := newTestStore(t)

	account := models.NewAccount(100000)
	for i := 0; i < 5; i++ {
		if err := s.Save(account); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the snapshot file, found %v", names)
	}
}
