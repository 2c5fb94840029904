package quotes

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
)

// SimSource serves deterministic simulated quotes without any network I/O.
// Each symbol maps to a stable base price; explicit overrides take precedence.
type SimSource struct {
	mu        sync.RWMutex
	overrides map[string]float64
}

// NewSimSource creates a simulated quote source.
func NewSimSource() *SimSource {
	return &SimSource{overrides: make(map[string]float64)}
}

// SetPrice pins the price for a symbol, overriding the derived base price.
func (s *SimSource) SetPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[strings.ToUpper(symbol)] = price
}

// GetQuote returns a simulated quote for the symbol.
func (s *SimSource) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	default:
	}

	symbol = strings.ToUpper(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrUnavailable)
	}

	price := s.basePrice(symbol)
	s.mu.RLock()
	if p, ok := s.overrides[symbol]; ok {
		price = p
	}
	s.mu.RUnlock()

	change := price * 0.0155
	return &Quote{
		Symbol:        symbol,
		Name:          symbol + " Inc.",
		Price:         price,
		Change:        change,
		ChangePercent: 1.55,
		Volume:        65000000,
	}, nil
}

// basePrice derives a stable price in the 20.00-999.99 range from the symbol.
func (s *SimSource) basePrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	v := h.Sum32()
	dollars := 20 + v%980
	cents := (v / 980) % 100
	return float64(dollars) + float64(cents)/100
}

// Ensure SimSource implements Source
var _ Source = (*SimSource)(nil)
