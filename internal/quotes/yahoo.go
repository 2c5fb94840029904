package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooSource fetches quotes from the Yahoo Finance chart endpoint. The
// caller controls the timeout through the request context; a deadline hit is
// reported as ErrTimeout, every other failure as ErrUnavailable.
type YahooSource struct {
	client  *http.Client
	baseURL string
	logger  zerolog.Logger
}

// NewYahooSource creates a Yahoo Finance quote source.
func NewYahooSource(logger zerolog.Logger) *YahooSource {
	return &YahooSource{
		client:  &http.Client{},
		baseURL: yahooChartURL,
		logger:  logger.With().Str("component", "quotes").Logger(),
	}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol              string  `json:"symbol"`
				LongName            string  `json:"longName"`
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
				PreviousClose       float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches the current quote for symbol.
func (y *YahooSource) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(symbol)
	reqURL := y.baseURL + url.PathEscape(symbol) + "?range=2d&interval=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "paper-trader/0.1")

	resp, err := y.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			y.logger.Error().Str("symbol", symbol).Msg("Timed out while fetching quote")
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrUnavailable, symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", ErrUnavailable, symbol)
	}

	quote := &Quote{
		Symbol: symbol,
		Name:   meta.LongName,
		Price:  meta.RegularMarketPrice,
		Volume: meta.RegularMarketVolume,
	}
	if quote.Name == "" {
		quote.Name = symbol
	}
	if meta.PreviousClose > 0 {
		quote.Change = meta.RegularMarketPrice - meta.PreviousClose
		quote.ChangePercent = quote.Change / meta.PreviousClose * 100
	}
	return quote, nil
}

// Ensure YahooSource implements Source
var _ Source = (*YahooSource)(nil)
