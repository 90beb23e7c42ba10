package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// GlobalClient fetches quotes from a Yahoo-Finance-style chart endpoint
type GlobalClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewGlobalClient creates a client for the global quote source
func NewGlobalClient(baseURL string, log zerolog.Logger) *GlobalClient {
	return &GlobalClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "marketdata-global").Logger(),
	}
}

// chartResponse mirrors the subset of the chart payload we read
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchQuote fetches the current price for a symbol
func (c *GlobalClient) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, symbol)
	c.log.Debug().Str("url", url).Msg("Fetching quote")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote request returned status %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if payload.Chart.Error != nil {
		return Quote{}, fmt.Errorf("quote source error: %s", payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no quote result for symbol %s", symbol)
	}

	meta := payload.Chart.Result[0].Meta
	return Quote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(meta.RegularMarketPrice),
		Currency: meta.Currency,
	}, nil
}
