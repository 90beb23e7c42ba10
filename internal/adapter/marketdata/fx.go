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

// FXClient fetches currency exchange rates from an exchangerate-api style
// endpoint
type FXClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewFXClient creates a new exchange rate client
func NewFXClient(baseURL string, log zerolog.Logger) *FXClient {
	return &FXClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "marketdata-fx").Logger(),
	}
}

// ratesResponse mirrors the latest-rates payload
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate fetches the conversion rate from one currency to another
func (c *FXClient) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, from)
	c.log.Debug().Str("url", url).Msg("Fetching rates")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate request returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := payload.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate from %s to %s", from, to)
	}

	return decimal.NewFromFloat(rate), nil
}
