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

// KRXClient fetches quotes from a KRW-market price endpoint. Prices are
// always quoted in KRW.
type KRXClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewKRXClient creates a client for the KRW-market quote source
func NewKRXClient(baseURL string, log zerolog.Logger) *KRXClient {
	return &KRXClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "marketdata-krx").Logger(),
	}
}

// krxResponse mirrors the price payload of the KRW-market endpoint
type krxResponse struct {
	TradePrice float64 `json:"tradePrice"`
}

// FetchQuote fetches the current price for a KRX symbol (e.g. "005930")
func (c *KRXClient) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
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

	var payload krxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if payload.TradePrice <= 0 {
		return Quote{}, fmt.Errorf("no trade price for symbol %s", symbol)
	}

	return Quote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(payload.TradePrice),
		Currency: "KRW",
	}, nil
}
