// Package marketdata provides quote providers for external market-data
// sources, dispatched by market code, with an optional Redis-backed cache.
package marketdata

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Market codes the registry can dispatch. The provider set is closed: new
// markets are added here and wired in NewRegistry, not registered at runtime.
const (
	MarketGlobal = "US"
	MarketKRX    = "KRX"
)

// Quote is a single price observation for a symbol
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// Provider fetches the current quote for a symbol from one market-data source
type Provider interface {
	FetchQuote(ctx context.Context, symbol string) (Quote, error)
}

// Registry dispatches quote requests to providers by market code and
// consults the cache before going to the network.
type Registry struct {
	providers map[string]Provider
	cache     *QuoteCache
	log       zerolog.Logger
}

// NewRegistry builds the closed provider table.
// cache is optional - if nil, caching is disabled.
func NewRegistry(global, krx Provider, cache *QuoteCache, log zerolog.Logger) *Registry {
	return &Registry{
		providers: map[string]Provider{
			MarketGlobal: global,
			MarketKRX:    krx,
		},
		cache: cache,
		log:   log.With().Str("component", "marketdata").Logger(),
	}
}

// Quote fetches the current price of a symbol on the given market.
// Returns the price and the currency it is quoted in.
func (r *Registry) Quote(ctx context.Context, market, symbol string) (decimal.Decimal, string, error) {
	provider, ok := r.providers[market]
	if !ok {
		return decimal.Zero, "", fmt.Errorf("no quote provider for market %q", market)
	}

	cacheKey := market + ":" + symbol
	if r.cache != nil {
		if quote, err := r.cache.Get(ctx, cacheKey); err == nil && quote != nil {
			r.log.Debug().Str("symbol", symbol).Str("market", market).Msg("Quote cache hit")
			return quote.Price, quote.Currency, nil
		}
	}

	quote, err := provider.FetchQuote(ctx, symbol)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("quote %s/%s: %w", market, symbol, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, quote); err != nil {
			// A broken cache only costs the next request a network round trip
			r.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache quote")
		}
	}

	return quote.Price, quote.Currency, nil
}
