package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuoteCache stores quotes in Redis with a TTL so repeated refreshes within
// the window do not hammer the upstream providers
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuoteCache creates a quote cache over an existing Redis client
func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl}
}

// Get retrieves a cached quote. A miss returns (nil, nil).
func (c *QuoteCache) Get(ctx context.Context, key string) (*Quote, error) {
	data, err := c.client.Get(ctx, "quote:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read quote cache: %w", err)
	}

	var quote Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode cached quote: %w", err)
	}
	return &quote, nil
}

// Set stores a quote with the cache TTL
func (c *QuoteCache) Set(ctx context.Context, key string, quote Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	if err := c.client.Set(ctx, "quote:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write quote cache: %w", err)
	}
	return nil
}
