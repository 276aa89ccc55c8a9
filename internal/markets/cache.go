// Package markets provides cached access to the execution service's market
// data. The dashboard consumes the first market group only.
package markets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/cache"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

const cacheKey = "markets:all"

// Fetcher fetches market groups from the execution service.
type Fetcher interface {
	FetchMarkets(ctx context.Context) ([]types.MarketGroup, error)
}

// CachedClient wraps a Fetcher with short-lived caching so the chart, the
// countdown, and the entry form can all read market data without hammering
// the service.
type CachedClient struct {
	fetcher Fetcher
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedClient creates a cached market data client. A nil cache disables
// caching.
func NewCachedClient(fetcher Fetcher, cache cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	return &CachedClient{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Groups returns all market groups, from cache when fresh.
func (c *CachedClient) Groups(ctx context.Context) ([]types.MarketGroup, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			if groups, ok := cached.([]types.MarketGroup); ok {
				CacheHitsTotal.Inc()
				return groups, nil
			}
		}
		CacheMissesTotal.Inc()
	}

	groups, err := c.fetcher.FetchMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, groups, c.ttl)
	}

	c.logger.Debug("markets-refreshed", zap.Int("groups", len(groups)))
	return groups, nil
}

// Primary returns the first market group, the one the terminal displays.
func (c *CachedClient) Primary(ctx context.Context) (*types.MarketGroup, error) {
	groups, err := c.Groups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, types.ErrNoMarkets
	}
	return &groups[0], nil
}

// Invalidate drops the cached payload so the next read refetches.
func (c *CachedClient) Invalidate() {
	if c.cache != nil {
		c.cache.Delete(cacheKey)
	}
}
