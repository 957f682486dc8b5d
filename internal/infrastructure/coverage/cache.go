package coverage

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/coverage"
	"github.com/marcos-nsantos/photo-locations/internal/domain/entity"
)

type cacheKey struct {
	lat, lng float64
	radius   int
}

// CachingClient memoizes answers of another client, including "no coverage".
// Errors are not cached.
type CachingClient struct {
	next  coverage.Client
	cache *lru.Cache[cacheKey, *entity.CoveragePoint]
}

func NewCachingClient(next coverage.Client, size int) (*CachingClient, error) {
	cache, err := lru.New[cacheKey, *entity.CoveragePoint](size)
	if err != nil {
		return nil, fmt.Errorf("creating coverage cache: %w", err)
	}
	return &CachingClient{next: next, cache: cache}, nil
}

func (c *CachingClient) Lookup(ctx context.Context, lat, lng float64, radiusMeters int) (*entity.CoveragePoint, error) {
	key := cacheKey{lat: lat, lng: lng, radius: radiusMeters}
	if point, ok := c.cache.Get(key); ok {
		return point, nil
	}

	point, err := c.next.Lookup(ctx, lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, point)
	return point, nil
}

func (c *CachingClient) Len() int {
	return c.cache.Len()
}
