package geocode

import (
	"context"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"meal-delivery-service/internal/ports"
)

// CachedGeocoder checks a persistent cache before calling the wrapped
// geocoder, then stores what it learned.
type CachedGeocoder struct {
	Next  ports.Geocoder
	Cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{Next: next, Cache: cache}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cached")(&err)

	needed := uniqueAddresses(addresses)
	if len(needed) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	hits, err := c.Cache.GetMany(ctx, needed)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: %w", err)
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	fresh, err := c.Next.Geocode(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("geocode %d addresses: %w", len(misses), err)
	}

	if err := c.Cache.PutMany(ctx, fresh); err != nil {
		return nil, fmt.Errorf("put geocode cache: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for a, co := range hits {
		out[a] = co
	}
	for a, co := range fresh {
		out[a] = co
	}
	return out, nil
}
