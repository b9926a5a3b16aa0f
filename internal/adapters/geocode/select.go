package geocode

import (
	"fmt"
	"meal-delivery-service/internal/ports"
)

// Provider names accepted by New.
const (
	ProviderNone   = "none"
	ProviderORS    = "ors"
	ProviderGoogle = "google"
)

// New builds the geocoder named by provider, behind cache when one is given.
// ProviderNone returns a nil geocoder: stops without stored coordinates are
// then left unlocated.
func New(provider, orsKey, googleKey string, cache ports.GeocodeCache) (ports.Geocoder, error) {
	var next ports.Geocoder
	switch provider {
	case ProviderNone, "":
		return nil, nil
	case ProviderORS:
		g, err := NewORSGeocoder(orsKey)
		if err != nil {
			return nil, fmt.Errorf("new geocoder: %w", err)
		}
		next = g
	case ProviderGoogle:
		g, err := NewGoogleGeocoder(googleKey, "ca")
		if err != nil {
			return nil, fmt.Errorf("new geocoder: %w", err)
		}
		next = g
	default:
		return nil, fmt.Errorf("new geocoder: unknown provider %q", provider)
	}

	if cache == nil {
		return next, nil
	}
	return NewCachedGeocoder(next, cache), nil
}
