package geocode

import (
	"context"
	"errors"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder resolves addresses with the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
	region string
}

func NewGoogleGeocoder(apiKey string, region string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client, region: region}, nil
}

// Geocode resolves addresses one by one. Addresses without any match are
// left out of the result.
func (g *GoogleGeocoder) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	out := make(map[string]domain.Coordinates)
	for _, norm := range uniqueAddresses(addresses) {
		results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
			Address: norm,
			Region:  g.region,
		})
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", norm, err)
		}
		if len(results) == 0 {
			continue
		}

		loc := results[0].Geometry.Location
		out[norm] = domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}
	}

	return out, nil
}
