package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"net/http"
	"time"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses with OpenRouteService (/geocode/search).
// It is safe for concurrent use.
type ORSGeocoder struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	maxAttempts int
	backoff     time.Duration
}

type ORSOption func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS instance.
func WithBaseURL(u string) ORSOption { return func(o *ORSGeocoder) { o.baseURL = u } }

// WithCountry restricts results to an ISO 3166 country code.
func WithCountry(c string) ORSOption { return func(o *ORSGeocoder) { o.country = c } }

func WithRetry(maxAttempts int, backoff time.Duration) ORSOption {
	return func(o *ORSGeocoder) {
		o.maxAttempts = max(maxAttempts, 1)
		o.backoff = backoff
	}
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		country:     "CA",
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Geocode resolves addresses one by one. Addresses without any match are
// left out of the result.
func (o *ORSGeocoder) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	endpoint := o.baseURL + "/geocode/search"

	out := make(map[string]domain.Coordinates)
	for _, norm := range uniqueAddresses(addresses) {
		resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
			req, err := o.newRequest(ctx, http.MethodGet, endpoint)
			if err != nil {
				return nil, err
			}
			q := req.URL.Query()
			q.Set("text", norm)
			if o.country != "" {
				q.Set("boundary.country", o.country)
			}
			q.Set("size", "1")
			req.URL.RawQuery = q.Encode()
			return req, nil
		})
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", norm, err)
		}

		var decoded geocodeResponse
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode geocode response for %q: %w", norm, err)
		}

		if len(decoded.Features) == 0 {
			continue
		}

		coords := decoded.Features[0].Geometry.Coordinates
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate format for %q", norm)
		}

		out[norm] = domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	}

	return out, nil
}

// uniqueAddresses normalizes addresses and drops blanks and duplicates.
func uniqueAddresses(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = domain.NormalizeAddress(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
