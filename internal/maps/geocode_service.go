// README: Site address geocoding through the Google Maps Geocoding API.
package maps

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

var ErrNoResults = errors.New("address not found")

type GeocoderConfig struct {
	APIKey string
	// Region biases results, as a ccTLD ("us", "ca"). Optional.
	Region string
	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
	// BaseURL overrides the API host, used by tests.
	BaseURL string
}

// GeocodeService resolves street addresses to coordinates.
type GeocodeService struct {
	client  *maps.Client
	region  string
	limiter *rate.Limiter
}

// NewGeocodeService creates a GeocodeService from cfg.
func NewGeocodeService(cfg GeocoderConfig) (*GeocodeService, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &GeocodeService{client: client, region: cfg.Region, limiter: limiter}, nil
}

// Geocode returns the coordinates of the best match for address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Region:  s.region,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
