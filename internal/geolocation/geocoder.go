// Package geolocation turns coordinates into addresses and cell towers into
// coordinates.
package geolocation

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/models"
)

var (
	ErrGeocoderNotConfigured = apperr.New(apperr.KindNotConfigured, "reverse geocoding is not configured: set GOOGLE_MAPS_API_KEY")
	ErrGeocoderUnavailable   = apperr.New(apperr.KindProvider, "reverse geocoding failed")
	ErrAddressNotFound       = apperr.New(apperr.KindNotFound, "no address found for these coordinates")
)

// Geocoder resolves a point into a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, p models.Point) (string, error)
}

// reverseGeocoder is the part of *maps.Client the geocoder calls.
type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type GoogleGeocoder struct {
	client  reverseGeocoder
	timeout time.Duration
}

// NewGoogleGeocoder creates a Google Maps reverse geocoder. With an empty
// apiKey every lookup fails with ErrGeocoderNotConfigured.
func NewGoogleGeocoder(apiKey string, timeout time.Duration) (*GoogleGeocoder, error) {
	g := &GoogleGeocoder{timeout: timeout}
	if apiKey == "" {
		return g, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating Google Maps client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, p models.Point) (string, error) {
	if g.client == nil {
		return "", ErrGeocoderNotConfigured
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Latitude, Lng: p.Longitude},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeocoderUnavailable, err)
	}
	for _, r := range results {
		if r.FormattedAddress != "" {
			return r.FormattedAddress, nil
		}
	}
	return "", ErrAddressNotFound
}
