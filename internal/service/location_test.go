package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/geolocation"
	geo_mocks "github.com/shenikar/incident_triage/internal/geolocation/mocks"
	"github.com/shenikar/incident_triage/internal/models"
)

func newTestLocationService(t *testing.T) (LocationService, *geo_mocks.MockGeocoder, *geo_mocks.MockCellLocator) {
	ctrl := gomock.NewController(t)
	geocoder := geo_mocks.NewMockGeocoder(ctrl)
	cells := geo_mocks.NewMockCellLocator(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewLocationService(geocoder, cells, logger), geocoder, cells
}

func TestResolveGPS_WithAddress(t *testing.T) {
	svc, geocoder, _ := newTestLocationService(t)
	ctx := context.Background()
	p := models.Point{Latitude: 19.076, Longitude: 72.8777}

	geocoder.EXPECT().ReverseGeocode(ctx, p).Return("Mumbai, Maharashtra, India", nil)

	res, err := svc.ResolveGPS(ctx, p)

	require.NoError(t, err)
	assert.Equal(t, p, res.Point)
	assert.True(t, res.AddressFound)
	assert.Equal(t, "Mumbai, Maharashtra, India", res.Address)
}

func TestResolveGPS_GeocoderFailureKeepsCoordinates(t *testing.T) {
	svc, geocoder, _ := newTestLocationService(t)
	ctx := context.Background()
	p := models.Point{Latitude: 10, Longitude: 20}

	geocoder.EXPECT().ReverseGeocode(ctx, p).Return("", geolocation.ErrGeocoderUnavailable)

	res, err := svc.ResolveGPS(ctx, p)

	require.NoError(t, err)
	assert.Equal(t, p, res.Point)
	assert.False(t, res.AddressFound)
	assert.Empty(t, res.Address)
	assert.Equal(t, msgAddressManual, res.Message)
}

func TestResolveGPS_NotConfiguredExplains(t *testing.T) {
	svc, geocoder, _ := newTestLocationService(t)
	ctx := context.Background()

	geocoder.EXPECT().ReverseGeocode(ctx, gomock.Any()).Return("", geolocation.ErrGeocoderNotConfigured)

	res, err := svc.ResolveGPS(ctx, models.Point{Latitude: 1, Longitude: 1})

	require.NoError(t, err)
	assert.Contains(t, res.Message, "GOOGLE_MAPS_API_KEY")
	assert.Contains(t, res.Message, msgAddressManual)
}

func TestResolveGPS_OutOfRange(t *testing.T) {
	svc, _, _ := newTestLocationService(t)

	_, err := svc.ResolveGPS(context.Background(), models.Point{Latitude: 95})

	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestResolveCell(t *testing.T) {
	svc, _, cells := newTestLocationService(t)
	ctx := context.Background()
	cell := models.CellTower{MCC: 404, MNC: 45, LAC: 1234, CID: 56789}

	t.Run("located", func(t *testing.T) {
		cells.EXPECT().Locate(ctx, cell).Return(&models.Point{Latitude: 12.97, Longitude: 77.59}, nil)

		res, err := svc.ResolveCell(ctx, cell)

		require.NoError(t, err)
		assert.Equal(t, models.Point{Latitude: 12.97, Longitude: 77.59}, res.Point)
		assert.Equal(t, msgCellLocated, res.Message)
	})

	t.Run("not configured", func(t *testing.T) {
		cells.EXPECT().Locate(ctx, cell).Return(nil, geolocation.ErrCellNotConfigured)

		res, err := svc.ResolveCell(ctx, cell)

		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, apperr.KindNotConfigured, apperr.KindOf(err))
		assert.Equal(t, "Location service is not configured. API key missing.", apperr.MessageOf(err, ""))
	})
}
