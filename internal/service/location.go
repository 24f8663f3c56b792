package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/geolocation"
	"github.com/shenikar/incident_triage/internal/models"
)

const (
	msgAddressFound  = "Location found. Address resolved from coordinates."
	msgAddressManual = "Location found, but the address could not be determined. Please describe the location manually."
	msgCellLocated   = "Location found successfully."
)

// LocationService определяет местоположение репортера по GPS или соте
type LocationService interface {
	ResolveGPS(ctx context.Context, p models.Point) (*models.Resolution, error)
	ResolveCell(ctx context.Context, cell models.CellTower) (*models.Resolution, error)
}

type locationService struct {
	geocoder geolocation.Geocoder
	cells    geolocation.CellLocator
	logger   *logrus.Logger
}

func NewLocationService(geocoder geolocation.Geocoder, cells geolocation.CellLocator, logger *logrus.Logger) LocationService {
	return &locationService{
		geocoder: geocoder,
		cells:    cells,
		logger:   logger,
	}
}

// ResolveGPS всегда возвращает координаты; адрес добавляется, только если
// обратное геокодирование удалось
func (s *locationService) ResolveGPS(ctx context.Context, p models.Point) (*models.Resolution, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "ResolveGPS",
	})
	if !validPoint(p) {
		return nil, ErrInvalidLocation
	}

	res := &models.Resolution{Point: p}
	address, err := s.geocoder.ReverseGeocode(ctx, p)
	if err != nil {
		log.WithError(err).Warn("Reverse geocoding failed, keeping coordinates only")
		res.Message = msgAddressManual
		if apperr.KindOf(err) == apperr.KindNotConfigured {
			res.Message = apperr.MessageOf(err, msgAddressManual) + ". " + msgAddressManual
		}
		return res, nil
	}

	res.Address = address
	res.AddressFound = true
	res.Message = msgAddressFound
	log.Info("Location resolved")
	return res, nil
}

// ResolveCell определяет координаты по идентификаторам соты. В отличие от
// GPS здесь ошибка провайдера возвращается вызывающему.
func (s *locationService) ResolveCell(ctx context.Context, cell models.CellTower) (*models.Resolution, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "ResolveCell",
		"mcc":     cell.MCC,
		"mnc":     cell.MNC,
	})
	log.Info("Resolving location from cell tower")

	p, err := s.cells.Locate(ctx, cell)
	if err != nil {
		log.WithError(err).Error("Cell tower lookup failed")
		return nil, fmt.Errorf("service: could not locate cell tower: %w", err)
	}

	log.Info("Cell tower located")
	return &models.Resolution{Point: *p, Message: msgCellLocated}, nil
}
