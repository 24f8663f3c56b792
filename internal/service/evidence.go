package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/models"
)

// DraftRepository хранит вложения отчета до его отправки
type DraftRepository interface {
	Create(ctx context.Context) (uuid.UUID, error)
	AddItem(ctx context.Context, id uuid.UUID, item evidence.Item) (int, error)
	RemoveItem(ctx context.Context, id uuid.UUID, index int) error
	ListItems(ctx context.Context, id uuid.UUID) ([]evidence.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EvidenceService управляет черновиками вложений
type EvidenceService interface {
	CreateDraft(ctx context.Context) (uuid.UUID, error)
	// Capture takes ownership of dev and releases it before returning.
	Capture(ctx context.Context, draftID uuid.UUID, kind evidence.Kind, dev evidence.Device, location *models.Point) (int, error)
	RemoveItem(ctx context.Context, draftID uuid.UUID, index int) error
	ListItems(ctx context.Context, draftID uuid.UUID) ([]evidence.Item, error)
}

type evidenceService struct {
	drafts DraftRepository
	logger *logrus.Logger
}

func NewEvidenceService(drafts DraftRepository, logger *logrus.Logger) EvidenceService {
	return &evidenceService{
		drafts: drafts,
		logger: logger,
	}
}

// draftStore привязывает evidence.Store к одному черновику
type draftStore struct {
	repo DraftRepository
	id   uuid.UUID
}

func (d draftStore) Add(ctx context.Context, item evidence.Item) (int, error) {
	return d.repo.AddItem(ctx, d.id, item)
}

func (d draftStore) Remove(ctx context.Context, index int) error {
	return d.repo.RemoveItem(ctx, d.id, index)
}

func (d draftStore) List(ctx context.Context) ([]evidence.Item, error) {
	return d.repo.ListItems(ctx, d.id)
}

func (s *evidenceService) CreateDraft(ctx context.Context) (uuid.UUID, error) {
	id, err := s.drafts.Create(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create evidence draft")
		return uuid.Nil, fmt.Errorf("service: could not create draft: %w", err)
	}
	s.logger.WithField("draft_id", id).Info("Evidence draft created")
	return id, nil
}

// Capture runs one capture session over dev and appends the result to the
// draft. dev is closed on every path.
func (s *evidenceService) Capture(ctx context.Context, draftID uuid.UUID, kind evidence.Kind, dev evidence.Device, location *models.Point) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "evidence",
		"method":   "Capture",
		"draft_id": draftID,
		"kind":     kind,
	})
	if !kind.Valid() {
		_ = dev.Close()
		return 0, apperr.New(apperr.KindInvalid, "kind must be photo or video")
	}
	if location != nil && !validPoint(*location) {
		_ = dev.Close()
		return 0, ErrInvalidLocation
	}

	open := func(context.Context, evidence.Facing) (evidence.Device, error) { return dev, nil }
	session, err := evidence.NewSession(ctx, draftStore{repo: s.drafts, id: draftID}, open, evidence.FacingEnvironment)
	if err != nil {
		_ = dev.Close()
		return 0, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to release capture device")
		}
	}()

	var count int
	if kind == evidence.KindPhoto {
		count, err = session.CapturePhoto(ctx, location)
	} else {
		count, err = session.RecordVideo(ctx)
	}
	if err != nil {
		log.WithError(err).Warn("Capture rejected")
		return 0, fmt.Errorf("service: could not capture evidence: %w", err)
	}

	log.WithField("count", count).Info("Evidence captured")
	return count, nil
}

func (s *evidenceService) RemoveItem(ctx context.Context, draftID uuid.UUID, index int) error {
	if err := s.drafts.RemoveItem(ctx, draftID, index); err != nil {
		return fmt.Errorf("service: could not remove evidence: %w", err)
	}
	return nil
}

func (s *evidenceService) ListItems(ctx context.Context, draftID uuid.UUID) ([]evidence.Item, error) {
	items, err := s.drafts.ListItems(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list evidence: %w", err)
	}
	return items, nil
}
