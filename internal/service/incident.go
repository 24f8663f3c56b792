package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/authenticity"
	"github.com/shenikar/incident_triage/internal/config"
	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/feed"
	"github.com/shenikar/incident_triage/internal/mapview"
	"github.com/shenikar/incident_triage/internal/models"
	"github.com/shenikar/incident_triage/internal/triage"
	"github.com/shenikar/incident_triage/internal/webhook"
)

const (
	defaultPageSize     = 20
	maxPageSize         = 100
	defaultNearbyRadius = 1000.0
	maxNearbyRadius     = 50000.0
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListAll(ctx context.Context) ([]*models.Incident, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.Incident, error)
	// ApplyVerification records the vote and moves the status in one
	// transaction. An error from rule.Next rolls the vote back.
	ApplyVerification(ctx context.Context, v *models.Verification, rule models.TransitionRule) (*models.VerificationResult, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.VerificationResult, error)
	GetStats(ctx context.Context, since time.Time) (*models.Stats, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, incident *models.Incident) error
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	SubmitIncident(ctx context.Context, sub *models.Submission) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListFeed(ctx context.Context, q feed.Query) (*feed.Result, error)
	NearbyIncidents(ctx context.Context, userID string, lat, lon, radiusMeters float64) ([]*models.Incident, error)
	Verify(ctx context.Context, id uuid.UUID, userID string, verdict models.Verdict) (*models.Incident, error)
	ModerateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Incident, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	MapView(ctx context.Context, selected *uuid.UUID, center *models.Point) (*mapview.View, error)
	Summarize(ctx context.Context, id uuid.UUID) (string, error)
}

type incidentService struct {
	repo      IncidentRepository
	drafts    DraftRepository
	validator authenticity.Validator
	publisher webhook.WebhookPublisher
	presenter *mapview.Presenter
	policy    triage.Policy
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	drafts DraftRepository,
	validator authenticity.Validator,
	publisher webhook.WebhookPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:      repo,
		drafts:    drafts,
		validator: validator,
		publisher: publisher,
		presenter: mapview.NewPresenter(cfg.StadiaMapsAPIKey),
		policy: triage.Policy{
			ConfirmThreshold: cfg.VerifyConfirmThreshold,
			FalseThreshold:   cfg.VerifyFalseThreshold,
			Window:           cfg.VerificationWindow(),
		},
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SubmitIncident проверяет отчет, получает вердикт валидатора и сохраняет
// инцидент. Без успешного вердикта ничего не сохраняется.
func (s *incidentService) SubmitIncident(ctx context.Context, sub *models.Submission) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "SubmitIncident",
		"type":    sub.Type,
	})
	log.Info("Attempting to submit a new incident")

	if err := sub.Validate(); err != nil {
		log.WithError(err).Warn("Submission rejected by validation")
		return nil, fmt.Errorf("service: invalid submission: %w", err)
	}

	attachments := append([]string(nil), sub.Evidence...)
	if sub.DraftID != nil {
		items, err := s.drafts.ListItems(ctx, *sub.DraftID)
		if err != nil {
			log.WithError(err).Warn("Failed to load evidence draft")
			return nil, fmt.Errorf("service: could not load evidence draft: %w", err)
		}
		for _, item := range items {
			attachments = append(attachments, item.DataURI)
		}
	}
	if err := evidence.ValidateAttachments(attachments); err != nil {
		log.WithError(err).Warn("Submission rejected: invalid evidence")
		return nil, fmt.Errorf("service: invalid evidence: %w", err)
	}

	assessment, err := s.validator.Validate(ctx, authenticity.Request{
		Type:           sub.Type,
		Severity:       sub.Severity,
		Location:       locationText(sub.Address, sub.Location),
		Description:    sub.Description,
		HelpNeeded:     sub.HelpNeeded,
		PeopleAffected: sub.PeopleAffected,
		Evidence:       attachments,
	})
	if err != nil {
		log.WithError(err).Error("Authenticity validation failed, incident not saved")
		return nil, fmt.Errorf("service: could not validate incident: %w", err)
	}

	incident := &models.Incident{
		Type:           sub.Type,
		Severity:       sub.Severity,
		Location:       sub.Location,
		Address:        strings.TrimSpace(sub.Address),
		Description:    strings.TrimSpace(sub.Description),
		HelpNeeded:     nonBlank(sub.HelpNeeded),
		PeopleAffected: sub.PeopleAffected,
		Evidence:       attachments,
		Reporter:       sub.Reporter,
		Assessment:     *assessment,
		Status:         triage.InitialStatus(assessment.IsAuthentic),
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	if sub.DraftID != nil {
		if err := s.drafts.Delete(ctx, *sub.DraftID); err != nil {
			log.WithError(err).Warn("Failed to delete evidence draft")
		}
	}
	s.publish(ctx, log, webhook.Event{
		Type:       webhook.EventIncidentCreated,
		IncidentID: incident.ID,
		Status:     incident.Status,
		Severity:   incident.Severity,
		Location:   incident.Location,
		Timestamp:  s.now().UTC(),
		Incidents:  []*models.Incident{incident},
	})

	log.WithFields(logrus.Fields{
		"incident_id": incident.ID,
		"status":      incident.Status,
	}).Info("Incident created successfully")
	return incident, nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	log.Info("Incident fetched successfully")
	return incident, nil
}

// ListFeed возвращает упорядоченную ленту инцидентов, пересчитанную на каждый запрос
func (s *incidentService) ListFeed(ctx context.Context, q feed.Query) (*feed.Result, error) {
	if q.Mode == "" {
		q.Mode = feed.SortRecency
	}
	if !q.Mode.Valid() {
		return nil, ErrInvalidSortMode
	}
	if q.Viewer != nil && !validPoint(*q.Viewer) {
		return nil, ErrInvalidLocation
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListFeed",
		"sort":      q.Mode,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
	log.Info("Listing incidents")

	incidents, err := s.repo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	viewer := q.Viewer
	if viewer == nil {
		viewer = s.defaultViewer()
	}
	entries := feed.Assemble(incidents, feed.Options{
		Mode:                q.Mode,
		Viewer:              viewer,
		MissingLocationLast: s.cfg.FeedMissingLocationLast,
	})

	log.WithField("count", len(entries)).Info("Incidents listed successfully")
	return &feed.Result{
		Entries:  feed.Page(entries, q.Page, q.PageSize),
		Total:    len(entries),
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// NearbyIncidents находит живые инциденты рядом с точкой пользователя и
// оповещает подписчиков, если такие есть
func (s *incidentService) NearbyIncidents(ctx context.Context, userID string, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "NearbyIncidents",
		"user_id": userID,
	})
	point := models.Point{Latitude: lat, Longitude: lon}
	if !validPoint(point) {
		return nil, ErrInvalidLocation
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultNearbyRadius
	}
	radiusMeters = min(radiusMeters, maxNearbyRadius)
	log.Info("Checking user location")

	incidents, err := s.repo.FindNearby(ctx, lat, lon, radiusMeters)
	if err != nil {
		log.WithError(err).Error("Failed to find incidents near location")
		return nil, fmt.Errorf("service: failed to find nearby incidents: %w", err)
	}

	isDanger := len(incidents) > 0
	log.WithField("is_danger", isDanger).Info("Location check completed")
	if isDanger {
		s.publish(ctx, log, webhook.Event{
			Type:      webhook.EventLocationAlert,
			UserID:    userID,
			Location:  &point,
			Timestamp: s.now().UTC(),
			Incidents: incidents,
		})
	}
	return incidents, nil
}

// Verify записывает голос пользователя и при достижении порога меняет статус
func (s *incidentService) Verify(ctx context.Context, id uuid.UUID, userID string, verdict models.Verdict) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "Verify",
		"incident_id": id,
		"user_id":     userID,
		"verdict":     verdict,
	})
	if !verdict.Valid() {
		return nil, ErrInvalidVerdict
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.New(apperr.KindInvalid, "user id is required")
	}
	log.Info("Recording verification")

	result, err := s.repo.ApplyVerification(ctx, &models.Verification{
		IncidentID: id,
		UserID:     userID,
		Verdict:    verdict,
	}, s.policy)
	if err != nil {
		log.WithError(err).Warn("Verification not applied")
		return nil, fmt.Errorf("service: could not apply verification: %w", err)
	}

	s.afterStatusWrite(ctx, log, result)
	return result.Incident, nil
}

// ModerateStatus выставляет любой статус, в том числе выводит инцидент из конечного
func (s *incidentService) ModerateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "ModerateStatus",
		"incident_id": id,
		"status":      status,
	})
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	log.Info("Moderator status change")

	result, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		log.WithError(err).Error("Failed to set incident status")
		return nil, fmt.Errorf("service: could not set status: %w", err)
	}

	s.afterStatusWrite(ctx, log, result)
	return result.Incident, nil
}

func (s *incidentService) afterStatusWrite(ctx context.Context, log *logrus.Entry, result *models.VerificationResult) {
	inc := result.Incident
	if err := s.repo.InvalidateIncidentCache(ctx, inc); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	if inc.Status == result.PreviousStatus {
		return
	}
	log.WithFields(logrus.Fields{
		"from": result.PreviousStatus,
		"to":   inc.Status,
	}).Info("Incident status changed")
	s.publish(ctx, log, webhook.Event{
		Type:           webhook.EventStatusChanged,
		IncidentID:     inc.ID,
		Status:         inc.Status,
		PreviousStatus: result.PreviousStatus,
		Severity:       inc.Severity,
		Location:       inc.Location,
		Timestamp:      s.now().UTC(),
	})
}

// GetStats возвращает количество инцидентов по статусам и число активных проверяющих
func (s *incidentService) GetStats(ctx context.Context) (*models.Stats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetStats",
	})
	since := s.now().Add(-s.policy.Window)

	stats, err := s.repo.GetStats(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to get stats from repository")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	log.WithField("total", stats.Total).Info("Stats fetched successfully")
	return stats, nil
}

// MapView строит маркеры и всплывающую карточку для выбранного инцидента
func (s *incidentService) MapView(ctx context.Context, selected *uuid.UUID, center *models.Point) (*mapview.View, error) {
	if center == nil {
		center = s.defaultViewer()
	} else if !validPoint(*center) {
		return nil, ErrInvalidLocation
	}

	incidents, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list incidents for map")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	var sel mapview.Selection
	if selected != nil {
		sel.Select(*selected)
	}
	view := s.presenter.Render(incidents, sel, *center)
	return &view, nil
}

// Summarize возвращает краткую сводку по инциденту
func (s *incidentService) Summarize(ctx context.Context, id uuid.UUID) (string, error) {
	incident, err := s.GetIncident(ctx, id)
	if err != nil {
		return "", err
	}
	summary, err := s.validator.Summarize(ctx, authenticity.SummaryRequest{
		Type:     incident.Type,
		Location: locationText(incident.Address, incident.Location),
		Severity: incident.Severity,
		Details:  incident.Description,
	})
	if err != nil {
		s.logger.WithError(err).WithField("incident_id", id).Error("Failed to summarize incident")
		return "", fmt.Errorf("service: could not summarize incident: %w", err)
	}
	return summary, nil
}

// publish отправляет событие без вложений: data URI остаются только в БД
func (s *incidentService) publish(ctx context.Context, log *logrus.Entry, event webhook.Event) {
	event.Incidents = withoutEvidence(event.Incidents)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event_type", event.Type).Error("Failed to publish webhook event")
	}
}

func withoutEvidence(incidents []*models.Incident) []*models.Incident {
	if incidents == nil {
		return nil
	}
	out := make([]*models.Incident, len(incidents))
	for i, inc := range incidents {
		stripped := *inc
		stripped.Evidence = nil
		out[i] = &stripped
	}
	return out
}

func (s *incidentService) defaultViewer() *models.Point {
	return &models.Point{Latitude: s.cfg.DefaultViewerLat, Longitude: s.cfg.DefaultViewerLon}
}

func validPoint(p models.Point) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

func locationText(address string, p *models.Point) string {
	if a := strings.TrimSpace(address); a != "" {
		return a
	}
	if p != nil {
		return fmt.Sprintf("%.5f, %.5f", p.Latitude, p.Longitude)
	}
	return ""
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
