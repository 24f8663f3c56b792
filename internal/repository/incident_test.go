package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/incident_triage/internal/models"
	"github.com/shenikar/incident_triage/internal/service"
	"github.com/shenikar/incident_triage/internal/triage"
)

func newIncident(status models.Status, location *models.Point) *models.Incident {
	return &models.Incident{
		Type:           models.TypeHazard,
		Severity:       models.SeverityWarning,
		Location:       location,
		Address:        "Near the old toll plaza",
		Description:    "Fallen tree blocking the road",
		HelpNeeded:     []string{"Municipal crew"},
		PeopleAffected: 0,
		Evidence:       []string{},
		Reporter:       models.Reporter{Name: "Meera"},
		Assessment:     models.Assessment{IsAuthentic: true, Confidence: 0.7, Summary: "Plausible"},
		Status:         status,
	}
}

func TestIncidentRepository_CreateAndGet(t *testing.T) {
	repo := NewIncidentRepository(testPostgres(t), nil, time.Minute)
	ctx := context.Background()

	located := newIncident(models.StatusVerifying, &models.Point{Latitude: 19.0760, Longitude: 72.8777})
	require.NoError(t, repo.Create(ctx, located))
	assert.NotEqual(t, uuid.Nil, located.ID)
	assert.False(t, located.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, located.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.InDelta(t, 19.0760, got.Location.Latitude, 1e-9)
	assert.InDelta(t, 72.8777, got.Location.Longitude, 1e-9)
	assert.Equal(t, located.HelpNeeded, got.HelpNeeded)

	unlocated := newIncident(models.StatusUnverified, nil)
	require.NoError(t, repo.Create(ctx, unlocated))
	got, err = repo.GetByID(ctx, unlocated.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Location)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestIncidentRepository_ApplyVerification(t *testing.T) {
	repo := NewIncidentRepository(testPostgres(t), nil, time.Minute)
	ctx := context.Background()
	policy := triage.Policy{ConfirmThreshold: 2, FalseThreshold: 2, Window: time.Hour}

	inc := newIncident(models.StatusUnverified, nil)
	require.NoError(t, repo.Create(ctx, inc))

	vote := func(user string, verdict models.Verdict) (*models.VerificationResult, error) {
		return repo.ApplyVerification(ctx, &models.Verification{IncidentID: inc.ID, UserID: user, Verdict: verdict}, policy)
	}

	res, err := vote("u1", models.VerdictConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnverified, res.Incident.Status)
	assert.Equal(t, 1, res.Incident.VerificationCount)

	_, err = vote("u1", models.VerdictConfirm)
	require.ErrorIs(t, err, service.ErrAlreadyVoted)

	res, err = vote("u2", models.VerdictConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnverified, res.PreviousStatus)
	assert.Equal(t, models.StatusVerifying, res.Incident.Status)
	assert.Equal(t, 2, res.Incident.VerificationCount)

	// Голоса до смены статуса не учитываются в новом окне
	res, err = vote("u3", models.VerdictConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerifying, res.Incident.Status)

	res, err = vote("u4", models.VerdictConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, res.Incident.Status)

	_, err = vote("u5", models.VerdictFalse)
	require.ErrorIs(t, err, triage.ErrTerminalStatus)

	got, err := repo.GetByID(ctx, inc.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.VerificationCount, "rejected vote must be rolled back")
}

func TestIncidentRepository_SetStatusAndNearby(t *testing.T) {
	repo := NewIncidentRepository(testPostgres(t), nil, time.Minute)
	ctx := context.Background()
	p := &models.Point{Latitude: -33.8688, Longitude: 151.2093}

	inc := newIncident(models.StatusVerifying, p)
	require.NoError(t, repo.Create(ctx, inc))

	found, err := repo.FindNearby(ctx, p.Latitude, p.Longitude+0.001, 500)
	require.NoError(t, err)
	assert.True(t, containsID(found, inc.ID), fmt.Sprintf("expected %s nearby", inc.ID))

	res, err := repo.SetStatus(ctx, inc.ID, models.StatusFalse)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerifying, res.PreviousStatus)
	assert.Equal(t, models.StatusFalse, res.Incident.Status)

	found, err = repo.FindNearby(ctx, p.Latitude, p.Longitude, 500)
	require.NoError(t, err)
	assert.False(t, containsID(found, inc.ID), "False incidents are not live")

	stats, err := repo.GetStats(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.ByStatus[models.StatusFalse], 1)
}

func containsID(incidents []*models.Incident, id uuid.UUID) bool {
	for _, inc := range incidents {
		if inc.ID == id {
			return true
		}
	}
	return false
}

func TestIncidentRepository_CacheSkipsStaleCopy(t *testing.T) {
	repo := NewIncidentRepository(nil, testRedis(t), time.Minute)
	ctx := context.Background()

	changedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	before := newIncident(models.StatusVerifying, nil)
	before.ID = uuid.New()
	before.StatusChangedAt = changedAt
	before.VerificationCount = 2

	after := *before
	after.Status = models.StatusVerified
	after.StatusChangedAt = changedAt.Add(time.Second)
	after.VerificationCount = 3

	// Голос закоммичен и кэш сброшен раньше, чем медленный читатель положил старую копию
	require.NoError(t, repo.InvalidateIncidentCache(ctx, &after))
	require.NoError(t, repo.SetIncidentCache(ctx, before))

	cached, err := repo.GetIncidentFromCache(ctx, before.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, repo.SetIncidentCache(ctx, &after))
	cached, err = repo.GetIncidentFromCache(ctx, before.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, models.StatusVerified, cached.Status)
	assert.Equal(t, 3, cached.VerificationCount)

	// Модерация без голоса: растет только status_changed_at
	moderated := after
	moderated.Status = models.StatusFalse
	moderated.StatusChangedAt = after.StatusChangedAt.Add(time.Second)
	require.NoError(t, repo.InvalidateIncidentCache(ctx, &moderated))
	require.NoError(t, repo.SetIncidentCache(ctx, &after))
	cached, err = repo.GetIncidentFromCache(ctx, before.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
