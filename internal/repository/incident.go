package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/incident_triage/internal/models"
	"github.com/shenikar/incident_triage/internal/service"
)

const incidentColumns = `
	id,
	type,
	severity,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	address,
	description,
	help_needed,
	people_affected,
	evidence,
	reporter_name,
	reporter_avatar_url,
	is_authentic,
	authenticity_confidence,
	ai_summary,
	status,
	verification_count,
	status_changed_at,
	created_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient redis.Cmdable
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient redis.Cmdable, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// scanIncident читает строку в порядке incidentColumns
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var (
		lat, lon *float64
		evidence []byte
	)
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Severity,
		&lat,
		&lon,
		&incident.Address,
		&incident.Description,
		&incident.HelpNeeded,
		&incident.PeopleAffected,
		&evidence,
		&incident.Reporter.Name,
		&incident.Reporter.AvatarURL,
		&incident.Assessment.IsAuthentic,
		&incident.Assessment.Confidence,
		&incident.Assessment.Summary,
		&incident.Status,
		&incident.VerificationCount,
		&incident.StatusChangedAt,
		&incident.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		incident.Location = &models.Point{Latitude: *lat, Longitude: *lon}
	}
	incident.Evidence = []string{}
	if len(evidence) > 0 {
		if err := json.Unmarshal(evidence, &incident.Evidence); err != nil {
			return nil, fmt.Errorf("failed to decode evidence: %w", err)
		}
	}
	return incident, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.Incident, error) {
	defer rows.Close()
	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	evidence, err := json.Marshal(incident.Evidence)
	if err != nil {
		return fmt.Errorf("failed to encode evidence: %w", err)
	}
	var lat, lon *float64
	if incident.Location != nil {
		lat, lon = &incident.Location.Latitude, &incident.Location.Longitude
	}

	query := `
		INSERT INTO incidents (
			type, severity, location, address, description, help_needed, people_affected,
			evidence, reporter_name, reporter_avatar_url,
			is_authentic, authenticity_confidence, ai_summary, status
		)
		VALUES (
			$1, $2,
			CASE WHEN $3::float8 IS NULL OR $4::float8 IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography END,
			$5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING id, status_changed_at, created_at;
	`
	err = r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Severity,
		lon,
		lat,
		incident.Address,
		incident.Description,
		incident.HelpNeeded,
		incident.PeopleAffected,
		string(evidence),
		incident.Reporter.Name,
		incident.Reporter.AvatarURL,
		incident.Assessment.IsAuthentic,
		incident.Assessment.Confidence,
		incident.Assessment.Summary,
		incident.Status,
	).Scan(&incident.ID, &incident.StatusChangedAt, &incident.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListAll возвращает все инциденты, новые первыми
func (r *IncidentRepository) ListAll(ctx context.Context) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	return collectIncidents(rows)
}

// FindNearby находит не опровергнутые инциденты в радиусе от точки
func (r *IncidentRepository) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			location IS NOT NULL
			AND status <> 'False'
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			)
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, lon, lat, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find incidents near location: %w", err)
	}
	return collectIncidents(rows)
}

// ApplyVerification блокирует строку инцидента, записывает голос, считает
// голоса в окне и обновляет статус и счетчик в одной транзакции
func (r *IncidentRepository) ApplyVerification(ctx context.Context, v *models.Verification, rule models.TransitionRule) (*models.VerificationResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin verification: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var (
		current   models.Status
		changedAt time.Time
		now       time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT status, status_changed_at, NOW() FROM incidents WHERE id = $1 FOR UPDATE;`,
		v.IncidentID,
	).Scan(&current, &changedAt, &now)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", v.IncidentID, service.ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO verifications (incident_id, user_id, verdict)
		VALUES ($1, $2, $3)
		ON CONFLICT (incident_id, user_id) DO NOTHING
		RETURNING id, created_at;
	`, v.IncidentID, v.UserID, v.Verdict).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to save verification: %w", err)
	}

	var tally models.VerificationTally
	err = tx.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE verdict = 'confirm'),
			COUNT(*) FILTER (WHERE verdict = 'false'),
			COUNT(*) FILTER (WHERE verdict = 'unsure')
		FROM verifications
		WHERE incident_id = $1 AND created_at > $2;
	`, v.IncidentID, rule.WindowStart(now, changedAt)).Scan(&tally.Confirmations, &tally.Rejections, &tally.Unsure)
	if err != nil {
		return nil, fmt.Errorf("failed to tally verifications: %w", err)
	}

	next, err := rule.Next(current, tally)
	if err != nil {
		return nil, err
	}

	incident, err := scanIncident(tx.QueryRow(ctx, `
		UPDATE incidents SET
			verification_count = verification_count + 1,
			status_changed_at = CASE WHEN status <> $2 THEN NOW() ELSE status_changed_at END,
			status = $2
		WHERE id = $1
		RETURNING `+incidentColumns+`;
	`, v.IncidentID, next))
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit verification: %w", err)
	}
	return &models.VerificationResult{Incident: incident, PreviousStatus: current}, nil
}

// SetStatus выставляет статус без учета голосов (модерация)
func (r *IncidentRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.VerificationResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin status update: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var previous models.Status
	err = tx.QueryRow(ctx, `SELECT status FROM incidents WHERE id = $1 FOR UPDATE;`, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}

	incident, err := scanIncident(tx.QueryRow(ctx, `
		UPDATE incidents SET
			status_changed_at = CASE WHEN status <> $2 THEN NOW() ELSE status_changed_at END,
			status = $2
		WHERE id = $1
		RETURNING `+incidentColumns+`;
	`, id, status))
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return &models.VerificationResult{Incident: incident, PreviousStatus: previous}, nil
}

// GetStats возвращает количество инцидентов по статусам и число уникальных
// пользователей, голосовавших начиная с since
func (r *IncidentRepository) GetStats(ctx context.Context, since time.Time) (*models.Stats, error) {
	stats := &models.Stats{
		ByStatus: map[models.Status]int{
			models.StatusUnverified: 0,
			models.StatusVerifying:  0,
			models.StatusVerified:   0,
			models.StatusFalse:      0,
		},
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM incidents GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status models.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error status count iteration: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM verifications WHERE created_at >= $1;`,
		since,
	).Scan(&stats.ActiveVerifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to count active verifiers: %w", err)
	}
	return stats, nil
}

// Ключи кэша инцидента в одном hash slot: сам документ и последняя известная ревизия
func incidentCacheKeys(id uuid.UUID) []string {
	base := fmt.Sprintf("incident:{%s}", id.String())
	return []string{base, base + ":rev"}
}

// cacheRevision растет при каждом изменении строки: голос увеличивает
// verification_count, смена статуса сдвигает status_changed_at
func cacheRevision(incident *models.Incident) (int, int64) {
	return incident.VerificationCount, incident.StatusChangedAt.UnixMicro()
}

// setCacheScript записывает ARGV[1], если ревизия не старше сохраненной в KEYS[2]
var setCacheScript = redis.NewScript(`
local rev = redis.call('HMGET', KEYS[2], 'count', 'changed')
if rev[1] and (tonumber(ARGV[2]) < tonumber(rev[1]) or tonumber(ARGV[3]) < tonumber(rev[2])) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[4])
return 1
`)

// invalidateCacheScript удаляет документ и поднимает ревизию до ARGV[1], ARGV[2]
var invalidateCacheScript = redis.NewScript(`
local rev = redis.call('HMGET', KEYS[2], 'count', 'changed')
local count = tonumber(ARGV[1])
local changed = tonumber(ARGV[2])
if rev[1] then
	count = math.max(count, tonumber(rev[1]))
	changed = math.max(changed, tonumber(rev[2]))
end
redis.call('HSET', KEYS[2], 'count', count, 'changed', changed)
redis.call('PEXPIRE', KEYS[2], ARGV[3])
redis.call('DEL', KEYS[1])
return 1
`)

// GetIncidentFromCache пытается получить инцидент из Redis; nil, nil при промахе
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKeys(id)[0]).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis на INCIDENT_CACHE_TTL.
// Копия, прочитанная до последнего изменения, в кэш не попадает.
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	count, changed := cacheRevision(incident)
	err = setCacheScript.Run(ctx, r.redisClient, incidentCacheKeys(incident.ID),
		val, count, changed, r.cacheTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша и запоминает
// ревизию изменившей его записи
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, incident *models.Incident) error {
	count, changed := cacheRevision(incident)
	err := invalidateCacheScript.Run(ctx, r.redisClient, incidentCacheKeys(incident.ID),
		count, changed, r.cacheTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
