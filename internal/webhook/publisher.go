package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/incident_triage/internal/models"
)

const (
	webhookQueueKey = "webhook_events"
)

type EventType string

const (
	EventIncidentCreated EventType = "incident.created"
	EventStatusChanged   EventType = "incident.status_changed"
	// EventLocationAlert fires when a user checks a position that lies near
	// live incidents.
	EventLocationAlert EventType = "location.alert"
)

// Event - событие жизненного цикла инцидента для внешних подписчиков
type Event struct {
	Type           EventType          `json:"type"`
	IncidentID     uuid.UUID          `json:"incident_id"`
	Status         models.Status      `json:"status,omitempty"`
	PreviousStatus models.Status      `json:"previous_status,omitempty"`
	Severity       models.Severity    `json:"severity,omitempty"`
	UserID         string             `json:"user_id,omitempty"`
	Location       *models.Point      `json:"location,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
	Incidents      []*models.Incident `json:"incidents,omitempty"`
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisWebhookPublisher кладет события в очередь Redis, откуда их забирает WebhookWorker
type RedisWebhookPublisher struct {
	redisClient redis.Cmdable
}

func NewRedisWebhookPublisher(client redis.Cmdable) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
