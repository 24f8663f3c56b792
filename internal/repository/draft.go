package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/service"
)

const (
	draftMissing = -2
	draftFull    = -1
	// draftTombstone помечает элемент перед LREM, чтобы удалить его по индексу
	draftTombstone = "__removed__"
)

// addItemScript appends ARGV[1] unless the draft is gone or already holds
// ARGV[2] items, and refreshes the TTL on both keys.
var addItemScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -2
end
if redis.call('LLEN', KEYS[2]) >= tonumber(ARGV[2]) then
	return -1
end
local n = redis.call('RPUSH', KEYS[2], ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
redis.call('PEXPIRE', KEYS[2], ARGV[3])
return n
`)

var removeItemScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -2
end
local i = tonumber(ARGV[1])
local n = redis.call('LLEN', KEYS[2])
if i < 0 or i >= n then
	return -1
end
redis.call('LSET', KEYS[2], i, ARGV[2])
redis.call('LREM', KEYS[2], 1, ARGV[2])
return n - 1
`)

// DraftRepository хранит черновики вложений в Redis
type DraftRepository struct {
	redisClient redis.Cmdable
	ttl         time.Duration
}

func NewDraftRepository(redisClient redis.Cmdable, ttl time.Duration) service.DraftRepository {
	return &DraftRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Ключи черновика в одном hash slot
func draftKeys(id uuid.UUID) []string {
	base := fmt.Sprintf("evidence_draft:{%s}", id.String())
	return []string{base, base + ":items"}
}

func (r *DraftRepository) Create(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	if err := r.redisClient.Set(ctx, draftKeys(id)[0], time.Now().UTC().Format(time.RFC3339), r.ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create evidence draft: %w", err)
	}
	return id, nil
}

func (r *DraftRepository) AddItem(ctx context.Context, id uuid.UUID, item evidence.Item) (int, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal evidence item: %w", err)
	}
	n, err := addItemScript.Run(ctx, r.redisClient, draftKeys(id),
		payload, evidence.MaxItems, strconv.FormatInt(r.ttl.Milliseconds(), 10),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to add evidence item: %w", err)
	}
	switch n {
	case draftMissing:
		return 0, service.ErrDraftNotFound
	case draftFull:
		return evidence.MaxItems, evidence.ErrLimitReached
	}
	return n, nil
}

func (r *DraftRepository) RemoveItem(ctx context.Context, id uuid.UUID, index int) error {
	n, err := removeItemScript.Run(ctx, r.redisClient, draftKeys(id), index, draftTombstone).Int()
	if err != nil {
		return fmt.Errorf("failed to remove evidence item: %w", err)
	}
	switch n {
	case draftMissing:
		return service.ErrDraftNotFound
	case draftFull:
		return evidence.ErrItemNotFound
	}
	return nil
}

func (r *DraftRepository) ListItems(ctx context.Context, id uuid.UUID) ([]evidence.Item, error) {
	keys := draftKeys(id)
	exists, err := r.redisClient.Exists(ctx, keys[0]).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read evidence draft: %w", err)
	}
	if exists == 0 {
		return nil, service.ErrDraftNotFound
	}

	raw, err := r.redisClient.LRange(ctx, keys[1], 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence items: %w", err)
	}
	items := make([]evidence.Item, 0, len(raw))
	for _, s := range raw {
		var item evidence.Item
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evidence item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *DraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, draftKeys(id)...).Err(); err != nil {
		return fmt.Errorf("failed to delete evidence draft: %w", err)
	}
	return nil
}
