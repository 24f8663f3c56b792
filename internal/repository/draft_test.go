package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/service"
)

func item(n byte) evidence.Item {
	return evidence.Item{
		Kind:       evidence.KindPhoto,
		MIMEType:   "image/jpeg",
		DataURI:    evidence.EncodeDataURI("image/jpeg", []byte{0xff, 0xd8, n}),
		CapturedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestDraftRepository_CapAtFive(t *testing.T) {
	repo := NewDraftRepository(testRedis(t), time.Minute)
	ctx := context.Background()

	id, err := repo.Create(ctx)
	require.NoError(t, err)

	for i := 1; i <= evidence.MaxItems; i++ {
		n, err := repo.AddItem(ctx, id, item(byte(i)))
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err := repo.AddItem(ctx, id, item(6))
	require.ErrorIs(t, err, evidence.ErrLimitReached)
	assert.Equal(t, evidence.MaxItems, n)

	items, err := repo.ListItems(ctx, id)
	require.NoError(t, err)
	assert.Len(t, items, evidence.MaxItems)
}

func TestDraftRepository_RemoveKeepsOrder(t *testing.T) {
	repo := NewDraftRepository(testRedis(t), time.Minute)
	ctx := context.Background()

	id, err := repo.Create(ctx)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_, err := repo.AddItem(ctx, id, item(byte(i)))
		require.NoError(t, err)
	}

	require.NoError(t, repo.RemoveItem(ctx, id, 1))
	require.ErrorIs(t, repo.RemoveItem(ctx, id, 2), evidence.ErrItemNotFound)

	items, err := repo.ListItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, item(1), items[0])
	assert.Equal(t, item(3), items[1])
}

func TestDraftRepository_Missing(t *testing.T) {
	repo := NewDraftRepository(testRedis(t), time.Minute)
	ctx := context.Background()
	missing := uuid.New()

	_, err := repo.ListItems(ctx, missing)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)

	_, err = repo.AddItem(ctx, missing, item(1))
	assert.ErrorIs(t, err, service.ErrDraftNotFound)

	id, err := repo.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.ListItems(ctx, id)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}
