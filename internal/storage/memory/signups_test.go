package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawithdylan/site/internal/domain/signups"
)

func TestSignupRepositoryKeepsCreatedAt(t *testing.T) {
	repo := NewSignupRepository()
	ctx := context.Background()

	created, err := repo.Save(ctx, signups.Signup{Email: "a@example.com", Tags: []string{"1"}})
	require.NoError(t, err)

	update := created
	update.CreatedAt = time.Time{}
	update.Status = signups.StatusSubscribed
	saved, err := repo.Save(ctx, update)
	require.NoError(t, err)
	assert.True(t, saved.CreatedAt.Equal(created.CreatedAt), "created_at changed: %v -> %v", created.CreatedAt, saved.CreatedAt)
}

func TestSignupRepositoryReturnsCopies(t *testing.T) {
	repo := NewSignupRepository()
	ctx := context.Background()

	created, err := repo.Save(ctx, signups.Signup{Email: "a@example.com", Tags: []string{"1"}})
	require.NoError(t, err)

	got, _ := repo.FindByID(ctx, created.ID)
	got.Tags[0] = "mutated"

	again, _ := repo.FindByID(ctx, created.ID)
	assert.Equal(t, []string{"1"}, again.Tags)
}

func TestSignupRepositoryListOffsetBeyondEnd(t *testing.T) {
	repo := NewSignupRepository()
	list, err := repo.List(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSignupRepositoryListKeepsInsertionOrderOnTies(t *testing.T) {
	repo := NewSignupRepository()
	ctx := context.Background()
	same := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 6; i++ {
		s, err := repo.Save(ctx, signups.Signup{Email: "a@example.com"})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	// Rewrite newest first so update order differs from insertion order.
	for i := len(ids) - 1; i >= 0; i-- {
		s, err := repo.FindByID(ctx, ids[i])
		require.NoError(t, err)
		s.CreatedAt = same
		_, err = repo.Save(ctx, s)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	got := make([]string, len(list))
	for i, s := range list {
		got[i] = s.ID
	}
	assert.Equal(t, ids, got)
}
