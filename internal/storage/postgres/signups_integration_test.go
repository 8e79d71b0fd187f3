//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawithdylan/site/internal/database"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/logger"
	pgstorage "github.com/datawithdylan/site/internal/storage/postgres"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration tests")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "open db")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(context.Background()), "ping db")

	migrator, err := database.NewEmbeddedMigrator(db, "postgres", logger.Discard())
	require.NoError(t, err, "migrator")
	require.NoError(t, migrator.Up(context.Background()), "migrate")

	_, err = db.Exec("TRUNCATE signups")
	require.NoError(t, err, "cleanup signups")

	return db
}

func TestSignupRepositoryIntegration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := pgstorage.NewSignupRepository(db)

	created, err := repo.Save(ctx, signups.Signup{
		Email:     "integration@example.com",
		Interests: []signups.Interest{signups.InterestSQL},
		Tags:      []string{"22"},
		Consent:   true,
		Status:    signups.StatusPending,
	})
	require.NoError(t, err)

	created.Status = signups.StatusSubscribed
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	fetched, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, fetched.Email)
	assert.Equal(t, signups.StatusSubscribed, fetched.Status)
	assert.Equal(t, []string{"22"}, fetched.Tags)

	list, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestSignupRepositoryListOrdersTiesByInsertion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := pgstorage.NewSignupRepository(db)

	var ids []string
	for i := 0; i < 5; i++ {
		s, err := repo.Save(ctx, signups.Signup{Email: "tie@example.com", Status: signups.StatusPending})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	_, err := db.ExecContext(ctx, "UPDATE signups SET created_at = '2026-01-01T00:00:00Z'")
	require.NoError(t, err)

	list, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	got := make([]string, len(list))
	for i, s := range list {
		got[i] = s.ID
	}
	assert.Equal(t, ids, got)
}
