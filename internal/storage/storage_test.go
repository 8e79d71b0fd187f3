package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/logger"
	"github.com/datawithdylan/site/internal/storage/memory"
	sqlitestorage "github.com/datawithdylan/site/internal/storage/sqlite"
)

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), config.Config{DataBackend: "memory"}, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &memory.SignupRepository{}, store.Signups)
	assert.Nil(t, store.DB)
}

func TestOpenSQLite(t *testing.T) {
	cfg := config.Config{
		DataBackend:    "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "data", "signups.db"),
		DBMaxOpenConns: 1,
	}
	store, err := Open(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &sqlitestorage.SignupRepository{}, store.Signups)

	saved, err := store.Signups.Save(context.Background(), signups.Signup{Email: "a@example.com", Status: signups.StatusPending})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DataBackend: "redis"}, logger.Discard())
	assert.EqualError(t, err, "unsupported data backend: redis")
}
