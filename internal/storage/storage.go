// Package storage selects the signup repository for the configured DATA_BACKEND.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/database"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/storage/memory"
	pgstorage "github.com/datawithdylan/site/internal/storage/postgres"
	sqlitestorage "github.com/datawithdylan/site/internal/storage/sqlite"
)

// Store bundles the signup repository with the connection backing it, if any.
type Store struct {
	Signups signups.Repository
	DB      *database.DB
}

// Open connects and migrates the configured backend.
func Open(ctx context.Context, cfg config.Config, logr *slog.Logger) (*Store, error) {
	switch cfg.DataBackend {
	case "memory":
		logr.Info("using in-memory repositories (DATA_BACKEND=memory)")
		return &Store{Signups: memory.NewSignupRepository()}, nil
	case "postgres":
		db, err := connect(ctx, cfg, logr, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logr.Info("using postgres repositories (DATA_BACKEND=postgres)")
		return &Store{Signups: pgstorage.NewSignupRepository(db.DB), DB: db}, nil
	case "sqlite":
		dsn, err := database.SQLiteDSN(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		db, err := connect(ctx, cfg, logr, "sqlite", dsn)
		if err != nil {
			return nil, err
		}
		logr.Info("using sqlite repositories (DATA_BACKEND=sqlite)", "path", cfg.SQLitePath)
		return &Store{Signups: sqlitestorage.NewSignupRepository(db.DB), DB: db}, nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

func connect(ctx context.Context, cfg config.Config, logr *slog.Logger, driver, dsn string) (*database.DB, error) {
	db, err := database.Connect(ctx, database.Options{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		Logger:          logr,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.RunMigrations(ctx, nil); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	return db, nil
}

// Close releases the database connection when there is one.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.DB.Close()
}
