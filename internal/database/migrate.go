package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"log/slog"
)

// Migrator defines an interface capable of applying schema migrations.
type Migrator interface {
	Up(ctx context.Context) error
}

// SQLMigrator executes .sql migration files against a database connection.
// Applied files are tracked in schema_migrations so each runs once.
type SQLMigrator struct {
	Logger  *slog.Logger
	DB      *sql.DB
	FS      fs.FS
	Path    string
	Dialect string
}

// NewSQLMigrator builds a migrator that runs SQL statements from the provided filesystem.
func NewSQLMigrator(db *sql.DB, f fs.FS, dir, dialect string, logger *slog.Logger) *SQLMigrator {
	return &SQLMigrator{DB: db, FS: f, Path: dir, Dialect: dialect, Logger: logger}
}

// NewEmbeddedMigrator returns a migrator over the compiled-in migrations for dialect.
func NewEmbeddedMigrator(db *sql.DB, dialect string, logger *slog.Logger) (*SQLMigrator, error) {
	f, err := MigrationsFS(dialect)
	if err != nil {
		return nil, err
	}
	return NewSQLMigrator(db, f, ".", dialect, logger), nil
}

// Up executes all pending *.up.sql files in lexical order.
func (m *SQLMigrator) Up(ctx context.Context) error {
	if m == nil {
		return errors.New("sql migrator is nil")
	}
	if m.DB == nil {
		return errors.New("sql migrator requires a database handle")
	}
	if m.FS == nil {
		return errors.New("sql migrator requires a filesystem")
	}
	if m.Path == "" {
		return errors.New("sql migrator requires a path")
	}

	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := m.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(m.FS, m.Path)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	applied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		done, err := m.isApplied(ctx, name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		contents, err := fs.ReadFile(m.FS, path.Join(m.Path, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		statements := splitSQLStatements(string(contents))
		if len(statements) == 0 {
			logger.Info("skipping empty migration", "file", name)
			continue
		}

		if err := m.apply(ctx, name, statements); err != nil {
			return err
		}
		applied++
		logger.Info("migration applied", "file", name)
	}

	if applied == 0 {
		logger.Info("no migrations to run")
	}
	return nil
}

func (m *SQLMigrator) apply(ctx context.Context, name string, statements []string) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %s [%d]: %w", name, i+1, err)
		}
	}

	record := fmt.Sprintf("INSERT INTO schema_migrations (name, applied_at) VALUES (%s, %s)", m.placeholder(1), m.placeholder(2))
	if _, err := tx.ExecContext(ctx, record, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return tx.Commit()
}

func (m *SQLMigrator) isApplied(ctx context.Context, name string) (bool, error) {
	query := "SELECT COUNT(1) FROM schema_migrations WHERE name = " + m.placeholder(1)
	var n int
	if err := m.DB.QueryRowContext(ctx, query, name).Scan(&n); err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return n > 0, nil
}

func (m *SQLMigrator) placeholder(n int) string {
	if m.Dialect == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func splitSQLStatements(sqlText string) []string {
	raw := strings.Split(sqlText, ";")
	out := make([]string, 0, len(raw))
	for _, stmt := range raw {
		trimmed := strings.TrimSpace(stmt)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
