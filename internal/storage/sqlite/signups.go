// Package sqlite provides a SQLite-backed signup store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datawithdylan/site/internal/domain/signups"
)

// SignupRepository persists signups in a SQLite database opened with the modernc driver.
type SignupRepository struct {
	db *sql.DB
}

func NewSignupRepository(db *sql.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

const selectSignup = `SELECT id, email, first_name, interests, tags, consent, status,
       provider_ref, error, source, created_at, updated_at
  FROM signups`

func (r *SignupRepository) FindByID(ctx context.Context, id string) (signups.Signup, error) {
	s, err := scanSignup(r.db.QueryRowContext(ctx, selectSignup+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return signups.Signup{}, signups.ErrNotFound
		}
		return signups.Signup{}, fmt.Errorf("find signup: %w", err)
	}
	return s, nil
}

func (r *SignupRepository) Save(ctx context.Context, signup signups.Signup) (signups.Signup, error) {
	if err := ctx.Err(); err != nil {
		return signups.Signup{}, err
	}
	// Millisecond precision is what the table stores.
	now := fromMillis(toMillis(time.Now()))

	if signup.ID == "" {
		signup.ID = uuid.NewString()
		_, err := r.db.ExecContext(ctx, `INSERT INTO signups (id, email, first_name, interests, tags, consent, status,
			provider_ref, error, source, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			signup.ID,
			signup.Email,
			signup.FirstName,
			joinInterests(signup.Interests),
			strings.Join(signup.Tags, ","),
			boolToInt(signup.Consent),
			string(signup.Status),
			signup.ProviderRef,
			signup.Error,
			signup.Source,
			toMillis(now),
			toMillis(now),
		)
		if err != nil {
			return signups.Signup{}, fmt.Errorf("insert signup: %w", err)
		}
		signup.CreatedAt = now
		signup.UpdatedAt = now
		return signup, nil
	}

	res, err := r.db.ExecContext(ctx, `UPDATE signups
		SET email = ?, first_name = ?, interests = ?, tags = ?, consent = ?, status = ?,
		    provider_ref = ?, error = ?, source = ?, updated_at = ?
		WHERE id = ?`,
		signup.Email,
		signup.FirstName,
		joinInterests(signup.Interests),
		strings.Join(signup.Tags, ","),
		boolToInt(signup.Consent),
		string(signup.Status),
		signup.ProviderRef,
		signup.Error,
		signup.Source,
		toMillis(now),
		signup.ID,
	)
	if err != nil {
		return signups.Signup{}, fmt.Errorf("update signup: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return signups.Signup{}, fmt.Errorf("update signup: %w", err)
	}
	if n == 0 {
		return signups.Signup{}, signups.ErrNotFound
	}

	var created int64
	if err := r.db.QueryRowContext(ctx, "SELECT created_at FROM signups WHERE id = ?", signup.ID).Scan(&created); err != nil {
		return signups.Signup{}, fmt.Errorf("read created_at: %w", err)
	}
	signup.CreatedAt = fromMillis(created)
	signup.UpdatedAt = now
	return signup, nil
}

func (r *SignupRepository) List(ctx context.Context, offset, limit int) ([]signups.Signup, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, selectSignup+" ORDER BY created_at, rowid LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer rows.Close()

	out := []signups.Signup{}
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signup: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSignup(row scanner) (signups.Signup, error) {
	var (
		s                  signups.Signup
		interests, tags    string
		status             string
		consent            int64
		created, updatedAt int64
	)
	if err := row.Scan(
		&s.ID, &s.Email, &s.FirstName, &interests, &tags, &consent, &status,
		&s.ProviderRef, &s.Error, &s.Source, &created, &updatedAt,
	); err != nil {
		return signups.Signup{}, err
	}
	s.Consent = consent != 0
	s.Status = signups.Status(status)
	if interests != "" {
		for _, v := range strings.Split(interests, ",") {
			s.Interests = append(s.Interests, signups.Interest(v))
		}
	}
	if tags != "" {
		s.Tags = strings.Split(tags, ",")
	}
	s.CreatedAt = fromMillis(created)
	s.UpdatedAt = fromMillis(updatedAt)
	return s, nil
}

func joinInterests(in []signups.Interest) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
