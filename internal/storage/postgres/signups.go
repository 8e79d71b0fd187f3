package postgres

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

// SignupRepository persists signups using a *sql.DB handle.
type SignupRepository struct {
	db *sql.DB
}

// NewSignupRepository returns a repository backed by a pooled DB connection.
func NewSignupRepository(db *sql.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

const signupColumns = `id, email, first_name, interests, tags, consent, status,
               provider_ref, error, source, created_at, updated_at`

// FindByID fetches a signup by primary key.
func (r *SignupRepository) FindByID(ctx context.Context, id string) (signups.Signup, error) {
	query := `
        SELECT ` + signupColumns + `
          FROM signups
         WHERE id = $1
    `

	s, err := scanSignup(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return signups.Signup{}, signups.ErrNotFound
		}
		return signups.Signup{}, fmt.Errorf("find signup: %w", err)
	}
	return s, nil
}

// Save inserts or updates a signup record.
func (r *SignupRepository) Save(ctx context.Context, signup signups.Signup) (signups.Signup, error) {
	now := time.Now().UTC()

	if signup.ID == "" {
		const insert = `
            INSERT INTO signups (id, email, first_name, interests, tags, consent, status,
                                 provider_ref, error, source, created_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        `
		signup.ID = uuid.NewString()
		if _, err := r.db.ExecContext(ctx, insert,
			signup.ID,
			signup.Email,
			signup.FirstName,
			joinInterests(signup.Interests),
			strings.Join(signup.Tags, ","),
			signup.Consent,
			string(signup.Status),
			signup.ProviderRef,
			signup.Error,
			signup.Source,
			now,
			now,
		); err != nil {
			return signups.Signup{}, fmt.Errorf("insert signup: %w", err)
		}
		signup.CreatedAt = now
		signup.UpdatedAt = now
		return signup, nil
	}

	const update = `
        UPDATE signups
           SET email = $2,
               first_name = $3,
               interests = $4,
               tags = $5,
               consent = $6,
               status = $7,
               provider_ref = $8,
               error = $9,
               source = $10,
               updated_at = $11
         WHERE id = $1
        RETURNING created_at
    `

	var created time.Time
	err := r.db.QueryRowContext(ctx, update,
		signup.ID,
		signup.Email,
		signup.FirstName,
		joinInterests(signup.Interests),
		strings.Join(signup.Tags, ","),
		signup.Consent,
		string(signup.Status),
		signup.ProviderRef,
		signup.Error,
		signup.Source,
		now,
	).Scan(&created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return signups.Signup{}, signups.ErrNotFound
		}
		return signups.Signup{}, fmt.Errorf("update signup: %w", err)
	}

	signup.CreatedAt = created
	signup.UpdatedAt = now
	return signup, nil
}

// List returns signups ordered by creation date.
func (r *SignupRepository) List(ctx context.Context, offset, limit int) ([]signups.Signup, error) {
	query := `
        SELECT ` + signupColumns + `
          FROM signups
         ORDER BY created_at, seq
         OFFSET $1
    `
	args := []any{offset}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer rows.Close()

	result := []signups.Signup{}
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signup: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSignup(row scanner) (signups.Signup, error) {
	var (
		s         signups.Signup
		interests string
		tags      string
		status    string
	)
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.FirstName,
		&interests,
		&tags,
		&s.Consent,
		&status,
		&s.ProviderRef,
		&s.Error,
		&s.Source,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return signups.Signup{}, err
	}
	s.Status = signups.Status(status)
	s.Interests = splitInterests(interests)
	s.Tags = splitList(tags)
	return s, nil
}

func joinInterests(in []signups.Interest) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func splitInterests(raw string) []signups.Interest {
	parts := splitList(raw)
	if parts == nil {
		return nil
	}
	out := make([]signups.Interest, len(parts))
	for i, p := range parts {
		out[i] = signups.Interest(p)
	}
	return out
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
