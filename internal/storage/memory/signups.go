package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/datawithdylan/site/internal/domain/signups"
)

// SignupRepository is an in-memory implementation of signups.Repository.
type SignupRepository struct {
	mu      sync.RWMutex
	signups map[string]signups.Signup
	// seq records insertion order; List breaks created_at ties with it.
	seq  map[string]uint64
	next uint64
}

// NewSignupRepository returns an initialized in-memory repository.
func NewSignupRepository() *SignupRepository {
	return &SignupRepository{
		signups: make(map[string]signups.Signup),
		seq:     make(map[string]uint64),
	}
}

// FindByID returns a signup by identifier.
func (r *SignupRepository) FindByID(_ context.Context, id string) (signups.Signup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.signups[id]
	if !ok {
		return signups.Signup{}, signups.ErrNotFound
	}
	return cloneSignup(s), nil
}

// Save inserts or updates a signup record.
func (r *SignupRepository) Save(_ context.Context, signup signups.Signup) (signups.Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if signup.ID == "" {
		signup.ID = newID()
		signup.CreatedAt = now
	} else {
		existing, ok := r.signups[signup.ID]
		if ok {
			if signup.CreatedAt.IsZero() {
				signup.CreatedAt = existing.CreatedAt
			}
		} else {
			signup.CreatedAt = now
		}
	}
	signup.UpdatedAt = now
	if _, ok := r.seq[signup.ID]; !ok {
		r.next++
		r.seq[signup.ID] = r.next
	}
	r.signups[signup.ID] = cloneSignup(signup)
	return signup, nil
}

// List returns signups with simple offset/limit pagination.
func (r *SignupRepository) List(_ context.Context, offset, limit int) ([]signups.Signup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]signups.Signup, 0, len(r.signups))
	for _, s := range r.signups {
		list = append(list, cloneSignup(s))
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return r.seq[list[i].ID] < r.seq[list[j].ID]
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	if offset > len(list) {
		return []signups.Signup{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

func cloneSignup(s signups.Signup) signups.Signup {
	if s.Interests != nil {
		s.Interests = append([]signups.Interest(nil), s.Interests...)
	}
	if s.Tags != nil {
		s.Tags = append([]string(nil), s.Tags...)
	}
	return s
}
