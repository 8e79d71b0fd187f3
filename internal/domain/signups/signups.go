package signups

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Domain-level errors for signups.
var (
	ErrNotImplemented = errors.New("signups repository: not implemented")
	ErrNotFound       = errors.New("signup not found")
	ErrProviderFailed = errors.New("newsletter provider failed")
)

// Status tracks where a signup is in its hand-off to the provider.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSubscribed Status = "subscribed"
	StatusFailed     Status = "failed"
)

// Signup is one recorded attempt to join the mailing list.
type Signup struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	Interests   []Interest `json:"interests,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Consent     bool       `json:"consent"`
	Status      Status     `json:"status"`
	ProviderRef string     `json:"provider_ref,omitempty"`
	Error       string     `json:"error,omitempty"`
	Source      string     `json:"source,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Repository abstracts persistence for signups.
type Repository interface {
	FindByID(ctx context.Context, id string) (Signup, error)
	Save(ctx context.Context, signup Signup) (Signup, error)
	List(ctx context.Context, offset, limit int) ([]Signup, error)
}

// NullRepository stub implementation returning ErrNotImplemented.
type NullRepository struct{}

func (NullRepository) FindByID(context.Context, string) (Signup, error) {
	return Signup{}, ErrNotImplemented
}

func (NullRepository) Save(context.Context, Signup) (Signup, error) {
	return Signup{}, ErrNotImplemented
}

func (NullRepository) List(context.Context, int, int) ([]Signup, error) {
	return nil, ErrNotImplemented
}

// Subscriber is what gets handed to the newsletter provider.
type Subscriber struct {
	Email     string
	FirstName string
	Tags      []string
}

// Receipt is the provider's acknowledgement of a subscription.
type Receipt struct {
	Reference string
	State     string
}

// Provider forwards subscribers to the hosted mailing list.
type Provider interface {
	Name() string
	Subscribe(ctx context.Context, sub Subscriber) (Receipt, error)
}

// TagResolver maps an interest to the provider's tag identifier.
type TagResolver func(Interest) (string, bool)

// Service exposes business operations over signups.
type Service interface {
	Subscribe(ctx context.Context, input Input) (Signup, error)
	Get(ctx context.Context, id string) (Signup, error)
	List(ctx context.Context, offset, limit int) ([]Signup, error)
}

// Options configures the signup service.
type Options struct {
	Repo     Repository
	Provider Provider
	Tags     TagResolver
	Logger   *slog.Logger
}

// NewService builds a signup service.
func NewService(opts Options) Service {
	repo := opts.Repo
	if repo == nil {
		repo = NullRepository{}
	}
	tags := opts.Tags
	if tags == nil {
		tags = func(Interest) (string, bool) { return "", false }
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &service{repo: repo, provider: opts.Provider, tags: tags, logger: log}
}

type service struct {
	repo     Repository
	provider Provider
	tags     TagResolver
	logger   *slog.Logger
}

func (s *service) Subscribe(ctx context.Context, input Input) (Signup, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return Signup{}, err
	}

	signup := Signup{
		Email:     input.Email,
		FirstName: input.FirstName,
		Interests: input.Interests,
		Tags:      s.resolveTags(input.Interests),
		Consent:   input.Consent,
		Status:    StatusPending,
		Source:    input.Source,
	}

	// Recording is best effort; a storage outage must not block the signup.
	saved, err := s.repo.Save(ctx, signup)
	recorded := err == nil
	if err != nil && !errors.Is(err, ErrNotImplemented) {
		s.logger.Error("record signup failed", "err", err)
	}
	if recorded {
		signup = saved
	}

	if s.provider == nil {
		return s.finish(ctx, signup, recorded, Receipt{}, errors.New("no newsletter provider configured"))
	}

	receipt, perr := s.provider.Subscribe(ctx, Subscriber{
		Email:     signup.Email,
		FirstName: signup.FirstName,
		Tags:      signup.Tags,
	})
	return s.finish(ctx, signup, recorded, receipt, perr)
}

const finalSaveTimeout = 5 * time.Second

func (s *service) finish(ctx context.Context, signup Signup, recorded bool, receipt Receipt, perr error) (Signup, error) {
	if perr != nil {
		signup.Status = StatusFailed
		signup.Error = perr.Error()
	} else {
		signup.Status = StatusSubscribed
		signup.ProviderRef = receipt.Reference
	}

	if recorded {
		// The provider already answered; record it even if the caller went away.
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalSaveTimeout)
		saved, err := s.repo.Save(saveCtx, signup)
		cancel()
		if err != nil {
			s.logger.Error("update signup failed", "id", signup.ID, "err", err)
		} else {
			signup = saved
		}
	}

	if perr != nil {
		s.logger.Warn("signup not accepted by provider", "id", signup.ID, "err", perr)
		return signup, fmt.Errorf("%w: %w", ErrProviderFailed, perr)
	}

	s.logger.Info("signup subscribed", "id", signup.ID, "provider_ref", signup.ProviderRef, "tags", signup.Tags)
	return signup, nil
}

func (s *service) resolveTags(interests []Interest) []string {
	var out []string
	for _, in := range interests {
		if tag, ok := s.tags(in); ok {
			out = append(out, tag)
		}
	}
	return out
}

func (s *service) Get(ctx context.Context, id string) (Signup, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]Signup, error) {
	return s.repo.List(ctx, offset, limit)
}
