package domain

import (
	"log/slog"

	"github.com/datawithdylan/site/internal/domain/signups"
)

// Container wires domain services together.
type Container struct {
	Signups signups.Service
}

// Options configures the domain container.
type Options struct {
	SignupRepo signups.Repository
	Provider   signups.Provider
	Tags       signups.TagResolver
	Logger     *slog.Logger
}

// New constructs a domain container with provided repositories.
func New(opts Options) Container {
	signupRepo := opts.SignupRepo
	if signupRepo == nil {
		signupRepo = signups.NullRepository{}
	}

	return Container{
		Signups: signups.NewService(signups.Options{
			Repo:     signupRepo,
			Provider: opts.Provider,
			Tags:     opts.Tags,
			Logger:   opts.Logger,
		}),
	}
}
