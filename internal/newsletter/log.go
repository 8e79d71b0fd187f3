package newsletter

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/datawithdylan/site/internal/domain/signups"
)

// LogProvider is a dry-run provider for local development. It only logs.
type LogProvider struct {
	log *slog.Logger
}

func NewLogProvider(log *slog.Logger) *LogProvider {
	if log == nil {
		log = slog.Default()
	}
	return &LogProvider{log: log.With("provider", "log")}
}

func (p *LogProvider) Name() string { return "log" }

func (p *LogProvider) Subscribe(_ context.Context, sub signups.Subscriber) (signups.Receipt, error) {
	ref := uuid.NewString()
	p.log.Info("dry-run subscribe", "email", sub.Email, "first_name", sub.FirstName, "tags", sub.Tags, "ref", ref)
	return signups.Receipt{Reference: ref, State: "dry_run"}, nil
}
