package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
)

// memberCreator is the slice of the Mailgun SDK this provider needs.
type memberCreator interface {
	CreateMember(ctx context.Context, merge bool, addr string, prototype mailgun.Member) error
}

// MailgunListProvider adds subscribers to a Mailgun mailing list.
type MailgunListProvider struct {
	list    string
	timeout time.Duration
	log     *slog.Logger
	client  memberCreator
}

// NewMailgunListProvider builds a provider from the Mailgun settings in cfg.
func NewMailgunListProvider(cfg config.Newsletter, log *slog.Logger) (*MailgunListProvider, error) {
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		return nil, errors.New("mailgun: domain and api key are required")
	}
	if cfg.MailgunList == "" {
		return nil, errors.New("mailgun: list address is required")
	}

	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(cfg.MailgunAPIBase)
	}

	return newMailgunListProvider(mg, cfg.MailgunList, cfg.Timeout, log), nil
}

func newMailgunListProvider(client memberCreator, list string, timeout time.Duration, log *slog.Logger) *MailgunListProvider {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MailgunListProvider{
		list:    list,
		timeout: timeout,
		log:     log.With("provider", "mailgun"),
		client:  client,
	}
}

func (p *MailgunListProvider) Name() string { return "mailgun" }

// Subscribe creates or merges the list member. The member address doubles as the reference.
func (p *MailgunListProvider) Subscribe(ctx context.Context, sub signups.Subscriber) (signups.Receipt, error) {
	subscribed := true
	member := mailgun.Member{
		Address:    sub.Email,
		Name:       sub.FirstName,
		Subscribed: &subscribed,
	}
	if len(sub.Tags) > 0 {
		member.Vars = map[string]interface{}{"tags": sub.Tags}
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.CreateMember(sendCtx, true, p.list, member); err != nil {
		p.log.Error("failed to add list member", slog.String("list", p.list), slog.String("error", err.Error()))
		return signups.Receipt{}, fmt.Errorf("mailgun: create member: %w", err)
	}

	p.log.Debug("list member added", slog.String("list", p.list))
	return signups.Receipt{Reference: sub.Email, State: "subscribed"}, nil
}
