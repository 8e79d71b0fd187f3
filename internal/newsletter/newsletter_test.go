package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/logger"
)

type fakeMembers struct {
	list   string
	merge  bool
	member mailgun.Member
	err    error
}

func (f *fakeMembers) CreateMember(_ context.Context, merge bool, addr string, m mailgun.Member) error {
	f.list, f.merge, f.member = addr, merge, m
	return f.err
}

func TestMailgunListProviderSubscribe(t *testing.T) {
	fake := &fakeMembers{}
	p := newMailgunListProvider(fake, "list@mg.example.com", time.Second, logger.Discard())

	receipt, err := p.Subscribe(context.Background(), signups.Subscriber{
		Email:     "a@example.com",
		FirstName: "Sam",
		Tags:      []string{"11"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", receipt.Reference)

	assert.Equal(t, "list@mg.example.com", fake.list)
	assert.True(t, fake.merge)
	assert.Equal(t, "a@example.com", fake.member.Address)
	assert.Equal(t, "Sam", fake.member.Name)
	require.NotNil(t, fake.member.Subscribed)
	assert.True(t, *fake.member.Subscribed)
	assert.Equal(t, []string{"11"}, fake.member.Vars["tags"])
}

func TestMailgunListProviderError(t *testing.T) {
	fake := &fakeMembers{err: errors.New("boom")}
	p := newMailgunListProvider(fake, "list@mg.example.com", time.Second, logger.Discard())

	_, err := p.Subscribe(context.Background(), signups.Subscriber{Email: "a@example.com"})
	assert.EqualError(t, err, "mailgun: create member: boom")
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Newsletter
		want    string
		wantErr bool
	}{
		{name: "log", cfg: config.Newsletter{Provider: "log"}, want: "log"},
		{name: "convertkit", cfg: config.Newsletter{Provider: "convertkit", ConvertKitAPIKey: "k", ConvertKitFormID: "1"}, want: "convertkit"},
		{name: "mailgun", cfg: config.Newsletter{Provider: "mailgun", MailgunDomain: "mg.example.com", MailgunAPIKey: "k", MailgunList: "l@mg.example.com"}, want: "mailgun"},
		{name: "convertkit missing key", cfg: config.Newsletter{Provider: "convertkit", ConvertKitFormID: "1"}, wantErr: true},
		{name: "unknown", cfg: config.Newsletter{Provider: "sendgrid"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg, logger.Discard())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestTagResolver(t *testing.T) {
	resolve := TagResolver(config.Newsletter{TagPython: 11})

	tag, ok := resolve(signups.InterestPython)
	assert.True(t, ok)
	assert.Equal(t, "11", tag)

	_, ok = resolve(signups.InterestSQL)
	assert.False(t, ok)
}

func TestLogProvider(t *testing.T) {
	p := NewLogProvider(logger.Discard())
	receipt, err := p.Subscribe(context.Background(), signups.Subscriber{Email: "a@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, "dry_run", receipt.State)
}
