// Package newsletter forwards signups to the hosted email-marketing provider.
package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/metrics"
)

// ProviderError is a non-success answer from the provider's API.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
}

// New selects the provider named by cfg.Provider.
func New(cfg config.Newsletter, logger *slog.Logger) (signups.Provider, error) {
	var (
		p   signups.Provider
		err error
	)
	switch cfg.Provider {
	case "convertkit":
		p, err = NewConvertKitClient(ConvertKitOptions{
			BaseURL: cfg.ConvertKitAPIURL,
			APIKey:  cfg.ConvertKitAPIKey,
			FormID:  cfg.ConvertKitFormID,
			Timeout: cfg.Timeout,
		})
	case "mailgun":
		p, err = NewMailgunListProvider(cfg, logger)
	case "log":
		p = NewLogProvider(logger)
	default:
		return nil, fmt.Errorf("unknown newsletter provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(p), nil
}

// TagResolver maps interests to the configured ConvertKit tag ids.
// Interests without a configured tag are dropped.
func TagResolver(cfg config.Newsletter) signups.TagResolver {
	tags := map[signups.Interest]int64{
		signups.InterestPython: cfg.TagPython,
		signups.InterestSQL:    cfg.TagSQL,
	}
	return func(in signups.Interest) (string, bool) {
		id := tags[in]
		if id <= 0 {
			return "", false
		}
		return strconv.FormatInt(id, 10), true
	}
}

type instrumented struct {
	next signups.Provider
}

// Instrument records request latency for p.
func Instrument(p signups.Provider) signups.Provider {
	return instrumented{next: p}
}

func (i instrumented) Name() string { return i.next.Name() }

func (i instrumented) Subscribe(ctx context.Context, sub signups.Subscriber) (signups.Receipt, error) {
	start := time.Now()
	receipt, err := i.next.Subscribe(ctx, sub)
	metrics.ProviderDuration.WithLabelValues(i.next.Name()).Observe(time.Since(start).Seconds())
	return receipt, err
}
