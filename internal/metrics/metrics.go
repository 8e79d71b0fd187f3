package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Signup results used as the "result" label.
const (
	ResultSubscribed  = "subscribed"
	ResultInvalid     = "invalid"
	ResultFailed      = "failed"
	ResultRateLimited = "rate_limited"
)

var (
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_signups_total",
		Help: "Signup attempts by outcome",
	}, []string{"result"})

	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsletter_provider_request_duration_seconds",
		Help:    "Latency of calls to the newsletter provider",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)
