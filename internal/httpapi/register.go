package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/datawithdylan/site/internal/auth"
	"github.com/datawithdylan/site/internal/domain"
	"github.com/datawithdylan/site/internal/web"
)

// Options carries everything the HTTP layer needs beyond the domain services.
type Options struct {
	Content        web.Content
	Limiter        *RateLimiter
	AdminToken     string
	MetricsEnabled bool
	Now            func() time.Time
}

// Register attaches page and API routes to the provided router.
func Register(r chi.Router, logger *slog.Logger, domainServices domain.Container, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Limiter == nil {
		opts.Limiter = NewRateLimiter(DefaultRatePerMinute, DefaultRateBurst)
	}

	r.Get("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"status":  "ok",
			"time":    opts.Now().UTC().Format(time.RFC3339),
			"server":  "datawithdylan-site",
			"version": "v1",
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to write ping response", "err", err)
		}
	})

	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	pages := &pageHandler{logger: logger, service: domainServices.Signups, content: opts.Content, now: opts.Now}
	r.Get("/", pages.landing)
	r.With(opts.Limiter.Middleware(pages.rateLimited)).Post("/subscribe", pages.subscribe)

	api := &subscribeHandler{logger: logger, service: domainServices.Signups}
	r.With(opts.Limiter.Middleware(rateLimitedJSON)).Post("/api/subscribe", api.subscribe)

	r.Route("/v1/signups", func(r chi.Router) {
		r.Use(auth.BearerToken(opts.AdminToken))
		registerSignupRoutes(r, logger, domainServices.Signups)
	})

	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
}

func staticHandler() http.Handler {
	files := http.FileServer(http.FS(web.Static()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails there's not much we can do; log to stderr.
		slog.Default().Error("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
