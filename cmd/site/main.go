package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain"
	"github.com/datawithdylan/site/internal/httpapi"
	"github.com/datawithdylan/site/internal/logger"
	"github.com/datawithdylan/site/internal/newsletter"
	"github.com/datawithdylan/site/internal/server"
	"github.com/datawithdylan/site/internal/storage"
	"github.com/datawithdylan/site/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logr := logger.New(cfg.Env)

	baseCtx := context.Background()

	store, err := storage.Open(baseCtx, cfg, logr)
	if err != nil {
		logr.Error("failed to open signup storage", "err", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logr.Error("error closing database", "err", cerr)
		}
	}()

	provider, err := newsletter.New(cfg.Newsletter, logr)
	if err != nil {
		logr.Error("failed to init newsletter provider", "err", err)
		os.Exit(1)
	}
	logr.Info("newsletter provider configured", "provider", provider.Name())

	domainContainer := domain.New(domain.Options{
		SignupRepo: store.Signups,
		Provider:   provider,
		Tags:       newsletter.TagResolver(cfg.Newsletter),
		Logger:     logr,
	})

	srv := server.New(cfg, logr)

	httpapi.Register(srv.Router(), logr, domainContainer, httpapi.Options{
		Content:        web.DefaultContent(cfg.Site),
		Limiter:        httpapi.NewRateLimiter(cfg.SignupRatePerMinute, cfg.SignupRateBurst),
		AdminToken:     cfg.AdminToken,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logr.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server shutdown failed", "err", err)
		os.Exit(1)
	}
}
