package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Env               string        `env:"APP_ENV" envDefault:"development"`
	HTTPPort          int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	DataBackend string `env:"DATA_BACKEND" envDefault:"memory"`

	DatabaseDriver    string        `env:"DATABASE_DRIVER" envDefault:"pgx"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	SQLitePath        string        `env:"SQLITE_PATH" envDefault:"data/signups.db"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"30m"`

	Newsletter Newsletter

	SignupRatePerMinute int `env:"SIGNUP_RATE_PER_MINUTE" envDefault:"10"`
	SignupRateBurst     int `env:"SIGNUP_RATE_BURST" envDefault:"5"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	AdminToken     string `env:"ADMIN_TOKEN"`

	Site Site
}

// Newsletter configures the email-marketing provider signups are forwarded to.
type Newsletter struct {
	Provider string        `env:"NEWSLETTER_PROVIDER" envDefault:"log"`
	Timeout  time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	ConvertKitAPIURL string `env:"CONVERTKIT_API_URL" envDefault:"https://api.convertkit.com"`
	ConvertKitAPIKey string `env:"CONVERTKIT_API_KEY"`
	ConvertKitFormID string `env:"CONVERTKIT_FORM_ID"`
	TagPython        int64  `env:"CONVERTKIT_TAG_PYTHON"`
	TagSQL           int64  `env:"CONVERTKIT_TAG_SQL"`

	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"`
	MailgunList    string `env:"MAILGUN_LIST"`
}

// Site holds the overridable parts of the landing page copy.
type Site struct {
	Title       string `env:"SITE_TITLE" envDefault:"Data with Dylan"`
	YouTubeURL  string `env:"SITE_YOUTUBE_URL" envDefault:"https://www.youtube.com/@DataWithDylan"`
	HeadshotURL string `env:"SITE_HEADSHOT_URL" envDefault:"/static/images/headshot.svg"`
	// BaseURL is the public origin, e.g. https://datawithdylan.com. Open Graph
	// tags that need absolute URLs are omitted without it.
	BaseURL string `env:"SITE_BASE_URL"`
}

// Load reads configuration values from the environment, applying defaults where necessary.
// A .env file in the working directory is honoured when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.DataBackend {
	case "memory":
		// no-op
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATA_BACKEND=sqlite")
		}
	default:
		return fmt.Errorf("unknown DATA_BACKEND value: %s", c.DataBackend)
	}

	n := c.Newsletter
	switch n.Provider {
	case "log":
		if c.Env == "production" {
			return fmt.Errorf("NEWSLETTER_PROVIDER=log is not allowed in production")
		}
	case "convertkit":
		if n.ConvertKitAPIKey == "" {
			return fmt.Errorf("CONVERTKIT_API_KEY is required when NEWSLETTER_PROVIDER=convertkit")
		}
		if n.ConvertKitFormID == "" {
			return fmt.Errorf("CONVERTKIT_FORM_ID is required when NEWSLETTER_PROVIDER=convertkit")
		}
	case "mailgun":
		if n.MailgunDomain == "" {
			return fmt.Errorf("MAILGUN_DOMAIN is required when NEWSLETTER_PROVIDER=mailgun")
		}
		if n.MailgunAPIKey == "" {
			return fmt.Errorf("MAILGUN_API_KEY is required when NEWSLETTER_PROVIDER=mailgun")
		}
		if n.MailgunList == "" {
			return fmt.Errorf("MAILGUN_LIST is required when NEWSLETTER_PROVIDER=mailgun")
		}
	default:
		return fmt.Errorf("unknown NEWSLETTER_PROVIDER value: %s", n.Provider)
	}

	if c.SignupRatePerMinute <= 0 {
		return fmt.Errorf("SIGNUP_RATE_PER_MINUTE must be positive")
	}
	if c.SignupRateBurst <= 0 {
		return fmt.Errorf("SIGNUP_RATE_BURST must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
