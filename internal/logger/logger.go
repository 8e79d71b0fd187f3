package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog.Logger configured based on the application environment.
func New(env string) *slog.Logger {
	return NewWithWriter(env, defaultWriter())
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env)}
	switch env {
	case "production", "staging":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultWriter() io.Writer {
	return os.Stdout
}

func parseLevel(env string) slog.Level {
	switch env {
	case "production":
		return slog.LevelInfo
	case "staging":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
