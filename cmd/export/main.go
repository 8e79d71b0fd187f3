package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/logger"
	"github.com/datawithdylan/site/internal/storage"
)

func main() {
	status := flag.String("status", "", "only export signups with this status (pending, subscribed, failed)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog := logger.New("development")
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// stdout carries the CSV.
	logr := logger.NewWithWriter(cfg.Env, os.Stderr)

	if cfg.DataBackend == "memory" {
		logr.Error("export command requires DATA_BACKEND=postgres or sqlite")
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg, logr)
	if err != nil {
		logr.Error("failed to open signup storage", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.Signups.List(ctx, 0, 0)
	if err != nil {
		logr.Error("failed to list signups", "err", err)
		os.Exit(1)
	}

	n, err := writeCSV(os.Stdout, all, signups.Status(*status))
	if err != nil {
		logr.Error("failed to write csv", "err", err)
		os.Exit(1)
	}

	logr.Info("export complete", "rows", n)
}

var header = []string{"id", "email", "first_name", "interests", "tags", "consent", "status", "provider_ref", "error", "source", "created_at", "updated_at"}

// writeCSV writes rows matching status (all rows when empty) and returns how many were written.
func writeCSV(w io.Writer, rows []signups.Signup, status signups.Status) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	n := 0
	for _, s := range rows {
		if status != "" && s.Status != status {
			continue
		}
		interests := make([]string, len(s.Interests))
		for i, in := range s.Interests {
			interests[i] = string(in)
		}
		record := []string{
			s.ID,
			cell(s.Email),
			cell(s.FirstName),
			strings.Join(interests, ";"),
			strings.Join(s.Tags, ";"),
			strconv.FormatBool(s.Consent),
			string(s.Status),
			cell(s.ProviderRef),
			cell(s.Error),
			cell(s.Source),
			s.CreatedAt.UTC().Format(time.RFC3339),
			s.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return n, err
		}
		n++
	}

	cw.Flush()
	return n, cw.Error()
}

// cell neutralizes values a spreadsheet would evaluate as a formula.
func cell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
