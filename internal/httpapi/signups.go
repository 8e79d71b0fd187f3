package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/datawithdylan/site/internal/domain/signups"
)

func registerSignupRoutes(r chi.Router, logger *slog.Logger, service signups.Service) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		handleSignupList(w, r, logger, service)
	})

	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			respondError(w, http.StatusBadRequest, "missing signup id")
			return
		}

		signup, err := service.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, signups.ErrNotImplemented):
				respondError(w, http.StatusNotImplemented, "signup storage not configured")
			case errors.Is(err, signups.ErrNotFound):
				respondError(w, http.StatusNotFound, "signup not found")
			default:
				logger.Error("get signup failed", "err", err)
				respondError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		respondJSON(w, http.StatusOK, signup)
	})
}

// MaxListLimit caps one page of the admin signup listing.
const MaxListLimit = 500

func handleSignupList(w http.ResponseWriter, r *http.Request, logger *slog.Logger, service signups.Service) {
	query := r.URL.Query()
	offset, limit := 0, 50
	if v := query.Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		offset = parsed
	}
	if v := query.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = min(parsed, MaxListLimit)
	}

	results, err := service.List(r.Context(), offset, limit)
	if err != nil {
		if errors.Is(err, signups.ErrNotImplemented) {
			respondError(w, http.StatusNotImplemented, "signup storage not configured")
			return
		}
		logger.Error("list signups failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}
