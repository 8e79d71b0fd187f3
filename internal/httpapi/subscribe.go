package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/metrics"
)

// User-facing status messages.
const (
	MsgSubscribed  = "You're in! Check your inbox to confirm your subscription."
	MsgFixFields   = "Please fix the highlighted fields."
	MsgGeneric     = "Something went wrong. Please try again in a moment."
	MsgRateLimited = "Too many attempts. Please wait a minute and try again."
)

const maxSubscribeBody = 16 << 10

// SubscribeRequest mirrors the join form submission payload.
type SubscribeRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Consent   bool     `json:"consent"`
	Source    string   `json:"source,omitempty"`
}

func (s SubscribeRequest) input() signups.Input {
	interests := make([]signups.Interest, 0, len(s.Interests))
	for _, i := range s.Interests {
		interests = append(interests, signups.Interest(i))
	}
	return signups.Input{
		Email:     s.Email,
		FirstName: s.FirstName,
		Interests: interests,
		Consent:   s.Consent,
		Source:    s.Source,
	}
}

type subscribeResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// outcome is the HTTP-agnostic result of a subscribe attempt, shared by the
// JSON endpoint and the form fallback.
type outcome struct {
	status  int
	message string
	fields  map[string]string
}

func (o outcome) ok() bool { return o.status == http.StatusOK }

func subscribe(ctx context.Context, logger *slog.Logger, service signups.Service, in signups.Input) outcome {
	signup, err := service.Subscribe(ctx, in)
	if err == nil {
		metrics.Signups.WithLabelValues(metrics.ResultSubscribed).Inc()
		return outcome{status: http.StatusOK, message: MsgSubscribed}
	}

	var verr *signups.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.Signups.WithLabelValues(metrics.ResultInvalid).Inc()
		return outcome{status: http.StatusUnprocessableEntity, message: MsgFixFields, fields: verr.Fields}
	case errors.Is(err, signups.ErrProviderFailed):
		metrics.Signups.WithLabelValues(metrics.ResultFailed).Inc()
		return outcome{status: http.StatusBadGateway, message: MsgGeneric}
	default:
		metrics.Signups.WithLabelValues(metrics.ResultFailed).Inc()
		logger.Error("subscribe failed", "id", signup.ID, "err", err)
		return outcome{status: http.StatusInternalServerError, message: MsgGeneric}
	}
}

type subscribeHandler struct {
	logger  *slog.Logger
	service signups.Service
}

func (h *subscribeHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	var payload SubscribeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubscribeBody))
	if err := dec.Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, subscribeResponse{Status: "error", Message: "invalid JSON payload"})
		return
	}

	res := subscribe(r.Context(), h.logger, h.service, payload.input())
	body := subscribeResponse{Status: "success", Message: res.message}
	if !res.ok() {
		body.Status = "error"
		body.Errors = res.fields
	}
	respondJSON(w, res.status, body)
}
