package httpapi

import (
	"net/http"
	"time"

	"log/slog"

	g "maragu.dev/gomponents"

	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/web"
	"github.com/datawithdylan/site/internal/web/components"
)

type pageHandler struct {
	logger  *slog.Logger
	service signups.Service
	content web.Content
	now     func() time.Time
}

func (h *pageHandler) landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, components.FormState{})
}

// subscribe handles the join form when JavaScript is unavailable and renders
// the page again with the outcome inline.
func (h *pageHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubscribeBody)
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, components.FormState{Status: components.FormError, Message: MsgGeneric})
		return
	}

	req := SubscribeRequest{
		Email:     r.PostForm.Get("email"),
		FirstName: r.PostForm.Get("first_name"),
		Interests: r.PostForm["interests"],
		Consent:   checkboxOn(r.PostForm.Get("consent")),
		Source:    r.PostForm.Get("source"),
	}

	form := components.FormState{
		Email:     req.Email,
		FirstName: req.FirstName,
		Consent:   req.Consent,
		Interests: make(map[signups.Interest]bool, len(req.Interests)),
	}
	for _, i := range req.Interests {
		form.Interests[signups.Interest(i)] = true
	}

	res := subscribe(r.Context(), h.logger, h.service, req.input())
	form.Message = res.message
	form.Errors = res.fields
	form.Status = components.FormError
	if res.ok() {
		form.Status = components.FormSuccess
	}
	h.render(w, res.status, form)
}

func (h *pageHandler) rateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	h.render(w, http.StatusTooManyRequests, components.FormState{Status: components.FormError, Message: MsgRateLimited})
}

func (h *pageHandler) render(w http.ResponseWriter, status int, form components.FormState) {
	var page g.Node = components.LandingPage(h.content, form, h.now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		h.logger.Error("failed to render landing page", "err", err)
	}
}

func checkboxOn(v string) bool {
	switch v {
	case "on", "yes", "true", "1":
		return true
	}
	return false
}
