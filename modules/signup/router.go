package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// settleTimeout bounds how long a request asking to wait for validation may
// block.
const settleTimeout = 5 * time.Second

type inputRequest struct {
	Value any  `json:"value"`
	Blur  bool `json:"blur"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	svc *Service
	log *slog.Logger
}

// Router mounts the signup form endpoints:
//
//	POST   /                      create a form session
//	GET    /{id}                  read the form state
//	PATCH  /{id}/fields/{field}   record input, optionally blurring the field
//	POST   /{id}/submit           submit the form
//	DELETE /{id}                  discard the session
//
// Every read accepts ?display=<mode> to override the error-display mode and
// ?wait=true to block until validation settles.
//
//	r := chi.NewRouter()
//	r.Mount("/forms", signup.Router(svc, log))
func Router(svc *Service, log *slog.Logger) chi.Router {
	h := &handler{svc: svc, log: logger.OrNop(log).With(logger.Component("signup"))}

	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Delete("/", h.delete)
		r.Patch("/fields/{field}", h.input)
		r.Post("/submit", h.submit)
	})
	return r
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	f, err := h.svc.Create(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, f, mode)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	f, err := h.form(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, f, mode)
}

func (h *handler) input(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, ErrSessionNotFound)
		return
	}

	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, errors.Join(ErrInvalidRequest, err))
		return
	}

	f, err := h.svc.Input(r.Context(), id, chi.URLParam(r, "field"), req.Value, req.Blur)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, f, mode)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, ErrSessionNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), settleTimeout)
	defer cancel()
	st, err := h.svc.Submit(ctx, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	f, err := h.svc.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if !st.Valid {
		status = http.StatusUnprocessableEntity
	}
	h.write(w, status, Render(f, mode))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, ErrSessionNotFound)
		return
	}
	if err := h.svc.Delete(id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) form(r *http.Request) (*form.Form[Signup], error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return h.svc.Get(id)
}

// mode resolves the ?display override, falling back to the configured mode.
func (h *handler) mode(w http.ResponseWriter, r *http.Request) (display.Mode, bool) {
	raw := r.URL.Query().Get("display")
	if raw == "" {
		return h.svc.Config().ErrorDisplayMode, true
	}
	mode, err := display.ParseMode(raw)
	if err != nil {
		h.fail(w, r, errors.Join(ErrInvalidRequest, err))
		return "", false
	}
	return mode, true
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, f *form.Form[Signup], mode display.Mode) {
	if r.URL.Query().Get("wait") == "true" {
		ctx, cancel := context.WithTimeout(r.Context(), settleTimeout)
		defer cancel()
		if err := Settle(ctx, f); err != nil {
			h.log.WarnContext(r.Context(), "form did not settle", logger.FormID(f.ID()), logger.Error(err))
		}
	}
	h.write(w, status, Render(f, mode))
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrUnknownField), errors.Is(err, form.ErrFieldNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidValue):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "signup request failed", logger.Error(err))
	}
	h.write(w, status, errorResponse{Error: err.Error()})
}

func (h *handler) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("response encoding failed", logger.Error(err))
	}
}
