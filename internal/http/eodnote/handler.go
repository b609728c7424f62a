package eodnote

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/eodnote"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module = "staff_management"
	sub    = "Add EOD Task"
)

type Handler struct {
	svc  *eodnote.Service
	gate *auth.Gate
}

func NewHandler(svc *eodnote.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/", h.list)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/{id}", h.get)
	r.With(h.gate.Require(module, sub, permission.ActionCreate)).Post("/", h.create)
	r.With(h.gate.Require(module, sub, permission.ActionUpdate)).Patch("/{id}", h.update)
	r.With(h.gate.Require(module, sub, permission.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := eodnote.ListFilter{}

	if s := r.URL.Query().Get("author"); s != "" {
		filter.Author = new(s)
	}

	if s := r.URL.Query().Get("tasks_done"); s != "" {
		if done, err := strconv.ParseBool(s); err == nil {
			filter.TasksDone = new(done)
		}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	notes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(notes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(n)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRequest struct {
	Date      string `json:"date"`
	Body      string `json:"body"`
	TasksDone bool   `json:"tasks_done"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var date time.Time
	if req.Date != "" {
		t, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		date = t
	}

	// The author is always the signed-in user.
	id, _ := auth.FromContext(r.Context())

	author := id.Name
	if author == "" {
		author = id.Subject
	}

	n, err := h.svc.Create(r.Context(), eodnote.CreateParams{
		Author:    author,
		Date:      date,
		Body:      req.Body,
		TasksDone: req.TasksDone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(n)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Body      *string `json:"body,omitempty"`
	Date      *string `json:"date,omitempty"`
	TasksDone *bool   `json:"tasks_done,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := eodnote.UpdateParams{Body: req.Body, TasksDone: req.TasksDone}

	if req.Date != nil {
		t, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.Date = &t
	}

	n, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(n)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eodnote.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, eodnote.ErrEmptyBody), errors.Is(err, eodnote.ErrEmptyAuthor):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("eod note request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
