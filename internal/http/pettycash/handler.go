package pettycash

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
)

const (
	module = "staff_management"
	sub    = "Petty Cash"
)

type Handler struct {
	svc  *pettycash.Service
	gate *auth.Gate
}

func NewHandler(svc *pettycash.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/", h.list)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/summary", h.summary)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/{id}", h.get)
	r.With(h.gate.Require(module, sub, permission.ActionCreate)).Post("/", h.create)
	r.With(h.gate.Require(module, sub, permission.ActionUpdate)).Patch("/{id}", h.update)
	r.With(h.gate.Require(module, sub, permission.ActionDelete)).Delete("/{id}", h.delete)
}

func parseDate(r *http.Request, key string) *time.Time {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}

	return &t
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := pettycash.ListFilter{
		StartDate: parseDate(r, "start_date"),
		EndDate:   parseDate(r, "end_date"),
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		filter.Kind = new(pettycash.Kind(s))
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = new(s)
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context(), parseDate(r, "start_date"), parseDate(r, "end_date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := summaryResponse{Funded: s.Funded, Spent: s.Spent, Balance: s.Balance, Entries: s.Entries}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRequest struct {
	Kind        pettycash.Kind `json:"kind"`
	Amount      money.Field    `json:"amount"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	ReceiptURL  string         `json:"receipt_url"`
	Date        string         `json:"date"`
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

	e, err := h.svc.Create(r.Context(), pettycash.CreateParams{
		Kind:        req.Kind,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
		Date:        date,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Amount      *money.Field `json:"amount,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Description *string      `json:"description,omitempty"`
	ReceiptURL  *string      `json:"receipt_url,omitempty"`
	Date        *string      `json:"date,omitempty"`
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

	params := pettycash.UpdateParams{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}

	if req.Date != nil {
		t, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.Date = &t
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
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
	case errors.Is(err, pettycash.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, pettycash.ErrInvalidKind), errors.Is(err, pettycash.ErrInvalidEntry):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("petty cash request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
