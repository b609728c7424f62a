package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module = "billing"
	sub    = "Treatment"
)

// Handler manages the aliases that rename imported price list labels to
// catalog item names.
type Handler struct {
	svc  *matching.Service
	gate *auth.Gate
}

func NewHandler(svc *matching.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/", h.list)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/suggest", h.suggest)
	r.With(h.gate.Require(module, sub, permission.ActionCreate)).Post("/", h.learn)
	r.With(h.gate.Require(module, sub, permission.ActionDelete)).Delete("/{id}", h.forget)
}

type mappingResponse struct {
	ID         uuid.UUID `json:"id"`
	RawPattern string    `json:"raw_pattern"`
	ItemName   string    `json:"item_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(m *matching.Mapping) mappingResponse {
	return mappingResponse{
		ID:         m.ID,
		RawPattern: m.RawPattern,
		ItemName:   m.ItemName,
		CreatedAt:  m.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]mappingResponse, len(mappings))
	for i, m := range mappings {
		resp[i] = toResponse(m)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type suggestResponse struct {
	RawName  string `json:"raw_name"`
	ItemName string `json:"item_name"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw_name")
	if raw == "" {
		http.Error(w, "raw_name query parameter is required", http.StatusBadRequest)
		return
	}

	name, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{RawName: raw, ItemName: name}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	ItemName   string `json:"item_name"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Learn(r.Context(), req.RawPattern, req.ItemName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Forget(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matching.ErrEmptyMapping):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, matching.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("alias request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
