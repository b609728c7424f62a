package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module = "billing"
	sub    = "Treatment"
)

type Handler struct {
	svc  *catalog.Service
	gate *auth.Gate
}

func NewHandler(svc *catalog.Service, gate *auth.Gate) *Handler {
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
	filter := catalog.ListFilter{Query: r.URL.Query().Get("q")}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind, ok := catalog.ParseKind(s)
		if !ok {
			http.Error(w, "invalid kind", http.StatusBadRequest)
			return
		}

		filter.Kind = &kind
	}

	if s := r.URL.Query().Get("active"); s != "" {
		if active, err := strconv.ParseBool(s); err == nil {
			filter.Active = new(active)
		}
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRequest struct {
	Name      string       `json:"name"`
	Kind      catalog.Kind `json:"kind"`
	UnitPrice money.Field  `json:"unit_price"`
	Active    *bool        `json:"active,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	item, err := h.svc.Create(r.Context(), catalog.CreateParams{
		Name:      req.Name,
		Kind:      req.Kind,
		UnitPrice: req.UnitPrice.Decimal(),
		Active:    active,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Name      *string       `json:"name,omitempty"`
	Kind      *catalog.Kind `json:"kind,omitempty"`
	UnitPrice *money.Field  `json:"unit_price,omitempty"`
	Active    *bool         `json:"active,omitempty"`
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

	params := catalog.UpdateParams{Name: req.Name, Kind: req.Kind, Active: req.Active}
	if req.UnitPrice != nil {
		params.UnitPrice = new(req.UnitPrice.Decimal())
	}

	item, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
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
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, catalog.ErrInvalidItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("catalog request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
