package access

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/clinicdesk/internal/access"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

type Handler struct {
	svc *access.Service
}

func NewHandler(svc *access.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sidebar", h.sidebar)
	r.Get("/check", h.check)
}

type sidebarResponse struct {
	Items []permission.NavItem `json:"items"`
}

func (h *Handler) sidebar(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.Sidebar(r.Context(), id.Token)
	if err != nil {
		slog.Error("sidebar unavailable", "error", err)
		http.Error(w, "sidebar unavailable", http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sidebarResponse{Items: items}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type checkResponse struct {
	Module    string `json:"module"`
	SubModule string `json:"sub_module,omitempty"`
	permission.CRUD
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	module := r.URL.Query().Get("module")
	if module == "" {
		http.Error(w, "module query parameter is required", http.StatusBadRequest)
		return
	}

	sub := r.URL.Query().Get("sub")
	path := r.URL.Query().Get("path")

	match := permission.MatchNone
	if sub != "" || path != "" {
		match = permission.MatchNameOrPath(sub, path)
	}

	crud := h.svc.Check(r.Context(), id.Token, module, match)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(checkResponse{Module: module, SubModule: sub, CRUD: crud}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
