package membership

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module = "billing"
	sub    = "Membership"
)

type Handler struct {
	svc  *membership.Service
	gate *auth.Gate
}

func NewHandler(svc *membership.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/", h.list)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/{emr}", h.get)
	r.With(h.gate.Require(module, sub, permission.ActionCreate)).Post("/", h.create)
	r.With(h.gate.Require(module, sub, permission.ActionUpdate)).Post("/{emr}/treatments", h.addTreatment)
	r.With(h.gate.Require(module, sub, permission.ActionUpdate)).Post("/transfers", h.transfer)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ms, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(ms)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "emr"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRequest struct {
	EMRNumber     string      `json:"emr_number"`
	PatientName   string      `json:"patient_name"`
	PackageName   string      `json:"package_name"`
	PackageAmount money.Field `json:"package_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Create(r.Context(), membership.CreateParams{
		EMRNumber:     req.EMRNumber,
		PatientName:   req.PatientName,
		PackageName:   req.PackageName,
		PackageAmount: req.PackageAmount,
	})
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

type treatmentRequest struct {
	TreatmentName string      `json:"treatment_name"`
	UnitCount     int         `json:"unit_count"`
	UnitPrice     money.Field `json:"unit_price"`
}

func (h *Handler) addTreatment(w http.ResponseWriter, r *http.Request) {
	var req treatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.AddTreatment(r.Context(), chi.URLParam(r, "emr"), membership.TreatmentParams{
		TreatmentName: req.TreatmentName,
		UnitCount:     req.UnitCount,
		UnitPrice:     req.UnitPrice.Decimal(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type transferRequest struct {
	FromEMR string      `json:"from_emr"`
	ToEMR   string      `json:"to_emr"`
	ToName  string      `json:"to_name"`
	Amount  money.Field `json:"amount"`
	Note    string      `json:"note"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Transfer(r.Context(), membership.TransferParams{
		FromEMR: req.FromEMR,
		ToEMR:   req.ToEMR,
		ToName:  req.ToName,
		Amount:  req.Amount.Decimal(),
		Note:    req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTransferResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membership.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, membership.ErrAlreadyExists), errors.Is(err, membership.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, membership.ErrInvalidEMR),
		errors.Is(err, membership.ErrInvalidTreatment),
		errors.Is(err, membership.ErrInvalidTransfer),
		errors.Is(err, membership.ErrSelfTransfer):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("membership request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
