package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module          = "billing"
	subRegistration = "Patient Registration"
	subCancelled    = "Cancelled Claims"
)

type Handler struct {
	svc  *billing.Service
	gate *auth.Gate
}

func NewHandler(svc *billing.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	read := h.gate.Require(module, subRegistration, permission.ActionRead)

	r.With(read).Post("/preview", h.preview)
	r.With(read).Get("/invoices", h.list)
	r.With(read).Get("/invoices/{id}", h.get)
	r.With(read).Get("/advance/{emr}", h.advance)
	r.With(h.gate.Require(module, subRegistration, permission.ActionCreate)).Post("/invoices", h.register)
	r.With(h.gate.Require(module, subRegistration, permission.ActionUpdate)).Patch("/invoices/{id}", h.update)

	r.With(h.gate.Require(module, subCancelled, permission.ActionCreate)).Post("/invoices/{id}/cancel", h.cancel)
	r.With(h.gate.Require(module, subCancelled, permission.ActionRead)).Get("/cancelled", h.listCancelled)
}

type paymentRequest struct {
	Amount             money.Field           `json:"amount"`
	Paid               money.Field           `json:"paid"`
	Advance            money.Field           `json:"advance"`
	ManualAdvance      bool                  `json:"manual_advance"`
	Insurance          billing.Insurance     `json:"insurance"`
	InsuranceType      billing.InsuranceType `json:"insurance_type"`
	AdvanceGivenAmount money.Field           `json:"advance_given_amount"`
	CoPayPercent       money.Field           `json:"co_pay_percent"`
}

func (p paymentRequest) params() billing.PaymentParams {
	return billing.PaymentParams{
		Amount:             p.Amount,
		Paid:               p.Paid,
		Advance:            p.Advance,
		ManualAdvance:      p.ManualAdvance,
		Insurance:          p.Insurance,
		InsuranceType:      p.InsuranceType,
		AdvanceGivenAmount: p.AdvanceGivenAmount,
		CoPayPercent:       p.CoPayPercent,
	}
}

type previewRequest struct {
	paymentRequest
	AdvanceBase *money.Field `json:"advance_base,omitempty"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := billing.Form{
		Amount:             req.Amount,
		Paid:               req.Paid,
		Advance:            req.Advance,
		ManualAdvance:      req.ManualAdvance,
		Insurance:          req.Insurance,
		InsuranceType:      req.InsuranceType,
		AdvanceGivenAmount: req.AdvanceGivenAmount,
		CoPayPercent:       req.CoPayPercent,
	}

	if req.AdvanceBase != nil {
		form.AdvanceBase = new(req.AdvanceBase.Decimal())
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDerivedResponse(h.svc.Preview(form))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type registerRequest struct {
	EMRNumber        string       `json:"emr_number"`
	PatientName      string       `json:"patient_name"`
	Kind             billing.Kind `json:"kind"`
	ItemName         string       `json:"item_name"`
	UseStoredAdvance bool         `json:"use_stored_advance"`
	paymentRequest
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Register(r.Context(), billing.RegisterParams{
		EMRNumber:        req.EMRNumber,
		PatientName:      req.PatientName,
		Kind:             req.Kind,
		ItemName:         req.ItemName,
		Payment:          req.params(),
		UseStoredAdvance: req.UseStoredAdvance,
	})
	if err != nil {
		if errors.Is(err, billing.ErrInvalidEMR) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := billing.ListFilter{}

	if s := r.URL.Query().Get("emr"); s != "" {
		filter.EMRNumber = new(s)
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(billing.Status(s))
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

	invs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	PatientName *string         `json:"patient_name,omitempty"`
	ItemName    *string         `json:"item_name,omitempty"`
	Payment     *paymentRequest `json:"payment,omitempty"`
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

	params := billing.UpdateParams{PatientName: req.PatientName, ItemName: req.ItemName}
	if req.Payment != nil {
		params.Payment = new(req.Payment.params())
	}

	inv, err := h.svc.UpdatePatientInfo(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	emr := chi.URLParam(r, "emr")

	balance, err := h.svc.AdvanceBalance(r.Context(), emr)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(advanceResponse{EMRNumber: emr, Advance: balance}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(r.Context(), id, req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCancelled(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.ListCancelled(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	case errors.Is(err, billing.ErrAlreadyCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, billing.ErrInvalidEMR), errors.Is(err, billing.ErrInvalidKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("billing request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
