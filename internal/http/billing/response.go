package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
)

type invoiceResponse struct {
	ID                 uuid.UUID             `json:"id"`
	EMRNumber          string                `json:"emr_number"`
	PatientName        string                `json:"patient_name"`
	Kind               billing.Kind          `json:"kind"`
	ItemName           string                `json:"item_name"`
	Amount             decimal.Decimal       `json:"amount"`
	Paid               decimal.Decimal       `json:"paid"`
	Advance            decimal.Decimal       `json:"advance"`
	Pending            decimal.Decimal       `json:"pending"`
	NeedToPay          decimal.Decimal       `json:"need_to_pay"`
	UsedFromAdvance    decimal.Decimal       `json:"used_from_advance"`
	Insurance          billing.Insurance     `json:"insurance"`
	InsuranceType      billing.InsuranceType `json:"insurance_type,omitempty"`
	AdvanceGivenAmount decimal.Decimal       `json:"advance_given_amount"`
	CoPayPercent       *decimal.Decimal      `json:"co_pay_percent,omitempty"`
	Mode               billing.Mode          `json:"mode"`
	Status             billing.Status        `json:"status"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          *time.Time            `json:"updated_at,omitempty"`
}

func toResponse(inv *billing.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:                 inv.ID,
		EMRNumber:          inv.EMRNumber,
		PatientName:        inv.PatientName,
		Kind:               inv.Kind,
		ItemName:           inv.ItemName,
		Amount:             inv.Amount,
		Paid:               inv.Paid,
		Advance:            inv.Advance,
		Pending:            inv.Pending,
		NeedToPay:          inv.NeedToPay,
		UsedFromAdvance:    inv.UsedFromAdvance,
		Insurance:          inv.Insurance,
		InsuranceType:      inv.InsuranceType,
		AdvanceGivenAmount: inv.AdvanceGivenAmount,
		CoPayPercent:       inv.CoPayPercent,
		Mode:               inv.Mode,
		Status:             inv.Status,
		CancelReason:       inv.CancelReason,
		CancelledAt:        inv.CancelledAt,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
}

func toResponseList(invs []*billing.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}

type derivedResponse struct {
	Mode             billing.Mode    `json:"mode"`
	Amount           decimal.Decimal `json:"amount"`
	AmountOverridden bool            `json:"amount_overridden"`
	Paid             decimal.Decimal `json:"paid"`
	Advance          decimal.Decimal `json:"advance"`
	Pending          decimal.Decimal `json:"pending"`
	NeedToPay        decimal.Decimal `json:"need_to_pay"`
	UsedFromAdvance  decimal.Decimal `json:"used_from_advance"`
	RemainingAdvance decimal.Decimal `json:"remaining_advance"`
}

func toDerivedResponse(d billing.Derived) derivedResponse {
	return derivedResponse{
		Mode:             d.Mode,
		Amount:           d.Amount,
		AmountOverridden: d.AmountOverridden,
		Paid:             d.Paid,
		Advance:          d.Advance,
		Pending:          d.Pending,
		NeedToPay:        d.NeedToPay,
		UsedFromAdvance:  d.UsedFromAdvance,
		RemainingAdvance: d.RemainingAdvance,
	}
}

type advanceResponse struct {
	EMRNumber string          `json:"emr_number"`
	Advance   decimal.Decimal `json:"advance"`
}
