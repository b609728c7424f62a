package membership

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
)

type treatmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	TreatmentName string          `json:"treatment_name"`
	UnitCount     int             `json:"unit_count"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	CreatedAt     time.Time       `json:"created_at"`
}

type transferResponse struct {
	ID                uuid.UUID       `json:"id"`
	FromEMR           string          `json:"from_emr"`
	ToEMR             string          `json:"to_emr"`
	ToName            string          `json:"to_name"`
	TransferredAmount decimal.Decimal `json:"transferred_amount"`
	Note              string          `json:"note,omitempty"`
	TransferredAt     time.Time       `json:"transferred_at"`
}

type balanceResponse struct {
	PackageAmount  decimal.Decimal `json:"package_amount"`
	TransferredIn  decimal.Decimal `json:"transferred_in"`
	TransferredOut decimal.Decimal `json:"transferred_out"`
	Consumed       decimal.Decimal `json:"consumed"`
	Remaining      decimal.Decimal `json:"remaining"`
	Shortfall      decimal.Decimal `json:"shortfall"`
	Utilization    decimal.Decimal `json:"utilization"`
}

type membershipResponse struct {
	ID          uuid.UUID           `json:"id"`
	EMRNumber   string              `json:"emr_number"`
	PatientName string              `json:"patient_name"`
	PackageName string              `json:"package_name"`
	Balance     balanceResponse     `json:"balance"`
	Treatments  []treatmentResponse `json:"treatments"`
	Transfers   []transferResponse  `json:"transfers"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

func toTransferResponse(t *membership.Transfer) transferResponse {
	return transferResponse{
		ID:                t.ID,
		FromEMR:           t.FromEMR,
		ToEMR:             t.ToEMR,
		ToName:            t.ToName,
		TransferredAmount: t.TransferredAmount,
		Note:              t.Note,
		TransferredAt:     t.TransferredAt,
	}
}

func toResponse(m *membership.Membership) membershipResponse {
	b := m.Balance()

	resp := membershipResponse{
		ID:          m.ID,
		EMRNumber:   m.EMRNumber,
		PatientName: m.PatientName,
		PackageName: m.PackageName,
		Balance: balanceResponse{
			PackageAmount:  b.PackageAmount,
			TransferredIn:  b.TransferredIn,
			TransferredOut: b.TransferredOut,
			Consumed:       b.Consumed,
			Remaining:      b.Remaining,
			Shortfall:      b.Shortfall,
			Utilization:    b.Utilization,
		},
		Treatments: make([]treatmentResponse, len(m.Treatments)),
		Transfers:  make([]transferResponse, len(m.Transfers)),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	for i, t := range m.Treatments {
		resp.Treatments[i] = treatmentResponse{
			ID:            t.ID,
			TreatmentName: t.TreatmentName,
			UnitCount:     t.UnitCount,
			UnitPrice:     t.UnitPrice,
			LineTotal:     t.LineTotal(),
			CreatedAt:     t.CreatedAt,
		}
	}

	for i := range m.Transfers {
		resp.Transfers[i] = toTransferResponse(&m.Transfers[i])
	}

	return resp
}

func toResponseList(ms []*membership.Membership) []membershipResponse {
	resp := make([]membershipResponse, len(ms))
	for i, m := range ms {
		resp[i] = toResponse(m)
	}

	return resp
}
