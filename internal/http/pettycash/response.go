package pettycash

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
)

type entryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Kind        pettycash.Kind  `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(e *pettycash.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Kind:        e.Kind,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		Date:        e.Date.Format(time.DateOnly),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toResponseList(entries []*pettycash.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

type summaryResponse struct {
	Funded  decimal.Decimal `json:"funded"`
	Spent   decimal.Decimal `json:"spent"`
	Balance decimal.Decimal `json:"balance"`
	Entries int             `json:"entries"`
}
