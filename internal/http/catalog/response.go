package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
)

type itemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Kind      catalog.Kind    `json:"kind"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(item *catalog.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Kind:      item.Kind,
		UnitPrice: item.UnitPrice,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toResponseList(items []*catalog.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	return resp
}
