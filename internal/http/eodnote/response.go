package eodnote

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/clinicdesk/internal/eodnote"
)

type noteResponse struct {
	ID        uuid.UUID  `json:"id"`
	Author    string     `json:"author"`
	Date      string     `json:"date"`
	Body      string     `json:"body"`
	TasksDone bool       `json:"tasks_done"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(n *eodnote.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Author:    n.Author,
		Date:      n.Date.Format(time.DateOnly),
		Body:      n.Body,
		TasksDone: n.TasksDone,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toResponseList(notes []*eodnote.Note) []noteResponse {
	resp := make([]noteResponse, len(notes))
	for i, n := range notes {
		resp[i] = toResponse(n)
	}

	return resp
}
