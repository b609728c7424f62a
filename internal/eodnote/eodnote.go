package eodnote

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("eod note not found")
	ErrEmptyBody   = errors.New("note body is required")
	ErrEmptyAuthor = errors.New("note author is required")
)

// Note is a staff member's end-of-day handover.
type Note struct {
	ID        uuid.UUID
	Author    string
	Date      time.Time
	Body      string
	TasksDone bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
