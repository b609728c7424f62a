package matching

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMapping = errors.New("raw pattern and item name are required")
	ErrNotFound     = errors.New("mapping not found")
)

// Mapping renames spreadsheet labels containing RawPattern to the catalog
// item ItemName.
type Mapping struct {
	ID         uuid.UUID
	RawPattern string
	ItemName   string
	CreatedAt  time.Time
}
