package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("catalog item not found")
	ErrAlreadyExists = errors.New("catalog item already exists")
	ErrInvalidItem   = errors.New("invalid catalog item")
)

// Kind classifies what a patient is billed for.
type Kind string

const (
	KindService   Kind = "service"
	KindTreatment Kind = "treatment"
	KindPackage   Kind = "package"
)

// ParseKind accepts kind names case-insensitively, along with their plurals.
func ParseKind(s string) (Kind, bool) {
	k := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")

	switch Kind(k) {
	case KindService, KindTreatment, KindPackage:
		return Kind(k), true
	}

	return "", false
}

// Item is an entry of the clinic's price list.
type Item struct {
	ID        uuid.UUID
	Name      string
	Kind      Kind
	UnitPrice decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// nameKey is the identity used to detect duplicate items.
func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
