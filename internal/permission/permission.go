// Package permission resolves CRUD grants from the permission records issued
// by the auth service. Resolution is pure and fails closed: anything that
// cannot be matched is denied.
package permission

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Flag is a grant that may be left unset. The auth service sends grants as
// booleans or as "true"/"false" strings; both are folded into a Flag when the
// record is decoded so resolution never deals with strings.
type Flag uint8

const (
	Unset Flag = iota
	Granted
	Denied
)

// FlagOf converts a boolean into a set Flag.
func FlagOf(b bool) Flag {
	if b {
		return Granted
	}

	return Denied
}

// IsSet reports whether the flag carries an explicit value.
func (f Flag) IsSet() bool {
	return f != Unset
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*f = Unset
		return nil
	}

	switch t := v.(type) {
	case bool:
		*f = FlagOf(t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			*f = Granted
		case "false":
			*f = Denied
		default:
			*f = Unset
		}
	default:
		*f = Unset
	}

	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case Granted:
		return []byte("true"), nil
	case Denied:
		return []byte("false"), nil
	}

	return []byte("null"), nil
}

// Action is one of the four CRUD operations.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every CRUD action, in display order.
var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// ParseAction returns the action named s, case-insensitively.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return a, true
	}

	return "", false
}

// Grants are the flags attached to a module or a submodule.
type Grants struct {
	Create Flag `json:"create"`
	Read   Flag `json:"read"`
	Update Flag `json:"update"`
	Delete Flag `json:"delete"`
	All    Flag `json:"all"`
}

// explicit returns the flag for a single action.
func (g Grants) explicit(a Action) Flag {
	switch a {
	case ActionCreate:
		return g.Create
	case ActionRead:
		return g.Read
	case ActionUpdate:
		return g.Update
	case ActionDelete:
		return g.Delete
	}

	return Unset
}

// SubModule refines a module's grants for one page or feature.
type SubModule struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Actions Grants `json:"actions"`
}

// Record is the grant set of a user for one module.
type Record struct {
	Module     string      `json:"module"`
	Actions    Grants      `json:"actions"`
	SubModules []SubModule `json:"subModules"`
}

// CRUD is the resolved outcome for all four actions.
type CRUD struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Allows returns the outcome for a single action.
func (c CRUD) Allows(a Action) bool {
	switch a {
	case ActionCreate:
		return c.Create
	case ActionRead:
		return c.Read
	case ActionUpdate:
		return c.Update
	case ActionDelete:
		return c.Delete
	}

	return false
}
