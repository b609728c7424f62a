package money

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the longest leading number in a form value, so
// "12.5 AED" reads as 12.5 the same way the browser forms parse it.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Field is a form value as typed by staff. It accepts JSON numbers, numeric
// strings, blanks and garbage, and never fails to decode: anything that is not
// a number reads as zero, and so does anything negative.
type Field struct {
	value decimal.Decimal
	valid bool
}

// FieldOf wraps an already parsed amount.
func FieldOf(d decimal.Decimal) Field {
	return Field{value: d, valid: true}
}

// ParseField parses s with the leading-number rule described on Field.
func ParseField(s string) Field {
	s = strings.TrimSpace(s)
	if s == "" {
		return Field{}
	}

	m := numericPrefix.FindString(s)
	if m == "" {
		return Field{}
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return Field{}
	}

	return Field{value: d, valid: true}
}

// Valid reports whether the input was a number at all.
func (f Field) Valid() bool {
	return f.valid
}

// Decimal returns the coerced amount: zero for invalid or negative input.
func (f Field) Decimal() decimal.Decimal {
	if !f.valid {
		return decimal.Zero
	}

	return Clamp(f.value)
}

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*f = Field{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = Field{}
			return nil
		}

		*f = ParseField(s)
	default:
		*f = ParseField(string(b))
	}

	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	return []byte(f.Decimal().String()), nil
}
