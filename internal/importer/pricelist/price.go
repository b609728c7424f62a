package pricelist

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyPrice = errors.New("empty price")

// parsePrice reads amounts written either way round: "1.234,56" and
// "1,234.56" are both 1234.56. Currency symbols and codes are ignored.
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)
	clean = strings.Trim(clean, ".,")

	if clean == "" {
		return decimal.Zero, errEmptyPrice
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") == 1 && len(clean)-lastComma-1 != 3 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	return decimal.NewFromString(clean)
}

// parseActive reads an active flag. Blank cells count as active.
func parseActive(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "y", "true", "1", "active", "enabled":
		return true, true
	case "no", "n", "false", "0", "inactive", "disabled":
		return false, true
	}

	return false, false
}
