// Package money holds the decimal helpers shared by every component that
// handles amounts. Values are kept at full precision and only rounded when a
// derived figure is produced or an amount is rendered.
package money

import (
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places amounts are rounded and displayed to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Clamp returns d, or zero when d is negative.
func Clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// Round rounds d half away from zero to two decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders d with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Percent returns part as a percentage of whole, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Mul(hundred).Div(whole)
}

// OfPercent returns pct percent of d.
func OfPercent(d, pct decimal.Decimal) decimal.Decimal {
	return d.Mul(pct).Div(hundred)
}

// Sum adds up all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return total
}
