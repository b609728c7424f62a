package membership

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

// Balance is the consumption state of a membership package.
type Balance struct {
	PackageAmount  decimal.Decimal
	TransferredIn  decimal.Decimal
	TransferredOut decimal.Decimal

	// Consumed is the exact sum of all line totals.
	Consumed decimal.Decimal
	// Remaining never goes below zero; an overdrawn package shows a Shortfall instead.
	Remaining decimal.Decimal
	Shortfall decimal.Decimal
	// Utilization is Consumed as a percentage of the available credit.
	Utilization decimal.Decimal
}

// ComputeBalance sums the treatment lines against a package amount.
func ComputeBalance(packageAmount decimal.Decimal, lines []Treatment) Balance {
	consumed := decimal.Zero
	for _, l := range lines {
		consumed = consumed.Add(l.LineTotal())
	}

	diff := packageAmount.Sub(consumed)

	return Balance{
		PackageAmount: packageAmount,
		Consumed:      consumed,
		Remaining:     money.Clamp(diff),
		Shortfall:     money.Clamp(diff.Neg()),
		Utilization:   money.Percent(consumed, packageAmount),
	}
}
