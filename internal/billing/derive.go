package billing

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

// Mode tells which set of rules produced a Derived result.
type Mode string

const (
	// ModeStandard applies paid and advance directly against the amount.
	ModeStandard Mode = "standard"
	// ModeEMRAdvance draws the payment from an advance balance carried by the patient's EMR.
	ModeEMRAdvance Mode = "emr_advance"
	// ModeInsuranceAdvance bills the co-pay share of an insurance advance.
	ModeInsuranceAdvance Mode = "insurance_advance"
)

// Form is a snapshot of the registration form values that feed the derived fields.
type Form struct {
	Amount money.Field
	Paid   money.Field

	// Advance is only read when ManualAdvance is set.
	Advance       money.Field
	ManualAdvance bool

	// AdvanceBase is the advance balance loaded from a previous record for the
	// same EMR. A nil base means no stored advance is in play.
	AdvanceBase *decimal.Decimal

	Insurance          Insurance
	InsuranceType      InsuranceType
	AdvanceGivenAmount money.Field
	CoPayPercent       money.Field
}

// Derived holds every figure computed from a Form.
type Derived struct {
	Mode Mode

	// Amount is the billable amount after derivation. It differs from the
	// form's amount only when AmountOverridden is set.
	Amount           decimal.Decimal
	AmountOverridden bool

	Paid             decimal.Decimal
	Advance          decimal.Decimal
	Pending          decimal.Decimal
	NeedToPay        decimal.Decimal
	UsedFromAdvance  decimal.Decimal
	RemainingAdvance decimal.Decimal
}

// ComputeAdvance returns the surplus of paid over amount. An active manual
// advance is returned unchanged instead.
func ComputeAdvance(amount, paid decimal.Decimal, manual *decimal.Decimal) decimal.Decimal {
	if manual != nil {
		return *manual
	}

	if paid.GreaterThan(amount) {
		return money.Round(paid.Sub(amount))
	}

	return decimal.Zero
}

// ComputePending returns what is still owed after paid and advance are applied.
func ComputePending(amount, paid, advance decimal.Decimal) decimal.Decimal {
	return money.Round(money.Clamp(amount.Sub(paid.Add(advance))))
}

// EMRAdvance is the split of a payment drawn from a stored advance balance.
type EMRAdvance struct {
	UsedFromAdvance  decimal.Decimal
	RemainingAdvance decimal.Decimal
	Pending          decimal.Decimal
}

// ComputeEMRAdvance applies paid against a stored advance balance. Only the
// part of paid covered by the base counts towards the amount.
func ComputeEMRAdvance(amount, paid, base decimal.Decimal) EMRAdvance {
	used := decimal.Min(paid, base)

	return EMRAdvance{
		UsedFromAdvance:  used,
		RemainingAdvance: money.Round(money.Clamp(base.Sub(paid))),
		Pending:          money.Round(money.Clamp(amount.Sub(used))),
	}
}

// ComputeNeedToPay returns the co-pay share of an insurance advance and true,
// or false when the insurance advance rules do not apply and the caller
// should fall back to the pending balance.
func ComputeNeedToPay(advanceGiven, coPayPercent money.Field, insurance Insurance, insuranceType InsuranceType) (decimal.Decimal, bool) {
	if insurance != InsuranceYes || insuranceType != InsuranceTypeAdvance || !coPayPercent.Valid() {
		return decimal.Zero, false
	}

	share := decimal.NewFromInt(100).Sub(coPayPercent.Decimal())

	return money.Round(money.Clamp(money.OfPercent(advanceGiven.Decimal(), share))), true
}

// Derive computes every derived field of f. It never fails: unusable inputs
// have already been coerced to zero by money.Field.
func Derive(f Form) Derived {
	d := Derived{
		Mode:   ModeStandard,
		Amount: f.Amount.Decimal(),
		Paid:   f.Paid.Decimal(),
	}

	needToPay, insured := ComputeNeedToPay(f.AdvanceGivenAmount, f.CoPayPercent, f.Insurance, f.InsuranceType)
	if insured {
		d.Mode = ModeInsuranceAdvance
		d.Amount = needToPay
		d.AmountOverridden = true
	}

	switch {
	case f.AdvanceBase != nil:
		emr := ComputeEMRAdvance(d.Amount, d.Paid, money.Clamp(*f.AdvanceBase))
		d.UsedFromAdvance = emr.UsedFromAdvance
		d.RemainingAdvance = emr.RemainingAdvance
		d.Advance = emr.RemainingAdvance
		d.Pending = emr.Pending

		if !insured {
			d.Mode = ModeEMRAdvance
		}
	default:
		var manual *decimal.Decimal
		if f.ManualAdvance {
			manual = new(f.Advance.Decimal())
		}

		d.Advance = ComputeAdvance(d.Amount, d.Paid, manual)
		d.Pending = ComputePending(d.Amount, d.Paid, d.Advance)
	}

	d.NeedToPay = d.Pending
	if insured {
		d.NeedToPay = needToPay
	}

	return d
}
