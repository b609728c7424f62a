package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

func field(s string) money.Field {
	return money.ParseField(s)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDerive(t *testing.T) {
	type want struct {
		mode             billing.Mode
		amount           string
		advance          string
		pending          string
		needToPay        string
		usedFromAdvance  string
		remainingAdvance string
		overridden       bool
	}

	tests := []struct {
		name string
		form billing.Form
		want want
	}{
		{
			name: "Overpaid",
			form: billing.Form{Amount: field("500"), Paid: field("700")},
			want: want{
				mode: billing.ModeStandard, amount: "500.00", advance: "200.00",
				pending: "0.00", needToPay: "0.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "PartiallyPaid",
			form: billing.Form{Amount: field("500"), Paid: field("120.5")},
			want: want{
				mode: billing.ModeStandard, amount: "500.00", advance: "0.00",
				pending: "379.50", needToPay: "379.50", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "ManualAdvanceSkipsAutoCalc",
			form: billing.Form{Amount: field("500"), Paid: field("100"), Advance: field("150"), ManualAdvance: true},
			want: want{
				mode: billing.ModeStandard, amount: "500.00", advance: "150.00",
				pending: "250.00", needToPay: "250.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "AdvanceIgnoredWithoutManualFlag",
			form: billing.Form{Amount: field("500"), Paid: field("100"), Advance: field("150")},
			want: want{
				mode: billing.ModeStandard, amount: "500.00", advance: "0.00",
				pending: "400.00", needToPay: "400.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "InsuranceAdvance",
			form: billing.Form{
				Amount:             field("5000"),
				Insurance:          billing.InsuranceYes,
				InsuranceType:      billing.InsuranceTypeAdvance,
				AdvanceGivenAmount: field("1000"),
				CoPayPercent:       field("20"),
			},
			want: want{
				mode: billing.ModeInsuranceAdvance, amount: "800.00", advance: "0.00",
				pending: "800.00", needToPay: "800.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
				overridden: true,
			},
		},
		{
			name: "InsuranceAdvanceInvalidCoPayFallsBack",
			form: billing.Form{
				Amount:             field("300"),
				Paid:               field("100"),
				Insurance:          billing.InsuranceYes,
				InsuranceType:      billing.InsuranceTypeAdvance,
				AdvanceGivenAmount: field("1000"),
				CoPayPercent:       field("n/a"),
			},
			want: want{
				mode: billing.ModeStandard, amount: "300.00", advance: "0.00",
				pending: "200.00", needToPay: "200.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "InsurancePaidIgnoresCoPay",
			form: billing.Form{
				Amount:             field("300"),
				Insurance:          billing.InsuranceYes,
				InsuranceType:      billing.InsuranceTypePaid,
				AdvanceGivenAmount: field("1000"),
				CoPayPercent:       field("20"),
			},
			want: want{
				mode: billing.ModeStandard, amount: "300.00", advance: "0.00",
				pending: "300.00", needToPay: "300.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "EMRAdvance",
			form: billing.Form{Amount: field("500"), Paid: field("100"), AdvanceBase: new(dec("300"))},
			want: want{
				mode: billing.ModeEMRAdvance, amount: "500.00", advance: "200.00",
				pending: "400.00", needToPay: "400.00", usedFromAdvance: "100.00", remainingAdvance: "200.00",
			},
		},
		{
			name: "EMRAdvancePaidBeyondBase",
			form: billing.Form{Amount: field("500"), Paid: field("400"), AdvanceBase: new(dec("300"))},
			want: want{
				mode: billing.ModeEMRAdvance, amount: "500.00", advance: "0.00",
				pending: "200.00", needToPay: "200.00", usedFromAdvance: "300.00", remainingAdvance: "0.00",
			},
		},
		{
			name: "GarbageInputsReadAsZero",
			form: billing.Form{Amount: field("abc"), Paid: field("-40")},
			want: want{
				mode: billing.ModeStandard, amount: "0.00", advance: "0.00",
				pending: "0.00", needToPay: "0.00", usedFromAdvance: "0.00", remainingAdvance: "0.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.Derive(tt.form)

			assert.Equal(t, tt.want.mode, got.Mode)
			assert.Equal(t, tt.want.overridden, got.AmountOverridden)
			assert.Equal(t, tt.want.amount, money.Format(got.Amount))
			assert.Equal(t, tt.want.advance, money.Format(got.Advance))
			assert.Equal(t, tt.want.pending, money.Format(got.Pending))
			assert.Equal(t, tt.want.needToPay, money.Format(got.NeedToPay))
			assert.Equal(t, tt.want.usedFromAdvance, money.Format(got.UsedFromAdvance))
			assert.Equal(t, tt.want.remainingAdvance, money.Format(got.RemainingAdvance))
		})
	}
}

func TestDerive_PaymentsCoverAmount(t *testing.T) {
	amounts := []string{"0", "0.01", "99.99", "500", "1234.56"}
	paids := []string{"0", "0.01", "50", "500", "700", "2000.10"}

	for _, a := range amounts {
		for _, p := range paids {
			got := billing.Derive(billing.Form{Amount: field(a), Paid: field(p)})

			amount, paid := dec(a), dec(p)
			total := paid.Add(got.Advance).Add(got.Pending)

			assert.True(t, decimal.Max(decimal.Zero, paid.Sub(amount)).Equal(got.Advance), "advance for %s/%s", a, p)
			assert.True(t, total.GreaterThanOrEqual(amount), "coverage for %s/%s", a, p)

			if paid.LessThanOrEqual(amount) {
				assert.True(t, total.Equal(amount), "exact coverage for %s/%s", a, p)
			}
		}
	}
}

func TestComputeNeedToPay_CoPayMonotonic(t *testing.T) {
	given := field("1000")
	previous := given.Decimal()

	for pct := 0; pct <= 100; pct += 5 {
		got, ok := billing.ComputeNeedToPay(given, money.FieldOf(decimal.NewFromInt(int64(pct))), billing.InsuranceYes, billing.InsuranceTypeAdvance)
		assert.True(t, ok)
		assert.True(t, got.LessThanOrEqual(previous), "co-pay %d%%", pct)

		switch pct {
		case 0:
			assert.Equal(t, "1000.00", money.Format(got))
		case 100:
			assert.True(t, got.IsZero())
		}

		previous = got
	}
}

func TestComputeNeedToPay_NotInsured(t *testing.T) {
	_, ok := billing.ComputeNeedToPay(field("1000"), field("20"), billing.InsuranceNo, billing.InsuranceTypeAdvance)
	assert.False(t, ok)
}

func TestComputeAdvance_Manual(t *testing.T) {
	manual := dec("75.5")
	assert.True(t, manual.Equal(billing.ComputeAdvance(dec("10"), dec("900"), &manual)))
	assert.Equal(t, "890.00", money.Format(billing.ComputeAdvance(dec("10"), dec("900"), nil)))
}
