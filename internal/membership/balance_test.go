package membership_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

func line(name string, units int, price string) membership.Treatment {
	return membership.Treatment{TreatmentName: name, UnitCount: units, UnitPrice: decimal.RequireFromString(price)}
}

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name            string
		packageAmount   string
		lines           []membership.Treatment
		wantConsumed    string
		wantRemaining   string
		wantShortfall   string
		wantUtilization string
	}{
		{
			name:            "Empty",
			packageAmount:   "1000",
			wantConsumed:    "0.00",
			wantRemaining:   "1000.00",
			wantShortfall:   "0.00",
			wantUtilization: "0.00",
		},
		{
			name:          "PartlyUsed",
			packageAmount: "1000",
			lines: []membership.Treatment{
				line("Massage", 2, "150"),
				line("Cupping", 1, "99.99"),
			},
			wantConsumed:    "399.99",
			wantRemaining:   "600.01",
			wantShortfall:   "0.00",
			wantUtilization: "40.00",
		},
		{
			name:            "Overdrawn",
			packageAmount:   "200",
			lines:           []membership.Treatment{line("Laser", 3, "100")},
			wantConsumed:    "300.00",
			wantRemaining:   "0.00",
			wantShortfall:   "100.00",
			wantUtilization: "150.00",
		},
		{
			name:            "ZeroPackage",
			packageAmount:   "0",
			lines:           []membership.Treatment{line("Consult", 1, "50")},
			wantConsumed:    "50.00",
			wantRemaining:   "0.00",
			wantShortfall:   "50.00",
			wantUtilization: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := membership.ComputeBalance(decimal.RequireFromString(tt.packageAmount), tt.lines)

			assert.Equal(t, tt.wantConsumed, money.Format(got.Consumed))
			assert.Equal(t, tt.wantRemaining, money.Format(got.Remaining))
			assert.Equal(t, tt.wantShortfall, money.Format(got.Shortfall))
			assert.Equal(t, tt.wantUtilization, money.Format(money.Round(got.Utilization)))
		})
	}
}

func TestComputeBalance_ExactAndMonotonic(t *testing.T) {
	pkg := decimal.NewFromInt(100)

	var lines []membership.Treatment

	previous := decimal.Zero

	for i := 1; i <= 12; i++ {
		lines = append(lines, line("Session", i, "0.333"))

		got := membership.ComputeBalance(pkg, lines)
		assert.True(t, got.Consumed.GreaterThanOrEqual(previous))

		want := decimal.Zero
		for _, l := range lines {
			want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.UnitCount))))
		}

		assert.True(t, want.Equal(got.Consumed), "consumed %s, want %s", got.Consumed, want)
		assert.True(t, decimal.Max(decimal.Zero, pkg.Sub(want)).Equal(got.Remaining))

		previous = got.Consumed
	}
}

func TestMembership_BalanceWithTransfers(t *testing.T) {
	m := &membership.Membership{
		EMRNumber:     "EMR-1",
		PackageAmount: decimal.NewFromInt(1000),
		Treatments:    []membership.Treatment{line("Massage", 2, "100")},
		Transfers: []membership.Transfer{
			{FromEMR: "EMR-1", ToEMR: "EMR-2", TransferredAmount: decimal.NewFromInt(300), TransferredAt: time.Now()},
			{FromEMR: "EMR-3", ToEMR: "EMR-1", TransferredAmount: decimal.NewFromInt(50), TransferredAt: time.Now()},
		},
	}

	got := m.Balance()

	assert.Equal(t, "1000.00", money.Format(got.PackageAmount))
	assert.Equal(t, "300.00", money.Format(got.TransferredOut))
	assert.Equal(t, "50.00", money.Format(got.TransferredIn))
	assert.Equal(t, "200.00", money.Format(got.Consumed))
	assert.Equal(t, "550.00", money.Format(got.Remaining))
}
