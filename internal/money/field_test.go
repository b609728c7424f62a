package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantValid bool
	}{
		{name: "Integer", input: "500", want: "500", wantValid: true},
		{name: "Decimal", input: "12.75", want: "12.75", wantValid: true},
		{name: "Whitespace", input: "  42 ", want: "42", wantValid: true},
		{name: "TrailingGarbage", input: "12.5 AED", want: "12.5", wantValid: true},
		{name: "LeadingDot", input: ".5", want: "0.5", wantValid: true},
		{name: "Negative", input: "-30", want: "0", wantValid: true},
		{name: "Empty", input: "", want: "0", wantValid: false},
		{name: "Garbage", input: "abc", want: "0", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := money.ParseField(tt.input)

			assert.Equal(t, tt.wantValid, f.Valid())
			assert.True(t, decimal.RequireFromString(tt.want).Equal(f.Decimal()), "got %s", f.Decimal())
		})
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	var form struct {
		Number  money.Field `json:"number"`
		String  money.Field `json:"string"`
		Null    money.Field `json:"null"`
		Bool    money.Field `json:"bool"`
		Missing money.Field `json:"missing"`
	}

	err := json.Unmarshal([]byte(`{"number": 700, "string": "200.50", "null": null, "bool": true}`), &form)
	require.NoError(t, err)

	assert.True(t, form.Number.Valid())
	assert.Equal(t, "700.00", money.Format(form.Number.Decimal()))
	assert.Equal(t, "200.50", money.Format(form.String.Decimal()))
	assert.False(t, form.Null.Valid())
	assert.False(t, form.Bool.Valid())
	assert.False(t, form.Missing.Valid())
	assert.True(t, form.Bool.Decimal().IsZero())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "25.00", money.Format(money.Percent(decimal.NewFromInt(250), decimal.NewFromInt(1000))))
	assert.True(t, money.Percent(decimal.NewFromInt(10), decimal.Zero).IsZero())
}

func TestRound(t *testing.T) {
	assert.Equal(t, "0.01", money.Format(money.Round(decimal.RequireFromString("0.005"))))
	assert.Equal(t, "33.33", money.Format(money.Round(decimal.NewFromInt(100).Div(decimal.NewFromInt(3)))))
}
