package currencyutils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "250.00", expected: "250"},
		{input: "Rs.250.00", expected: "250"},
		{input: "Rs. 50,000", expected: "50000"},
		{input: "₹1,23,456.75", expected: "123456.75"},
		{input: "INR 99", expected: "99"},
		{input: "", wantErr: true},
		{input: "Rs.", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.5, Round1(2.45))
	assert.Equal(t, 1.3, Round1(1.25))
	assert.Equal(t, 1234.57, Round2(1234.567))
	assert.Equal(t, -3.3, Round1(-3.25))
	assert.Equal(t, 0.0, Round2(0))
}

func TestFormatGrouped(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{input: 0, expected: "0"},
		{input: 999.4, expected: "999"},
		{input: 1000, expected: "1,000"},
		{input: 50000, expected: "50,000"},
		{input: 1234567.6, expected: "1,234,568"},
		{input: -4500.2, expected: "-4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatGrouped(tt.input))
		})
	}
	assert.Equal(t, "₹12,000", FormatRupees(12000))
}

func TestNonFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "nan", input: math.NaN(), expected: "NaN"},
		{name: "positive infinity", input: math.Inf(1), expected: "+Inf"},
		{name: "negative infinity", input: math.Inf(-1), expected: "-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, FormatGrouped(tt.input))
			})
			assert.NotPanics(t, func() {
				got := Round2(tt.input)
				assert.True(t, math.IsNaN(got) || math.IsInf(got, 0))
			})
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 25.0, Percent(25, 100))
	assert.Equal(t, 0.0, Percent(25, 0))
	assert.Equal(t, 0.0, Percent(25, -10))
}
