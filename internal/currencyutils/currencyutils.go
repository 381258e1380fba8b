// Package currencyutils provides common currency and decimal operations used throughout the application.
package currencyutils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes formatted amounts.
const RupeeSymbol = "₹"

var currencyMarker = regexp.MustCompile(`(?i)rs\.?|₹|inr|\s`)

// ParseAmount parses an Indian-style amount such as "Rs. 50,000", "₹1,234.50"
// or "250.00". Commas are always thousands separators.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': empty", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency markers, whitespace and thousands separators.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarker.ReplaceAllString(amountStr, "")
	return strings.ReplaceAll(amountStr, ",", "")
}

// Round rounds half away from zero to the given number of places.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// Round1 rounds to one decimal place.
func Round1(value float64) float64 {
	return Round(value, 1)
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return Round(value, 2)
}

// FormatGrouped renders value rounded to whole units with comma thousands
// separators, e.g. 1234567.6 -> "1,234,568". NaN and infinities are rendered
// as strconv does.
func FormatGrouped(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	rounded := decimal.NewFromFloat(value).Round(0)
	digits := rounded.Abs().String()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatRupees renders value as "₹1,234".
func FormatRupees(value float64) string {
	return RupeeSymbol + FormatGrouped(value)
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
