package statement

import (
	"strings"
	"time"

	"fjacquet/finflow/internal/categorizer"
	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/dateutils"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/textutils"

	"github.com/shopspring/decimal"
)

// DayMonth is a date without a year, as printed on the statement.
type DayMonth struct {
	Day   int
	Month time.Month
}

// ExtractMerchant returns the counterparty that follows the first lead-in
// phrase, cut at the first stop marker and limited to one line.
func ExtractMerchant(text string) (string, bool) {
	lead, ok := LeadInMatcher.Find(text)
	if !ok {
		return "", false
	}

	rest := text[lead.End:]
	if stop, ok := MerchantStopMatcher.Find(rest); ok {
		rest = rest[:stop.Start]
	}

	merchant := textutils.FirstLine(strings.TrimSpace(rest))
	return merchant, merchant != ""
}

// ExtractCategory returns the canonical category of the first #tag, or
// Miscellaneous when the block carries none.
func ExtractCategory(text string, tags categorizer.TagMap) string {
	m, ok := CategoryMatcher.Find(text)
	if !ok {
		return models.CategoryMiscellaneous
	}
	return tags.Canonical(m.Group(0))
}

// ExtractAmount returns the first currency amount, negative when the matched
// text carries a minus sign.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	m, ok := AmountMatcher.Find(text)
	if !ok {
		return decimal.Zero, false
	}

	magnitude, err := currencyutils.ParseAmount(m.Group(1))
	if err != nil {
		return decimal.Zero, false
	}
	if strings.Contains(m.Text, "-") {
		return magnitude.Neg(), true
	}
	return magnitude, true
}

// ExtractDate returns the first day+month pair anywhere in text, in either order.
func ExtractDate(text string) (DayMonth, bool) {
	m, ok := DateMatcher.Find(text)
	if !ok {
		return DayMonth{}, false
	}

	dayToken, monthToken := m.Group(0), m.Group(1)
	if dayToken == "" {
		dayToken, monthToken = m.Group(3), m.Group(2)
	}

	day, err := dateutils.ParseDay(dayToken)
	if err != nil {
		return DayMonth{}, false
	}
	month, err := dateutils.MonthFromAbbrev(monthToken)
	if err != nil {
		return DayMonth{}, false
	}
	return DayMonth{Day: day, Month: month}, true
}
