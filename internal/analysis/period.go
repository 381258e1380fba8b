// Package analysis derives period-normalized spending metrics and anomalies
// from a set of transactions.
package analysis

import (
	"math"
	"sort"
	"time"

	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/dateutils"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/textutils"
)

// MinMonths is the floor applied to every period length.
const MinMonths = 1.0

// Span returns the date range covered by txs; false when none is dated.
func Span(txs []models.Transaction) (dateutils.DateRange, bool) {
	dates := make([]time.Time, 0, len(txs))
	for _, tx := range txs {
		dates = append(dates, tx.Date)
	}
	return dateutils.NewDateRange(dates)
}

// NumMonths returns the number of months spanned by txs, rounded to one
// decimal and never below MinMonths. Fewer than two dated transactions count
// as one month.
func NumMonths(txs []models.Transaction) float64 {
	dated := 0
	for _, tx := range txs {
		if !tx.Date.IsZero() {
			dated++
		}
	}
	if dated < 2 {
		return MinMonths
	}
	span, _ := Span(txs)
	return MonthsForDays(span.Days())
}

// MonthsForDays converts a day span to months with the MinMonths floor.
func MonthsForDays(days int) float64 {
	months := currencyutils.Round1(float64(days) / dateutils.AverageDaysPerMonth)
	return math.Max(MinMonths, months)
}

// MonthlyRate spreads total evenly over months.
func MonthlyRate(total, months float64) float64 {
	if months < MinMonths {
		months = MinMonths
	}
	return total / months
}

// Summary aggregates a transaction set over its own period.
type Summary struct {
	Period         dateutils.DateRange
	Months         float64
	Count          int
	TotalExpense   float64
	TotalIncome    float64
	MonthlyExpense float64
}

// Summarize computes the period and expense totals of txs.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{Count: len(txs), Months: NumMonths(txs)}
	s.Period, _ = Span(txs)
	for _, tx := range txs {
		if tx.IsExpense() {
			s.TotalExpense += tx.Magnitude().InexactFloat64()
		} else {
			s.TotalIncome += tx.Amount.InexactFloat64()
		}
	}
	s.MonthlyExpense = MonthlyRate(s.TotalExpense, s.Months)
	return s
}

// ExcludeDescriptions drops transactions whose description contains any of
// exclusions, ignoring case.
func ExcludeDescriptions(txs []models.Transaction, exclusions []string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if textutils.ContainsAnyFold(tx.Description, exclusions) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// TopExpenses returns up to n expenses ordered by decreasing magnitude. Ties
// keep their original order.
func TopExpenses(txs []models.Transaction, n int) []models.Transaction {
	expenses := models.Expenses(txs)
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Magnitude().GreaterThan(expenses[j].Magnitude())
	})
	if n >= 0 && len(expenses) > n {
		expenses = expenses[:n]
	}
	return expenses
}
