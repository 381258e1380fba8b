package analysis

import (
	"testing"
	"time"

	"fjacquet/finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func tx(offsetDays int, amount string, description string) models.Transaction {
	return models.Transaction{
		UserID:      "u",
		Date:        day0.AddDate(0, 0, offsetDays),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    "Food",
	}
}

func TestNumMonths(t *testing.T) {
	tests := []struct {
		name string
		txs  []models.Transaction
		want float64
	}{
		{name: "empty", txs: nil, want: 1.0},
		{name: "single", txs: []models.Transaction{tx(0, "-1", "a")}, want: 1.0},
		{name: "same day", txs: []models.Transaction{tx(0, "-1", "a"), tx(0, "-2", "b")}, want: 1.0},
		{name: "two weeks", txs: []models.Transaction{tx(0, "-1", "a"), tx(14, "-2", "b")}, want: 1.0},
		{name: "forty-five days", txs: []models.Transaction{tx(0, "-1", "a"), tx(45, "-2", "b")}, want: 1.5},
		{name: "sixty-one days", txs: []models.Transaction{tx(61, "-1", "a"), tx(0, "-2", "b")}, want: 2.0},
		{name: "ninety days", txs: []models.Transaction{tx(0, "-1", "a"), tx(30, "5", "b"), tx(90, "-2", "c")}, want: 3.0},
		{name: "one year", txs: []models.Transaction{tx(0, "-1", "a"), tx(365, "-2", "b")}, want: 12.0},
		{name: "undated ignored", txs: []models.Transaction{tx(0, "-1", "a"), {Amount: decimal.NewFromInt(-3)}}, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NumMonths(tt.txs))
		})
	}
}

func TestNumMonths_ShortSpansFloorAtOneMonth(t *testing.T) {
	for days := 0; days <= 15; days++ {
		txs := []models.Transaction{tx(0, "-1", "a"), tx(days, "-1", "b")}
		assert.Equal(t, 1.0, NumMonths(txs), "days=%d", days)
	}
}

func TestMonthlyRate(t *testing.T) {
	assert.Equal(t, 150.0, MonthlyRate(300, 2))
	assert.Equal(t, 300.0, MonthlyRate(300, 0))
	assert.Equal(t, 300.0, MonthlyRate(300, 0.5))
}

func TestSummarize(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "-100", "a"),
		tx(31, "5000", "salary"),
		tx(61, "-200", "b"),
	}

	s := Summarize(txs)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2.0, s.Months)
	assert.Equal(t, 300.0, s.TotalExpense)
	assert.Equal(t, 5000.0, s.TotalIncome)
	assert.Equal(t, 150.0, s.MonthlyExpense)
	assert.Equal(t, day0, s.Period.Start)
	assert.Equal(t, 61, s.Period.Days())
}

func TestExcludeDescriptions(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "-1", "Transfer to SELF"),
		tx(0, "-2", "Swiggy"),
		tx(0, "-3", "banarshi store"),
	}

	kept := ExcludeDescriptions(txs, []string{"Self", "BANARSHI"})

	require.Len(t, kept, 1)
	assert.Equal(t, "Swiggy", kept[0].Description)
	assert.Len(t, ExcludeDescriptions(txs, nil), 3)
}

func TestTopExpenses(t *testing.T) {
	txs := []models.Transaction{
		tx(0, "-100", "a"),
		tx(1, "-500", "b"),
		tx(2, "1000", "income"),
		tx(3, "-300", "c"),
		tx(4, "-500", "d"),
	}

	top := TopExpenses(txs, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Description)
	assert.Equal(t, "d", top[1].Description)

	all := TopExpenses(txs, 10)
	require.Len(t, all, 4)
	assert.Equal(t, "a", all[3].Description)
}
