package report

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	req := models.NewPredictRequest("u1")
	req.MonthlyIncome = 20000
	txs := []models.Transaction{
		{UserID: "u1", Date: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), Description: "Rent", Amount: decimal.NewFromInt(-12000)},
		{UserID: "u1", Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), Description: "Croma", Amount: decimal.NewFromInt(-5000)},
	}
	resp := models.PredictResponse{
		Status:      models.StatusSuccess,
		Prediction:  14000,
		Actual:      8500,
		SavingsRate: 57.5,
		Suggestions: []string{"💎 Invest the surplus"},
		Alerts: []models.AnomalyAlert{{
			Date: "2025-03-02", Description: "Croma", Reason: "Spending is 2.2x higher than typical.", Amount: 5000, Multiple: 2.2,
		}},
	}
	return NewReport(req, txs, resp)
}

func TestNewReport(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, "2025-01-01 to 2025-03-02", r.Period)
	assert.Equal(t, 2.0, r.Months)
	assert.Equal(t, 2, r.Transactions)
}

func TestGenerateReport_Text(t *testing.T) {
	out, err := NewReportGenerator(nil).GenerateReport(sampleReport(), FormatText)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Spending report for u1")
	assert.Contains(t, text, "2025-01-01 to 2025-03-02 (2.0 months, 2 transactions)")
	assert.Contains(t, text, "Monthly income:    ₹20,000")
	assert.Contains(t, text, "Monthly expense:   ₹8,500")
	assert.Contains(t, text, "Savings rate:      57.5%")
	assert.Contains(t, text, "  - 💎 Invest the surplus")
	assert.Contains(t, text, "  - 2025-03-02  Croma  ₹5,000  Spending is 2.2x higher than typical.")
}

func TestGenerateReport_TextEmpty(t *testing.T) {
	out, err := NewReportGenerator(nil).GenerateReport(Report{UserID: "u2"}, "")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Period:")
	assert.Contains(t, string(out), "Suggestions:\n  (none)")
	assert.Contains(t, string(out), "Alerts:\n  (none)")
}

func TestGenerateReport_JSON(t *testing.T) {
	out, err := NewReportGenerator(logging.NewNopLogger()).GenerateReport(sampleReport(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "u1", decoded["user_id"])
	assert.Equal(t, 14000.0, decoded["predicted_next_month_expense"])
	assert.Len(t, decoded["alerts"], 1)

	empty, err := NewReportGenerator(nil).GenerateReport(Report{UserID: "u2"}, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"suggestions": []`)
	assert.Contains(t, string(empty), `"alerts": []`)
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	_, err := NewReportGenerator(nil).GenerateReport(sampleReport(), "xml")
	assert.Error(t, err)
}
