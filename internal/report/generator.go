// Package report renders analysis results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/finflow/internal/analysis"
	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Report is one user's analysis as shown by `finflow analyze`.
type Report struct {
	UserID               string                `json:"user_id"`
	Period               string                `json:"period"`
	Months               float64               `json:"months"`
	Transactions         int                   `json:"transactions"`
	MonthlyIncome        float64               `json:"monthly_income"`
	ActualMonthlyExpense float64               `json:"actual_monthly_expense"`
	Prediction           float64               `json:"predicted_next_month_expense"`
	SavingsRate          float64               `json:"savings_rate"`
	Suggestions          []string              `json:"suggestions"`
	Alerts               []models.AnomalyAlert `json:"alerts"`
}

// NewReport combines the period summary of txs with an analysis response.
func NewReport(req models.PredictRequest, txs []models.Transaction, resp models.PredictResponse) Report {
	summary := analysis.Summarize(txs)
	period := ""
	if summary.Count > 0 {
		period = summary.Period.String()
	}
	return Report{
		UserID:               req.UserID,
		Period:               period,
		Months:               summary.Months,
		Transactions:         summary.Count,
		MonthlyIncome:        req.MonthlyIncome,
		ActualMonthlyExpense: resp.Actual,
		Prediction:           resp.Prediction,
		SavingsRate:          resp.SavingsRate,
		Suggestions:          resp.Suggestions,
		Alerts:               resp.Alerts,
	}
}

// ReportGenerator renders reports in the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders report as "text" or "json".
func (g *ReportGenerator) GenerateReport(report Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatText, "":
		return []byte(renderText(report)), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(report Report) ([]byte, error) {
	if report.Suggestions == nil {
		report.Suggestions = []string{}
	}
	if report.Alerts == nil {
		report.Alerts = []models.AnomalyAlert{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

func renderText(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Spending report for %s\n", r.UserID)
	if r.Period != "" {
		fmt.Fprintf(&b, "Period:            %s (%.1f months, %d transactions)\n", r.Period, r.Months, r.Transactions)
	}
	fmt.Fprintf(&b, "Monthly income:    %s\n", currencyutils.FormatRupees(r.MonthlyIncome))
	fmt.Fprintf(&b, "Monthly expense:   %s\n", currencyutils.FormatRupees(r.ActualMonthlyExpense))
	fmt.Fprintf(&b, "Next month (est.): %s\n", currencyutils.FormatRupees(r.Prediction))
	fmt.Fprintf(&b, "Savings rate:      %.1f%%\n", r.SavingsRate)

	b.WriteString("\nSuggestions:\n")
	if len(r.Suggestions) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}

	b.WriteString("\nAlerts:\n")
	if len(r.Alerts) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, a := range r.Alerts {
		fmt.Fprintf(&b, "  - %s  %s  %s  %s\n", a.Date, a.Description,
			currencyutils.FormatRupees(a.Amount), a.Reason)
	}
	return b.String()
}
