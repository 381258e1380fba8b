package models

import "time"

// AnomalyAlert flags one unusually large expense.
type AnomalyAlert struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Reason      string  `json:"reason"`
	Amount      float64 `json:"amount"`
	Multiple    float64 `json:"multiple"` // standard deviations above the mean, one decimal
}

// InsightResult is the outcome of one analysis run.
type InsightResult struct {
	Suggestions []string       `json:"suggestions"`
	Alerts      []AnomalyAlert `json:"alerts"`
	SavingsRate float64        `json:"savings_rate"`
}

// Profile is the caller-supplied financial context for advice generation.
type Profile struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	MonthlyEMI     float64 `json:"monthly_emi"`
	InterestRate   float64 `json:"interest_rate"`
	JobTitle       string  `json:"job_title"`
	EducationLevel string  `json:"education_level"`
}

// WithDefaults fills the descriptive fields left empty by the caller.
func (p Profile) WithDefaults() Profile {
	if p.JobTitle == "" {
		p.JobTitle = DefaultJobTitle
	}
	if p.EducationLevel == "" {
		p.EducationLevel = DefaultEducationLevel
	}
	return p
}

// SpendingResult is the per-user analysis row kept by the store.
type SpendingResult struct {
	UserID                    string    `json:"user_id"`
	MonthlyIncome             float64   `json:"monthly_income"`
	ActualMonthlyExpense      float64   `json:"actual_monthly_expense"`
	PredictedNextMonthExpense float64   `json:"predicted_next_month_expense"`
	JobTitle                  string    `json:"job_title"`
	EducationLevel            string    `json:"education_level"`
	LoanInterestRatePct       float64   `json:"loan_interest_rate_pct"`
	Suggestion                string    `json:"suggestion"`
	SavingsRate               float64   `json:"savings_rate"`
	CalculationDate           time.Time `json:"calculation_date"`
}
