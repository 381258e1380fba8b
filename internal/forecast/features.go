// Package forecast predicts next month's expense from a financial profile.
package forecast

import (
	"strings"

	"fjacquet/finflow/internal/models"
)

// FeatureNames lists the model inputs in the order the model expects them.
var FeatureNames = []string{
	"monthly_income_inr",
	"education_level",
	"employment_status",
	"job_title",
	"has_loan",
	"loan_type",
	"loan_term_months",
	"monthly_emi_inr",
	"loan_interest_rate_pct",
	"credit_score",
}

// Label encodings used when the model was trained.
var (
	educationCodes = map[string]int{
		"Bachelor's":  0,
		"High School": 1,
		"Master's":    2,
		"Other":       3,
		"PhD":         4,
	}
	employmentCodes = map[string]int{
		"Employed":      0,
		"Self-employed": 1,
		"Student":       2,
		"Unemployed":    3,
	}
	jobCodes = map[string]int{
		"Accountant":     0,
		"Doctor":         1,
		"Driver":         2,
		"AI/ML Engineer": 3,
		"Manager":        4,
		"Salesperson":    5,
		"Student":        6,
		"Teacher":        7,
		"Unemployed":     8,
	}
	loanTypeCodes = map[string]int{
		"Business":  0,
		"Car":       1,
		"Education": 2,
		"Home":      3,
		"Personal":  0,
		"None":      4,
	}
)

// Fallback codes for values outside the training vocabulary.
const (
	defaultEducationCode  = 3
	defaultEmploymentCode = 3
	defaultJobCode        = 8
	defaultLoanTypeCode   = 4
)

// FeatureVector is the fixed, ordered model input.
type FeatureVector struct {
	MonthlyIncome       float64
	EducationCode       int
	EmploymentCode      int
	JobCode             int
	HasLoan             int
	LoanTypeCode        int
	LoanTermMonths      int
	MonthlyEMI          float64
	LoanInterestRatePct float64
	CreditScore         int
}

// Encode builds the feature vector for req.
func Encode(req models.PredictRequest) FeatureVector {
	hasLoan := 0
	if strings.EqualFold(strings.TrimSpace(req.HasLoan), "yes") {
		hasLoan = 1
	}
	return FeatureVector{
		MonthlyIncome:       req.MonthlyIncome,
		EducationCode:       code(educationCodes, req.Education, defaultEducationCode),
		EmploymentCode:      code(employmentCodes, req.Employment, defaultEmploymentCode),
		JobCode:             code(jobCodes, req.JobTitle, defaultJobCode),
		HasLoan:             hasLoan,
		LoanTypeCode:        code(loanTypeCodes, req.LoanType, defaultLoanTypeCode),
		LoanTermMonths:      req.LoanTermMonths,
		MonthlyEMI:          req.MonthlyEMI,
		LoanInterestRatePct: req.LoanInterestRatePct,
		CreditScore:         req.CreditScore,
	}
}

// Values returns the vector in FeatureNames order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.MonthlyIncome,
		float64(f.EducationCode),
		float64(f.EmploymentCode),
		float64(f.JobCode),
		float64(f.HasLoan),
		float64(f.LoanTypeCode),
		float64(f.LoanTermMonths),
		f.MonthlyEMI,
		f.LoanInterestRatePct,
		float64(f.CreditScore),
	}
}

func code(table map[string]int, value string, fallback int) int {
	if c, ok := table[strings.TrimSpace(value)]; ok {
		return c
	}
	return fallback
}
