package models

// PredictRequest carries the profile fields submitted for a spending forecast.
type PredictRequest struct {
	UserID              string  `json:"user_id"`
	MonthlyIncome       float64 `json:"monthly_income"`
	JobTitle            string  `json:"job_title"`
	Education           string  `json:"education"`
	Employment          string  `json:"employment"`
	HasLoan             string  `json:"has_loan"`
	LoanType            string  `json:"loan_type"`
	LoanTermMonths      int     `json:"loan_term_months"`
	MonthlyEMI          float64 `json:"monthly_emi_usd"`
	LoanInterestRatePct float64 `json:"loan_interest_rate_pct"`
	CreditScore         int     `json:"credit_score"`
}

// NewPredictRequest returns a request carrying the optional-field defaults.
func NewPredictRequest(userID string) PredictRequest {
	return PredictRequest{
		UserID:      userID,
		LoanType:    DefaultLoanType,
		CreditScore: DefaultCreditScore,
	}
}

// Profile extracts the advice profile from the request.
func (r PredictRequest) Profile() Profile {
	return Profile{
		MonthlyIncome:  r.MonthlyIncome,
		MonthlyEMI:     r.MonthlyEMI,
		InterestRate:   r.LoanInterestRatePct,
		JobTitle:       r.JobTitle,
		EducationLevel: r.Education,
	}
}

// UploadResponse reports the outcome of a statement ingestion.
type UploadResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// PredictResponse reports the outcome of an analysis request.
type PredictResponse struct {
	Status      string         `json:"status"`
	Prediction  float64        `json:"prediction"`
	Actual      float64        `json:"actual"`
	Suggestions []string       `json:"suggestions"`
	Alerts      []AnomalyAlert `json:"alerts"`
	SavingsRate float64        `json:"savings_rate"`
}

// ErrorResponse is the failure shape shared by every endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse with StatusError.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
