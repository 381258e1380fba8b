package validation

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finflow/internal/models"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidStatementFile checks that path is an existing PDF or plain-text statement.
func IsValidStatementFile(path string) error {
	if err := IsValidPath(path); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return nil
	default:
		return fmt.Errorf("unsupported statement file: %s. Supported extensions are '.pdf', '.txt'", path)
	}
}

// IsValidOutputFormat checks if the given export format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "csv", "xlsx":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'csv', 'xlsx'", format)
	}
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json'", format)
	}
}

// IsValidUserID rejects blank user identifiers.
func IsValidUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user_id is required")
	}
	return nil
}

// ValidatePredictRequest checks the numeric ranges of a forecast request.
func ValidatePredictRequest(req models.PredictRequest) error {
	if err := IsValidUserID(req.UserID); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"monthly_income", req.MonthlyIncome},
		{"monthly_emi_usd", req.MonthlyEMI},
		{"loan_interest_rate_pct", req.LoanInterestRatePct},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
	}
	switch {
	case req.MonthlyIncome < 0:
		return fmt.Errorf("monthly_income must not be negative")
	case req.LoanTermMonths < 0:
		return fmt.Errorf("loan_term_months must not be negative")
	case req.MonthlyEMI < 0:
		return fmt.Errorf("monthly_emi_usd must not be negative")
	case req.LoanInterestRatePct < 0:
		return fmt.Errorf("loan_interest_rate_pct must not be negative")
	case req.CreditScore < 0:
		return fmt.Errorf("credit_score must not be negative")
	}
	return nil
}

