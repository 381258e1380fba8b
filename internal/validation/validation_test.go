package validation_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatementFile(t *testing.T) {
	tmpDir := t.TempDir()

	pdf := filepath.Join(tmpDir, "statement.pdf")
	txt := filepath.Join(tmpDir, "statement.TXT")
	csv := filepath.Join(tmpDir, "statement.csv")
	for _, f := range []string{pdf, txt, csv} {
		assert.NoError(t, os.WriteFile(f, []byte("x"), 0600))
	}

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{name: "pdf", path: pdf},
		{name: "upper-case txt", path: txt},
		{name: "csv rejected", path: csv, expectError: true, errContains: "unsupported statement file"},
		{name: "missing", path: filepath.Join(tmpDir, "none.pdf"), expectError: true, errContains: "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidStatementFile(tt.path)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.NoError(t, validation.IsValidOutputFormat("csv"))
	assert.NoError(t, validation.IsValidOutputFormat("xlsx"))
	assert.Error(t, validation.IsValidOutputFormat("xml"))

	assert.NoError(t, validation.IsValidReportFormat("json"))
	assert.NoError(t, validation.IsValidReportFormat("text"))
	assert.Error(t, validation.IsValidReportFormat("html"))
}

func TestValidatePredictRequest(t *testing.T) {
	valid := models.NewPredictRequest("u1")
	valid.MonthlyIncome = 50000

	tests := []struct {
		name    string
		mutate  func(*models.PredictRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*models.PredictRequest) {}},
		{name: "zero income allowed", mutate: func(r *models.PredictRequest) { r.MonthlyIncome = 0 }},
		{name: "blank user", mutate: func(r *models.PredictRequest) { r.UserID = "  " }, wantErr: true},
		{name: "negative income", mutate: func(r *models.PredictRequest) { r.MonthlyIncome = -1 }, wantErr: true},
		{name: "negative emi", mutate: func(r *models.PredictRequest) { r.MonthlyEMI = -1 }, wantErr: true},
		{name: "negative term", mutate: func(r *models.PredictRequest) { r.LoanTermMonths = -3 }, wantErr: true},
		{name: "NaN income", mutate: func(r *models.PredictRequest) { r.MonthlyIncome = math.NaN() }, wantErr: true},
		{name: "infinite income", mutate: func(r *models.PredictRequest) { r.MonthlyIncome = math.Inf(1) }, wantErr: true},
		{name: "NaN emi", mutate: func(r *models.PredictRequest) { r.MonthlyEMI = math.NaN() }, wantErr: true},
		{name: "infinite rate", mutate: func(r *models.PredictRequest) { r.LoanInterestRatePct = math.Inf(-1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validation.ValidatePredictRequest(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
