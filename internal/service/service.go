// Package service implements the statement ingestion and spending analysis
// use cases on top of the parsing, storage, insight and forecast packages.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/finflow/internal/analysis"
	"fjacquet/finflow/internal/currencyutils"
	"fjacquet/finflow/internal/forecast"
	"fjacquet/finflow/internal/insights"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
	"fjacquet/finflow/internal/statement"
	"fjacquet/finflow/internal/store"
	"fjacquet/finflow/internal/validation"
)

// Statement input kinds.
const (
	KindPDF  = "pdf"
	KindText = "txt"
)

// PDFParser parses an uploaded PDF statement.
type PDFParser interface {
	Parse(ctx context.Context, r io.Reader, userID string) (statement.Result, error)
}

// Service wires the collaborators of the two use cases.
type Service struct {
	store      store.Store
	pdf        PDFParser
	text       *statement.Parser
	composer   *insights.Composer
	forecaster *forecast.Forecaster
	logger     logging.Logger
	now        func() time.Time
}

// New creates a Service.
func New(st store.Store, pdf PDFParser, text *statement.Parser, composer *insights.Composer,
	forecaster *forecast.Forecaster, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		store:      st,
		pdf:        pdf,
		text:       text,
		composer:   composer,
		forecaster: forecaster,
		logger:     logger,
		now:        time.Now,
	}
}

// ParseStatement extracts transactions from r, a PDF or plain-text statement.
func (s *Service) ParseStatement(ctx context.Context, userID string, r io.Reader, kind string) (statement.Result, error) {
	if err := validation.IsValidUserID(userID); err != nil {
		return statement.Result{}, &InvalidRequestError{Err: err}
	}

	switch strings.ToLower(kind) {
	case KindPDF:
		return s.pdf.Parse(ctx, r, userID)
	case KindText:
		data, err := io.ReadAll(r)
		if err != nil {
			return statement.Result{}, fmt.Errorf("failed to read statement: %w", err)
		}
		return s.text.Parse(ctx, userID, string(data))
	default:
		return statement.Result{}, &InvalidRequestError{Err: fmt.Errorf("unsupported statement type %q", kind)}
	}
}

// Ingest parses the PDF statement in r and stores its transactions.
func (s *Service) Ingest(ctx context.Context, userID string, r io.Reader) (models.UploadResponse, error) {
	result, err := s.ParseStatement(ctx, userID, r, KindPDF)
	if err != nil {
		return uploadError(err), err
	}
	return s.Save(ctx, userID, result)
}

// Save stores the transactions of a parsed statement. A statement without
// transactions yields parsererror.ErrNoTransactions.
func (s *Service) Save(ctx context.Context, userID string, result statement.Result) (models.UploadResponse, error) {
	log := s.logger.WithField(logging.FieldUserID, userID)

	if len(result.Transactions) == 0 {
		log.Warn("Statement contained no valid transactions",
			logging.F(logging.FieldRejected, len(result.Rejections)))
		return models.UploadResponse{Status: models.StatusError, Message: models.MessageNoTransactions},
			parsererror.ErrNoTransactions
	}

	if err := s.store.InsertTransactions(ctx, result.Transactions); err != nil {
		err = &PersistenceError{Op: "store transactions", Err: err}
		log.WithError(err).Error("Failed to persist statement")
		return uploadError(err), err
	}

	log.Info("Ingested statement", logging.F(logging.FieldCount, len(result.Transactions)))
	return models.UploadResponse{Status: models.StatusSuccess, Count: len(result.Transactions)}, nil
}

func uploadError(err error) models.UploadResponse {
	return models.UploadResponse{Status: models.StatusError, Message: PublicMessage(err)}
}

// Analyze loads the user's history, composes insights, forecasts next month
// and records the outcome.
func (s *Service) Analyze(ctx context.Context, req models.PredictRequest) (models.PredictResponse, error) {
	if err := validation.ValidatePredictRequest(req); err != nil {
		return models.PredictResponse{}, &InvalidRequestError{Err: err}
	}

	txs, err := s.store.TransactionsForUser(ctx, req.UserID)
	if err != nil {
		return models.PredictResponse{}, &PersistenceError{Op: "load transactions", Err: err}
	}
	if len(txs) == 0 {
		return models.PredictResponse{}, ErrNoHistory
	}

	resp, result := s.AnalyzeTransactions(ctx, req, txs)
	if err := s.store.UpsertResult(ctx, result); err != nil {
		err = &PersistenceError{Op: "save analysis", Err: err}
		s.logger.WithError(err).Error("Failed to persist analysis",
			logging.F(logging.FieldUserID, req.UserID))
		return models.PredictResponse{}, err
	}
	return resp, nil
}

// AnalyzeTransactions computes the analysis of txs without touching the store.
func (s *Service) AnalyzeTransactions(ctx context.Context, req models.PredictRequest, txs []models.Transaction) (models.PredictResponse, models.SpendingResult) {
	months := analysis.NumMonths(txs)
	actual := currencyutils.Round2(analysis.MonthlyRate(models.TotalExpenses(txs).InexactFloat64(), months))

	insight := s.composer.Compose(ctx, req.Profile(), txs)

	predicted, source := s.forecaster.Predict(forecast.Encode(req))
	predicted = currencyutils.Round2(predicted)

	profile := req.Profile().WithDefaults()
	result := models.SpendingResult{
		UserID:                    req.UserID,
		MonthlyIncome:             req.MonthlyIncome,
		ActualMonthlyExpense:      actual,
		PredictedNextMonthExpense: predicted,
		JobTitle:                  profile.JobTitle,
		EducationLevel:            profile.EducationLevel,
		LoanInterestRatePct:       req.LoanInterestRatePct,
		Suggestion:                strings.Join(insight.Suggestions, models.SuggestionSeparator),
		SavingsRate:               insight.SavingsRate,
		CalculationDate:           s.now(),
	}

	s.logger.Info("Analyzed spending",
		logging.F(logging.FieldUserID, req.UserID),
		logging.F(logging.FieldMonths, months),
		logging.F(logging.FieldCount, len(txs)),
		logging.F("forecast_source", string(source)),
		logging.F("alerts", len(insight.Alerts)))

	return models.PredictResponse{
		Status:      models.StatusSuccess,
		Prediction:  predicted,
		Actual:      actual,
		Suggestions: insight.Suggestions,
		Alerts:      insight.Alerts,
		SavingsRate: insight.SavingsRate,
	}, result
}
