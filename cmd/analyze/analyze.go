// Package analyze implements the spending analysis command
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/finflow/cmd/root"
	"fjacquet/finflow/internal/common"
	"fjacquet/finflow/internal/container"
	"fjacquet/finflow/internal/fileutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/report"
	"fjacquet/finflow/internal/service"
	"fjacquet/finflow/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the analyze command flags.
type Options struct {
	// From names a transactions export (.csv, .xlsx) or a statement (.pdf, .txt)
	// to analyze instead of the stored history.
	From    string
	Format  string
	Output  string
	Request models.PredictRequest
}

var opts = Options{Format: report.FormatText, Request: models.NewPredictRequest("")}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a user's spending",
	Long: `Analyze a user's transactions: monthly expense, savings rate, anomaly alerts,
suggestions and a next-month forecast. Uses the stored history unless --from is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), opts, cmd.OutOrStdout())
	},
}

func init() {
	f := Cmd.Flags()
	f.StringVarP(&opts.Request.UserID, "user", "u", "", "User to analyze")
	f.Float64Var(&opts.Request.MonthlyIncome, "income", 0, "Monthly income")
	f.StringVar(&opts.Request.JobTitle, "job", "", "Job title")
	f.StringVar(&opts.Request.Education, "education", "", "Education level")
	f.StringVar(&opts.Request.Employment, "employment", "", "Employment status")
	f.StringVar(&opts.Request.HasLoan, "has-loan", "", "Whether the user has a loan (Yes/No)")
	f.StringVar(&opts.Request.LoanType, "loan-type", opts.Request.LoanType, "Loan type")
	f.IntVar(&opts.Request.LoanTermMonths, "loan-term", 0, "Loan term in months")
	f.Float64Var(&opts.Request.MonthlyEMI, "emi", 0, "Monthly loan installment")
	f.Float64Var(&opts.Request.LoanInterestRatePct, "loan-rate", 0, "Loan interest rate in percent")
	f.IntVar(&opts.Request.CreditScore, "credit-score", opts.Request.CreditScore, "Credit score")
	f.StringVar(&opts.From, "from", "", "Analyze this file (.csv, .xlsx, .pdf, .txt) instead of the stored history")
	f.StringVarP(&opts.Format, "format", "f", opts.Format, "Report format (text, json)")
	f.StringVarP(&opts.Output, "output", "o", "", "Report file, stdout when empty")
	_ = Cmd.MarkFlagRequired("user")
	_ = Cmd.MarkFlagRequired("income")
}

// Run analyzes the requested user's spending and writes the report.
func Run(ctx context.Context, c *container.Container, o Options, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if err := validation.IsValidReportFormat(o.Format); err != nil {
		return err
	}

	var (
		resp models.PredictResponse
		txs  []models.Transaction
		err  error
	)
	if o.From != "" {
		resp, txs, err = analyzeFile(ctx, c, o)
	} else {
		resp, txs, err = analyzeHistory(ctx, c, o.Request)
	}
	if err != nil {
		return err
	}

	data, err := c.GetReportGenerator().GenerateReport(report.NewReport(o.Request, txs, resp), o.Format)
	if err != nil {
		return err
	}

	if o.Output == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(o.Output, data, 0600); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	c.GetLogger().Info("Report written", logging.F(logging.FieldOutputFile, o.Output))
	return nil
}

// analyzeHistory runs the stored-history analysis, which also records the result.
func analyzeHistory(ctx context.Context, c *container.Container, req models.PredictRequest) (models.PredictResponse, []models.Transaction, error) {
	resp, err := c.GetService().Analyze(ctx, req)
	if err != nil {
		return resp, nil, err
	}
	txs, err := c.GetStore().TransactionsForUser(ctx, req.UserID)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return resp, txs, nil
}

func analyzeFile(ctx context.Context, c *container.Container, o Options) (models.PredictResponse, []models.Transaction, error) {
	if err := validation.ValidatePredictRequest(o.Request); err != nil {
		return models.PredictResponse{}, nil, err
	}

	txs, err := loadTransactions(ctx, c, o)
	if err != nil {
		return models.PredictResponse{}, nil, err
	}
	if len(txs) == 0 {
		return models.PredictResponse{}, nil, service.ErrNoHistory
	}

	resp, _ := c.GetService().AnalyzeTransactions(ctx, o.Request, txs)
	return resp, txs, nil
}

func loadTransactions(ctx context.Context, c *container.Container, o Options) ([]models.Transaction, error) {
	switch kind := fileutils.Extension(o.From); kind {
	case service.KindPDF, service.KindText:
		file, err := os.Open(o.From) // #nosec G304 -- CLI input path
		if err != nil {
			return nil, fmt.Errorf("error opening statement: %w", err)
		}
		defer func() { _ = file.Close() }()

		result, err := c.GetService().ParseStatement(ctx, o.Request.UserID, file, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", o.From, err)
		}
		return result.Transactions, nil
	default:
		return common.ImportTransactions(o.From, c.Delimiter())
	}
}
