// Package parse implements the statement parsing command
package parse

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
	"fjacquet/finflow/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the parse command flags.
type Options struct {
	Input  string
	Output string
	UserID string
	Store  bool
}

var opts Options

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract transactions from a statement",
	Long: `Extract transactions from a UPI or wallet statement (.pdf or .txt).
Transactions are written as CSV to stdout, or to the --output file (.csv or .xlsx),
and optionally stored for later analysis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Statement file (.pdf or .txt)")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (.csv or .xlsx), stdout when empty")
	Cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "User the transactions belong to")
	Cmd.Flags().BoolVar(&opts.Store, "store", false, "Store the transactions in the configured database")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("user")
}

// Run parses the statement named by o.Input and exports its transactions.
func Run(ctx context.Context, c *container.Container, o Options, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if err := validation.IsValidStatementFile(o.Input); err != nil {
		return err
	}
	if o.Output != "" {
		if err := validation.IsValidOutputFormat(fileutils.Extension(o.Output)); err != nil {
			return err
		}
	}

	logger := c.GetLogger().WithFields(
		logging.F(logging.FieldFile, o.Input),
		logging.F(logging.FieldUserID, o.UserID),
	)

	file, err := os.Open(o.Input) // #nosec G304 -- CLI input path
	if err != nil {
		return fmt.Errorf("error opening statement: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	svc := c.GetService()
	result, err := svc.ParseStatement(ctx, o.UserID, file, fileutils.Extension(o.Input))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", o.Input, err)
	}

	for reason, n := range result.RejectionCounts() {
		logger.Debug("Rejected blocks",
			logging.F(logging.FieldReason, string(reason)),
			logging.F(logging.FieldCount, n))
	}
	logger.Info("Parsed statement",
		logging.F("blocks", result.Blocks),
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldRejected, len(result.Rejections)))

	if o.Output != "" {
		if err := common.ExportTransactions(result.Transactions, o.Output, c.Delimiter(), logger); err != nil {
			return err
		}
	} else if err := common.WriteTransactionsCSV(out, result.Transactions, c.Delimiter()); err != nil {
		return err
	}

	if o.Store {
		if _, err := svc.Save(ctx, o.UserID, result); err != nil {
			return err
		}
	}
	return nil
}
