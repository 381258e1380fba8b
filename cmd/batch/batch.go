// Package batch handles consolidating a directory of statements
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/finflow/cmd/root"
	"fjacquet/finflow/internal/batch"
	"fjacquet/finflow/internal/common"
	"fjacquet/finflow/internal/container"
	"fjacquet/finflow/internal/fileutils"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
	"fjacquet/finflow/internal/statement"
	"fjacquet/finflow/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the batch command flags.
type Options struct {
	InputDir  string
	OutputDir string
	UserID    string
	Format    string
	Store     bool
}

var opts = Options{Format: "csv"}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Consolidate a directory of statements",
	Long: `Parse every .pdf and .txt statement in a directory and write one consolidated,
chronological export for the user.

Example:
  finflow batch -i statements/ -o exports/ -u alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.InputDir, "input", "i", "", "Directory of statements")
	Cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", ".", "Directory for the consolidated export")
	Cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "User the statements belong to")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "Export format (csv, xlsx)")
	Cmd.Flags().BoolVar(&opts.Store, "store", false, "Store the consolidated transactions")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("user")
}

// Run consolidates the statements in o.InputDir and prints the export path.
func Run(ctx context.Context, c *container.Container, o Options, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if err := validation.IsValidOutputFormat(o.Format); err != nil {
		return err
	}
	if err := validation.IsValidUserID(o.UserID); err != nil {
		return err
	}

	files, err := batch.FindStatements(o.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no statements found in %s", o.InputDir)
	}

	svc := c.GetService()
	parse := func(ctx context.Context, path string) ([]models.Transaction, error) {
		file, err := os.Open(path) // #nosec G304 -- files listed from the input directory
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		result, err := svc.ParseStatement(ctx, o.UserID, file, fileutils.Extension(path))
		if err != nil {
			return nil, err
		}
		return result.Transactions, nil
	}

	summary, err := batch.NewAggregator(c.GetLogger()).Aggregate(ctx, o.UserID, files, parse)
	if err != nil {
		return err
	}
	if len(summary.Transactions) == 0 {
		return parsererror.ErrNoTransactions
	}

	path := filepath.Join(o.OutputDir, batch.OutputFilename(o.UserID, summary.Range, o.Format))
	if err := common.ExportTransactions(summary.Transactions, path, c.Delimiter(), c.GetLogger()); err != nil {
		return err
	}

	if o.Store {
		if _, err := svc.Save(ctx, o.UserID, statement.Result{Transactions: summary.Transactions}); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(out, "%s: %d transactions from %d statements (%d failed, %d potential duplicates)\n",
		path, len(summary.Transactions), len(summary.Sources), len(summary.Failed), summary.Duplicates)
	return err
}
