// Package batch consolidates the transactions of several statements of one user
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/finflow/internal/analysis"
	"fjacquet/finflow/internal/dateutils"
	"fjacquet/finflow/internal/fileutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
)

// ParseFunc extracts the transactions of one statement file.
type ParseFunc func(ctx context.Context, path string) ([]models.Transaction, error)

// Summary is the outcome of aggregating a set of statements.
type Summary struct {
	UserID       string
	Transactions []models.Transaction
	Sources      []string
	Failed       []string
	Range        dateutils.DateRange // zero when no transaction is dated
	Duplicates   int
}

// Aggregator merges the statements of a user into one chronological history.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Aggregator{logger: logger}
}

// FindStatements lists the .pdf and .txt files directly inside dir, sorted by name.
func FindStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch fileutils.Extension(entry.Name()) {
		case "pdf", "txt":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Aggregate parses every file with parse. Files that fail are skipped and
// reported in Summary.Failed; only context cancellation aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, userID string, files []string, parse ParseFunc) (Summary, error) {
	summary := Summary{UserID: userID}
	log := a.logger.WithField(logging.FieldUserID, userID)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		txs, err := parse(ctx, file)
		if err != nil {
			log.WithError(err).Error("Failed to parse file", logging.F(logging.FieldFile, file))
			summary.Failed = append(summary.Failed, filepath.Base(file))
			continue
		}

		log.Debug("Loaded transactions from file",
			logging.F(logging.FieldFile, filepath.Base(file)),
			logging.F(logging.FieldCount, len(txs)))
		summary.Transactions = append(summary.Transactions, txs...)
		summary.Sources = append(summary.Sources, filepath.Base(file))
	}

	sortChronologically(summary.Transactions)
	summary.Range, _ = analysis.Span(summary.Transactions)
	summary.Duplicates = a.logDuplicates(summary.Transactions, userID)

	log.Info("Aggregated statements",
		logging.F(logging.FieldCount, len(summary.Transactions)),
		logging.F("source_files", strings.Join(summary.Sources, ", ")),
		logging.F("failed_files", len(summary.Failed)))
	return summary, nil
}

// sortChronologically orders by date, then amount for a stable presentation.
func sortChronologically(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].Amount.LessThan(txs[j].Amount)
	})
}

// logDuplicates warns about transactions that look repeated across
// overlapping statements. They are kept; the count is returned.
func (a *Aggregator) logDuplicates(txs []models.Transaction, userID string) int {
	count := 0
	for i := 0; i < len(txs)-1; i++ {
		for j := i + 1; j < len(txs) && txs[j].Date.Equal(txs[i].Date); j++ {
			if !potentialDuplicates(txs[i], txs[j]) {
				continue
			}
			count++
			a.logger.Warn("Potential duplicate transaction",
				logging.F(logging.FieldUserID, userID),
				logging.F("date", txs[i].DateString()),
				logging.F("amount", txs[i].Amount.StringFixed(2)),
				logging.F("description", txs[i].Description))
			break
		}
	}
	return count
}

func potentialDuplicates(tx1, tx2 models.Transaction) bool {
	return tx1.Date.Equal(tx2.Date) &&
		tx1.Amount.Equal(tx2.Amount) &&
		strings.EqualFold(strings.TrimSpace(tx1.Description), strings.TrimSpace(tx2.Description))
}

// OutputFilename names the consolidated export: {user}_{start}_{end}.{ext},
// or {user}.{ext} when the range is empty.
func OutputFilename(userID string, dr dateutils.DateRange, ext string) string {
	name := sanitize(userID)
	if !dr.Start.IsZero() && !dr.End.IsZero() {
		name += "_" + dateutils.ToISODate(dr.Start) + "_" + dateutils.ToISODate(dr.End)
	}
	return name + "." + ext
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
}
