package common

import (
	"fmt"
	"os"

	"fjacquet/finflow/internal/fileutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
)

// ExportTransactions writes txs to path in the format given by its extension.
func ExportTransactions(txs []models.Transaction, path string, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	switch fileutils.Extension(path) {
	case "csv":
		return WriteTransactionsToCSV(txs, path, delimiter, logger)
	case "xlsx":
		return WriteTransactionsToXLSX(txs, path, logger)
	default:
		return fmt.Errorf("unsupported export file %s: expected .csv or .xlsx", path)
	}
}

// ImportTransactions reads transactions previously exported to path.
func ImportTransactions(path string, delimiter rune) ([]models.Transaction, error) {
	switch fileutils.Extension(path) {
	case "csv":
		file, err := os.Open(path) // #nosec G304 -- CLI input path
		if err != nil {
			return nil, fmt.Errorf("error opening CSV file: %w", err)
		}
		defer func() { _ = file.Close() }()
		return ReadTransactionsCSV(file, delimiter)
	case "xlsx":
		return ReadTransactionsXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported import file %s: expected .csv or .xlsx", path)
	}
}
