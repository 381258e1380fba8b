// Package common provides transaction import and export shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// ParseDelimiter converts a configured delimiter such as "," ";" or "\t"
// into a rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return DefaultDelimiter, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid CSV delimiter %q", s)
	}
	return r, nil
}

// ReadCSV decodes delimited rows from r into TCSVRow structs using their csv tags.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	return rows, nil
}

// ReadTransactionsCSV reads transactions written by WriteTransactionsCSV.
func ReadTransactionsCSV(r io.Reader, delimiter rune) ([]models.Transaction, error) {
	rows, err := ReadCSV[models.TransactionRow](r, delimiter)
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.ToTransaction()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactionsCSV writes txs with a header row.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction, delimiter rune) error {
	rows := make([]models.TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, tx.ToRow())
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteTransactionsToCSV writes txs to csvFile, creating parent directories.
func WriteTransactionsToCSV(txs []models.Transaction, csvFile string, delimiter rune, logger logging.Logger) error {
	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI output path
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, csvFile))
		}
	}()

	if err := WriteTransactionsCSV(file, txs, delimiter); err != nil {
		return err
	}

	logger.Info("Wrote transactions to CSV file",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(txs)),
		logging.F("delimiter", string(delimiter)))
	return nil
}
