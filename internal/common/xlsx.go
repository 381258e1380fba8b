package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// TransactionsSheet is the worksheet holding exported transactions.
const TransactionsSheet = "Transactions"

var xlsxHeader = []any{"user_id", "date", "description", "amount", "category"}

// WriteTransactionsToXLSX writes txs to a single-sheet workbook. Amounts are
// stored as numbers with two decimals.
func WriteTransactionsToXLSX(txs []models.Transaction, xlsxFile string, logger logging.Logger) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}
	if err := f.SetSheetRow(TransactionsSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("error creating amount style: %w", err)
	}

	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{tx.UserID, tx.DateString(), tx.Description, tx.Amount.Round(2).InexactFloat64(), tx.Category}
		if err := f.SetSheetRow(TransactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}
	if len(txs) > 0 {
		last := fmt.Sprintf("D%d", len(txs)+1)
		if err := f.SetCellStyle(TransactionsSheet, "D2", last, amountStyle); err != nil {
			return fmt.Errorf("error styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(TransactionsSheet, "C", "C", 40); err != nil {
		return fmt.Errorf("error sizing columns: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(xlsxFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := f.SaveAs(xlsxFile); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	logger.Info("Wrote transactions to XLSX file",
		logging.F(logging.FieldFile, xlsxFile), logging.F(logging.FieldCount, len(txs)))
	return nil
}

// ReadTransactionsXLSX reads the sheet written by WriteTransactionsToXLSX.
func ReadTransactionsXLSX(xlsxFile string) ([]models.Transaction, error) {
	f, err := excelize.OpenFile(xlsxFile)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(TransactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", TransactionsSheet, err)
	}

	var txs []models.Transaction
	for i, cells := range rows {
		if i == 0 || len(cells) == 0 {
			continue
		}
		for len(cells) < len(xlsxHeader) {
			cells = append(cells, "")
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(cells[3], ",", ""))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", i+1, cells[3], err)
		}
		tx, err := models.TransactionRow{
			UserID:      cells[0],
			Date:        cells[1],
			Description: cells[2],
			Amount:      amount.String(),
			Category:    cells[4],
		}.ToTransaction()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
