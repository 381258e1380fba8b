// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/finflow/internal/dateutils"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form used for storage and export.
const DateLayout = dateutils.DateLayoutISO

// Transaction is one extracted statement line item. Every field is set when a
// Transaction exists; a block that cannot fill them never produces one.
type Transaction struct {
	UserID      string          `json:"user_id" yaml:"user_id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"` // negative = outflow
	Category    string          `json:"category" yaml:"category"`
}

// IsExpense reports whether the transaction is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Magnitude returns the absolute amount.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// DateString returns the transaction date in DateLayout.
func (t Transaction) DateString() string {
	if t.Date.IsZero() {
		return ""
	}
	return dateutils.ToISODate(t.Date)
}

// Validate checks that every required field is present.
func (t Transaction) Validate() error {
	switch {
	case strings.TrimSpace(t.UserID) == "":
		return fmt.Errorf("transaction user_id is empty")
	case t.Date.IsZero():
		return fmt.Errorf("transaction date is empty")
	case strings.TrimSpace(t.Description) == "":
		return fmt.Errorf("transaction description is empty")
	case strings.TrimSpace(t.Category) == "":
		return fmt.Errorf("transaction category is empty")
	}
	return nil
}

// TransactionRow is the flat CSV shape of a Transaction.
type TransactionRow struct {
	UserID      string `csv:"user_id"`
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
}

// ToRow converts the transaction to its CSV row, amounts fixed at two places.
func (t Transaction) ToRow() TransactionRow {
	return TransactionRow{
		UserID:      t.UserID,
		Date:        t.DateString(),
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Category:    t.Category,
	}
}

// ToTransaction parses a CSV row back into a Transaction.
func (r TransactionRow) ToTransaction() (Transaction, error) {
	date, err := dateutils.ParseISODate(r.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}
	return Transaction{
		UserID:      r.UserID,
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Category:    r.Category,
	}, nil
}

// Expenses returns the outflows of txs, preserving order.
func Expenses(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsExpense() {
			out = append(out, tx)
		}
	}
	return out
}

// TotalExpenses sums the magnitudes of all outflows in txs.
func TotalExpenses(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() {
			total = total.Add(tx.Magnitude())
		}
	}
	return total
}
