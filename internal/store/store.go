// Package store persists transactions and per-user analysis results, and
// locates the category tag map on disk.
package store

import (
	"context"

	"fjacquet/finflow/internal/models"
)

// Store is the persistence contract used by the ingestion and analysis flows.
type Store interface {
	// InsertTransactions appends txs. An empty slice is a no-op.
	InsertTransactions(ctx context.Context, txs []models.Transaction) error

	// UpsertResult replaces the stored result for result.UserID.
	UpsertResult(ctx context.Context, result models.SpendingResult) error

	// TransactionsForUser returns the user's transactions ordered by date.
	TransactionsForUser(ctx context.Context, userID string) ([]models.Transaction, error)
}
