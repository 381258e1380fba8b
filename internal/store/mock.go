package store

import (
	"context"

	"fjacquet/finflow/internal/models"
)

// MockStore is an in-memory Store whose operations can be made to fail.
type MockStore struct {
	*MemoryStore

	InsertError error
	UpsertError error
	QueryError  error
}

// NewMockStore returns a MockStore with no configured failures.
func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: NewMemoryStore()}
}

func (m *MockStore) InsertTransactions(ctx context.Context, txs []models.Transaction) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	return m.MemoryStore.InsertTransactions(ctx, txs)
}

func (m *MockStore) UpsertResult(ctx context.Context, result models.SpendingResult) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	return m.MemoryStore.UpsertResult(ctx, result)
}

func (m *MockStore) TransactionsForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	return m.MemoryStore.TransactionsForUser(ctx, userID)
}
