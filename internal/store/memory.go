package store

import (
	"context"
	"sort"
	"sync"

	"fjacquet/finflow/internal/models"
)

// MemoryStore keeps everything in process. It is safe for concurrent use.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string][]models.Transaction
	results      map[string]models.SpendingResult
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string][]models.Transaction),
		results:      make(map[string]models.SpendingResult),
	}
}

func (s *MemoryStore) InsertTransactions(ctx context.Context, txs []models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range txs {
		s.transactions[tx.UserID] = append(s.transactions[tx.UserID], tx)
	}
	return nil
}

func (s *MemoryStore) UpsertResult(ctx context.Context, result models.SpendingResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.UserID] = result
	return nil
}

func (s *MemoryStore) TransactionsForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := append([]models.Transaction(nil), s.transactions[userID]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// Result returns the stored result for userID.
func (s *MemoryStore) Result(userID string) (models.SpendingResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[userID]
	return r, ok
}
