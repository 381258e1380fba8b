package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/finflow/internal/dateutils"
	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(date time.Time, desc string, amount int64) models.Transaction {
	return models.Transaction{UserID: "u1", Date: date, Description: desc, Amount: decimal.NewFromInt(amount)}
}

func TestFindStatements(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.PDF", "notes.md", "c.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0750))

	files, err := FindStatements(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.txt")}, files)

	_, err = FindStatements(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestAggregator_Aggregate(t *testing.T) {
	logger := logging.NewMockLogger()
	parsed := map[string][]models.Transaction{
		"feb.txt": {tx(day(time.February, 3), "Swiggy", -300), tx(day(time.January, 30), "Zomato", -120)},
		"jan.txt": {tx(day(time.January, 30), "zomato ", -120), tx(day(time.January, 2), "Infosys", 50000)},
	}
	parse := func(_ context.Context, path string) ([]models.Transaction, error) {
		txs, ok := parsed[path]
		if !ok {
			return nil, errors.New("unreadable")
		}
		return txs, nil
	}

	summary, err := NewAggregator(logger).Aggregate(context.Background(), "u1",
		[]string{"feb.txt", "broken.pdf", "jan.txt"}, parse)
	require.NoError(t, err)

	require.Len(t, summary.Transactions, 4)
	assert.Equal(t, "Infosys", summary.Transactions[0].Description)
	assert.Equal(t, "Swiggy", summary.Transactions[3].Description)
	assert.Equal(t, []string{"feb.txt", "jan.txt"}, summary.Sources)
	assert.Equal(t, []string{"broken.pdf"}, summary.Failed)
	assert.Equal(t, dateutils.DateRange{Start: day(time.January, 2), End: day(time.February, 3)}, summary.Range)
	assert.Equal(t, 1, summary.Duplicates)
	assert.True(t, logger.HasEntry("WARN", "Potential duplicate transaction"))
	assert.True(t, logger.HasEntry("ERROR", "Failed to parse file"))
}

func TestAggregator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(nil).Aggregate(ctx, "u1", []string{"a.txt"},
		func(context.Context, string) ([]models.Transaction, error) { return nil, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputFilename(t *testing.T) {
	dr := dateutils.DateRange{Start: day(time.January, 2), End: day(time.February, 3)}
	assert.Equal(t, "u1_2025-01-02_2025-02-03.csv", OutputFilename("u1", dr, "csv"))
	assert.Equal(t, "john_doe_x.xlsx", OutputFilename(" john doe/x ", dateutils.DateRange{}, "xlsx"))
}
