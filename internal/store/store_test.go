package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fjacquet/finflow/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func txn(user string, d int, amount, description string) models.Transaction {
	return models.Transaction{
		UserID:      user,
		Date:        day(d),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    models.CategoryMiscellaneous,
	}
}

func TestMemoryStore_TransactionsOrderedByDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.InsertTransactions(ctx, []models.Transaction{
		txn("u1", 10, "-100", "Swiggy"),
		txn("u2", 1, "-50", "Uber"),
	}))
	require.NoError(t, s.InsertTransactions(ctx, []models.Transaction{
		txn("u1", 2, "5000", "Salary"),
	}))

	got, err := s.TransactionsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Salary", got[0].Description)
	assert.Equal(t, "Swiggy", got[1].Description)

	none, err := s.TransactionsForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_UpsertReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertResult(ctx, models.SpendingResult{UserID: "u1", SavingsRate: 10}))
	require.NoError(t, s.UpsertResult(ctx, models.SpendingResult{UserID: "u1", SavingsRate: 25}))

	r, ok := s.Result("u1")
	require.True(t, ok)
	assert.Equal(t, 25.0, r.SavingsRate)

	_, ok = s.Result("u2")
	assert.False(t, ok)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			_ = s.InsertTransactions(ctx, []models.Transaction{txn("u1", d, "-1", "Tea")})
		}(i)
	}
	wg.Wait()

	got, err := s.TransactionsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryStore().InsertTransactions(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockStore_Errors(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockStore()
	m.InsertError = boom
	m.UpsertError = boom
	m.QueryError = boom
	ctx := context.Background()

	assert.ErrorIs(t, m.InsertTransactions(ctx, nil), boom)
	assert.ErrorIs(t, m.UpsertResult(ctx, models.SpendingResult{}), boom)
	_, err := m.TransactionsForUser(ctx, "u1")
	assert.ErrorIs(t, err, boom)
}

// fakePool records calls in place of a pgx pool.
type fakePool struct {
	copyTable   pgx.Identifier
	copyColumns []string
	copied      [][]any
	copyErr     error

	execSQL  []string
	execArgs [][]any
	execErr  error

	querySQL  string
	queryArgs []any
	rows      *fakeRows
	queryErr  error

	closed bool
}

func (p *fakePool) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if p.copyErr != nil {
		return 0, p.copyErr
	}
	p.copyTable = table
	p.copyColumns = columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		p.copied = append(p.copied, values)
	}
	return int64(len(p.copied)), src.Err()
}

func (p *fakePool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = append(p.execSQL, sql)
	p.execArgs = append(p.execArgs, args)
	return pgconn.NewCommandTag("INSERT 0 1"), p.execErr
}

func (p *fakePool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.querySQL = sql
	p.queryArgs = args
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	return p.rows, nil
}

func (p *fakePool) Close() { p.closed = true }

// fakeRows yields fixed rows of (user_id, date, description, amount, category).
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *time.Time:
			*p = row[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestPostgresStore_InsertTransactions(t *testing.T) {
	p := &fakePool{}
	s := newPostgresStore(p, nil)

	err := s.InsertTransactions(context.Background(), []models.Transaction{
		txn("u1", 4, "-250.50", "Swiggy"),
		txn("u1", 5, "1000", "Salary"),
	})
	require.NoError(t, err)

	assert.Equal(t, pgx.Identifier{"transactions"}, p.copyTable)
	assert.Equal(t, []string{"user_id", "date", "description", "amount", "category"}, p.copyColumns)
	require.Len(t, p.copied, 2)
	assert.Equal(t, "u1", p.copied[0][0])
	assert.Equal(t, day(4), p.copied[0][1])
	assert.Equal(t, "Swiggy", p.copied[0][2])

	amount, ok := p.copied[0][3].(pgtype.Numeric)
	require.True(t, ok)
	f, err := amount.Float64Value()
	require.NoError(t, err)
	assert.InDelta(t, -250.50, f.Float64, 1e-9)
}

func TestPostgresStore_InsertEmptyIsNoop(t *testing.T) {
	p := &fakePool{copyErr: errors.New("should not be called")}
	s := newPostgresStore(p, nil)
	assert.NoError(t, s.InsertTransactions(context.Background(), nil))
}

func TestPostgresStore_InsertError(t *testing.T) {
	p := &fakePool{copyErr: errors.New("connection reset")}
	s := newPostgresStore(p, nil)

	err := s.InsertTransactions(context.Background(), []models.Transaction{txn("u1", 1, "-1", "Tea")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert transactions")
}

func TestPostgresStore_UpsertResult(t *testing.T) {
	p := &fakePool{}
	s := newPostgresStore(p, nil)
	calculated := time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)

	err := s.UpsertResult(context.Background(), models.SpendingResult{
		UserID:                    "u1",
		MonthlyIncome:             50000,
		ActualMonthlyExpense:      21000.5,
		PredictedNextMonthExpense: 35000,
		JobTitle:                  "Teacher",
		EducationLevel:            "Master's",
		Suggestion:                "a | b",
		SavingsRate:               58,
		CalculationDate:           calculated,
	})
	require.NoError(t, err)

	require.Len(t, p.execSQL, 1)
	assert.Contains(t, p.execSQL[0], "ON CONFLICT (user_id) DO UPDATE")
	args := p.execArgs[0]
	require.Len(t, args, 10)
	assert.Equal(t, "u1", args[0])
	assert.Equal(t, 21000.5, args[2])
	assert.Equal(t, "a | b", args[7])
	assert.Equal(t, calculated, args[9])
}

func TestPostgresStore_UpsertDefaultsCalculationDate(t *testing.T) {
	p := &fakePool{}
	s := newPostgresStore(p, nil)

	require.NoError(t, s.UpsertResult(context.Background(), models.SpendingResult{UserID: "u1"}))
	calculated, ok := p.execArgs[0][9].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), calculated, time.Minute)
}

func TestPostgresStore_TransactionsForUser(t *testing.T) {
	rows := &fakeRows{data: [][]any{
		{"u1", day(1), "Salary", "50000.00", "Money Received"},
		{"u1", day(3), "Swiggy", "-250.00", "Food"},
	}}
	p := &fakePool{rows: rows}
	s := newPostgresStore(p, nil)

	got, err := s.TransactionsForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []any{"u1"}, p.queryArgs)
	assert.True(t, strings.Contains(p.querySQL, "ORDER BY date"))
	assert.True(t, decimal.RequireFromString("-250").Equal(got[1].Amount))
	assert.Equal(t, "Food", got[1].Category)
	assert.True(t, rows.closed)
}

func TestPostgresStore_TransactionsForUserErrors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		s := newPostgresStore(&fakePool{queryErr: errors.New("down")}, nil)
		_, err := s.TransactionsForUser(context.Background(), "u1")
		assert.Error(t, err)
	})
	t.Run("bad amount", func(t *testing.T) {
		rows := &fakeRows{data: [][]any{{"u1", day(1), "X", "NaN?", "Food"}}}
		s := newPostgresStore(&fakePool{rows: rows}, nil)
		_, err := s.TransactionsForUser(context.Background(), "u1")
		assert.Error(t, err)
	})
	t.Run("iteration", func(t *testing.T) {
		rows := &fakeRows{err: errors.New("broken pipe")}
		s := newPostgresStore(&fakePool{rows: rows}, nil)
		_, err := s.TransactionsForUser(context.Background(), "u1")
		assert.Error(t, err)
	})
}

func TestPostgresStore_EnsureSchemaAndClose(t *testing.T) {
	p := &fakePool{}
	s := newPostgresStore(p, nil)

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.Contains(t, p.execSQL[0], "CREATE TABLE IF NOT EXISTS spending_results")

	s.Close()
	assert.True(t, p.closed)
}

func TestNewPostgresStore_InvalidURL(t *testing.T) {
	_, err := NewPostgresStore(context.Background(), "://not a url", 4, nil)
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestCategoryStore_LoadTagMappings(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr bool
	}{
		{name: "bare mapping", content: "Groceries: Food\nCab: Travel\n", want: map[string]string{"Groceries": "Food", "Cab": "Travel"}},
		{name: "tags key", content: "tags:\n  Medical: Healthcare\n", want: map[string]string{"Medical": "Healthcare"}},
		{name: "empty file", content: "", want: map[string]string{}},
		{name: "malformed", content: "{malformed: yaml: content}", wantErr: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)

			got, err := NewCategoryStore(path, nil).LoadTagMappings()
			if tt.wantErr {
				assert.Error(t, err, "case %d", i)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryStore_MissingFile(t *testing.T) {
	got, err := NewCategoryStore(filepath.Join(t.TempDir(), "missing.yaml"), nil).LoadTagMappings()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCategoryStore_FindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("config", 0o755))
	writeFile(t, filepath.Join("config", "tags.yaml"), "A: B\n")

	s := NewCategoryStore("", nil)
	path, err := s.FindConfigFile("tags.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "tags.yaml"), path)

	_, err = s.FindConfigFile(filepath.Join(dir, "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
