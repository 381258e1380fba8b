package store

import (
	"context"
	"fmt"
	"time"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Schema creates the tables used by PostgresStore.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id          BIGSERIAL PRIMARY KEY,
    user_id     TEXT NOT NULL,
    date        DATE NOT NULL,
    description TEXT NOT NULL,
    amount      NUMERIC(14, 2) NOT NULL,
    category    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS transactions_user_date_idx ON transactions (user_id, date);

CREATE TABLE IF NOT EXISTS spending_results (
    user_id                      TEXT PRIMARY KEY,
    monthly_income               DOUBLE PRECISION NOT NULL,
    actual_monthly_expense       DOUBLE PRECISION NOT NULL,
    predicted_next_month_expense DOUBLE PRECISION NOT NULL,
    job_title                    TEXT NOT NULL,
    education_level              TEXT NOT NULL,
    loan_interest_rate_pct       DOUBLE PRECISION NOT NULL,
    suggestion                   TEXT NOT NULL,
    savings_rate                 DOUBLE PRECISION NOT NULL,
    calculation_date             TIMESTAMPTZ NOT NULL
);`

var transactionColumns = []string{"user_id", "date", "description", "amount", "category"}

const upsertResultSQL = `
INSERT INTO spending_results (
    user_id, monthly_income, actual_monthly_expense, predicted_next_month_expense,
    job_title, education_level, loan_interest_rate_pct, suggestion, savings_rate, calculation_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
    monthly_income = EXCLUDED.monthly_income,
    actual_monthly_expense = EXCLUDED.actual_monthly_expense,
    predicted_next_month_expense = EXCLUDED.predicted_next_month_expense,
    job_title = EXCLUDED.job_title,
    education_level = EXCLUDED.education_level,
    loan_interest_rate_pct = EXCLUDED.loan_interest_rate_pct,
    suggestion = EXCLUDED.suggestion,
    savings_rate = EXCLUDED.savings_rate,
    calculation_date = EXCLUDED.calculation_date`

const selectTransactionsSQL = `
SELECT user_id, date, description, amount::text, category
FROM transactions
WHERE user_id = $1
ORDER BY date, id`

// pool is the subset of *pgxpool.Pool used by PostgresStore.
type pool interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PostgresStore persists to PostgreSQL through a pgx connection pool.
type PostgresStore struct {
	pool   pool
	logger logging.Logger
}

// NewPostgresStore connects to databaseURL and verifies the connection.
func NewPostgresStore(ctx context.Context, databaseURL string, maxConns int, logger logging.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return newPostgresStore(p, logger), nil
}

func newPostgresStore(p pool, logger logging.Logger) *PostgresStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PostgresStore{pool: p, logger: logger}
}

// EnsureSchema creates missing tables.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertTransactions bulk-loads txs with COPY.
func (s *PostgresStore) InsertTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(txs))
	for _, tx := range txs {
		var amount pgtype.Numeric
		if err := amount.Scan(tx.Amount.String()); err != nil {
			return fmt.Errorf("failed to encode amount %s: %w", tx.Amount, err)
		}
		rows = append(rows, []any{tx.UserID, tx.Date, tx.Description, amount, tx.Category})
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"transactions"}, transactionColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to insert transactions: %w", err)
	}
	s.logger.Debug("Inserted transactions", logging.F(logging.FieldCount, n))
	return nil
}

// UpsertResult inserts or replaces the analysis row for the user.
func (s *PostgresStore) UpsertResult(ctx context.Context, r models.SpendingResult) error {
	calculated := r.CalculationDate
	if calculated.IsZero() {
		calculated = time.Now()
	}
	_, err := s.pool.Exec(ctx, upsertResultSQL,
		r.UserID, r.MonthlyIncome, r.ActualMonthlyExpense, r.PredictedNextMonthExpense,
		r.JobTitle, r.EducationLevel, r.LoanInterestRatePct, r.Suggestion, r.SavingsRate, calculated)
	if err != nil {
		return fmt.Errorf("failed to upsert spending result: %w", err)
	}
	return nil
}

// TransactionsForUser loads the user's transactions ordered by date.
func (s *PostgresStore) TransactionsForUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, selectTransactionsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var (
			tx     models.Transaction
			amount string
		)
		if err := rows.Scan(&tx.UserID, &tx.Date, &tx.Description, &amount, &tx.Category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return out, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
