package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EverythingThatLivesIsGoneToWaste/FinanceApp/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, amount, date, category, description, user_id
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	if err := s.Scan(&tx.ID, &tx.Amount, &tx.Date, &tx.Category, &tx.Description, &tx.UserID); err != nil {
		return nil, err
	}

	return &tx, nil
}

const selectTransactionColumns = `id, amount, date, category, description, user_id`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (amount, date, category, description, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Amount,
		tx.Date,
		tx.Category,
		tx.Description,
		tx.UserID,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int64, q transaction.Query) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1`

	args := []any{userID}
	argIdx := 2

	switch q.Sign {
	case transaction.SignPositive:
		query += " AND amount > 0"
	case transaction.SignNegative:
		query += " AND amount < 0"
	}

	if q.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, q.Category)
		argIdx++
	}

	if q.Year != 0 {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM date) = $%d AND EXTRACT(MONTH FROM date) = $%d", argIdx, argIdx+1)

		args = append(args, q.Year, int(q.Month))
	}

	query += " ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) SumAmount(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`

	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing amounts: %w", err)
	}

	return sum, nil
}

func (s *Store) SumByCategory(ctx context.Context, userID int64, sign transaction.Sign) ([]transaction.CategorySum, error) {
	cmp := ">"
	if sign == transaction.SignNegative {
		cmp = "<"
	}

	query := fmt.Sprintf(`
		SELECT category, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND amount %s 0
		GROUP BY category
		ORDER BY category
	`, cmp)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("summing by category: %w", err)
	}
	defer rows.Close()

	var sums []transaction.CategorySum

	for rows.Next() {
		var cs transaction.CategorySum
		if err := rows.Scan(&cs.Category, &cs.Total); err != nil {
			return nil, fmt.Errorf("scanning category sum: %w", err)
		}

		sums = append(sums, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category sums: %w", err)
	}

	return sums, nil
}

func (s *Store) SumByMonth(ctx context.Context, userID int64) ([]transaction.MonthSum, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM date)::int,
			EXTRACT(MONTH FROM date)::int,
			COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0),
			COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0),
			SUM(amount)
		FROM transactions
		WHERE user_id = $1
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("summing by month: %w", err)
	}
	defer rows.Close()

	var sums []transaction.MonthSum

	for rows.Next() {
		var (
			ms    transaction.MonthSum
			month int
		)

		if err := rows.Scan(&ms.Year, &month, &ms.Income, &ms.Expenses, &ms.Total); err != nil {
			return nil, fmt.Errorf("scanning month sum: %w", err)
		}

		ms.Month = time.Month(month)
		sums = append(sums, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating month sums: %w", err)
	}

	return sums, nil
}
