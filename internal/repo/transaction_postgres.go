package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

const queryTimeout = 3 * time.Second

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresTransactionRepository struct {
	db *sql.DB
	q  querier
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db, q: db}
}

// ReadConsistent runs fn inside a read-only REPEATABLE READ transaction.
func (r *PostgresTransactionRepository) ReadConsistent(ctx context.Context, fn func(TransactionReader) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&PostgresTransactionRepository{db: r.db, q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	query := `INSERT INTO transactions (user_id, amount, type, category_id, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6::date) RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.q.QueryRowContext(ctx, query,
		t.UserID, t.Amount, string(t.Kind), nullableID(t.CategoryID), t.Description, t.Date.Format(models.DateLayout),
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return t, nil
}

func (r *PostgresTransactionRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var owner int64
	err := r.q.QueryRowContext(ctx, `SELECT user_id FROM transactions WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTransactionNotFound
	}
	return owner, err
}

func (r *PostgresTransactionRepository) Update(ctx context.Context, t models.Transaction) error {
	query := `UPDATE transactions
		SET amount = $1, type = $2, category_id = $3, description = $4, transaction_date = $5::date
		WHERE id = $6 AND user_id = $7`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, query,
		t.Amount, string(t.Kind), nullableID(t.CategoryID), t.Description, t.Date.Format(models.DateLayout), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectAffected(res)
}

func (r *PostgresTransactionRepository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectAffected(res)
}

func (r *PostgresTransactionRepository) List(ctx context.Context, userID int64, f filter.Spec, w Window) ([]models.TransactionRow, error) {
	query, args := buildListQuery(userID, f, w)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	list := []models.TransactionRow{}
	for rows.Next() {
		row, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresTransactionRepository) Count(ctx context.Context, userID int64, f filter.Spec) (int, error) {
	query, args := buildCountQuery(userID, f)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

func (r *PostgresTransactionRepository) Summarize(ctx context.Context, userID int64, f filter.Spec) (models.Summary, error) {
	query, args := buildSummaryQuery(userID, f)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s models.Summary
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&s.TotalIncome, &s.TotalExpense); err != nil {
		return models.Summary{}, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransactionRow(s scanner) (models.TransactionRow, error) {
	var (
		row      models.TransactionRow
		kind     string
		category sql.NullInt64
		name     sql.NullString
	)
	err := s.Scan(&row.ID, &row.UserID, &row.Amount, &kind, &category, &row.Description, &row.Date, &row.CreatedAt, &name)
	if err != nil {
		return models.TransactionRow{}, err
	}
	row.Kind = models.Kind(kind)
	if category.Valid {
		row.CategoryID = &category.Int64
	}
	if name.Valid {
		row.CategoryName = &name.String
	}
	return row, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
