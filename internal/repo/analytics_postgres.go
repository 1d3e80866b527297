package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

type PostgresAnalyticsRepository struct {
	db *sql.DB
}

func NewPostgresAnalyticsRepository(db *sql.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) ExpenseByCategory(ctx context.Context, userID int64) ([]models.CategoryExpense, error) {
	query := `
		SELECT COALESCE(c.name, $2) AS category_name, SUM(t.amount) AS total, COUNT(*) AS cnt
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = 'expense'
		GROUP BY 1
		ORDER BY total DESC
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID, models.Uncategorized)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses: %w", err)
	}
	defer rows.Close()

	list := []models.CategoryExpense{}
	for rows.Next() {
		var ce models.CategoryExpense
		if err := rows.Scan(&ce.CategoryName, &ce.Total, &ce.Count); err != nil {
			return nil, err
		}
		list = append(list, ce)
	}
	return list, rows.Err()
}

func (r *PostgresAnalyticsRepository) MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]models.MonthlyTotals, error) {
	query := `
		SELECT to_char(t.transaction_date, 'YYYY-MM') AS month,
			COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0)
		FROM transactions t
		WHERE t.user_id = $1 AND t.transaction_date >= $2::date
		GROUP BY month
		ORDER BY month
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID, since.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to total months: %w", err)
	}
	defer rows.Close()

	list := []models.MonthlyTotals{}
	for rows.Next() {
		var m models.MonthlyTotals
		if err := rows.Scan(&m.Month, &m.TotalIncome, &m.TotalExpense); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
