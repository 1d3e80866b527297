package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

// AnalyticsRepository serves dashboard aggregates. They cover all of a
// user's transactions and ignore listing filters.
type AnalyticsRepository interface {
	// ExpenseByCategory groups expenses by category name, largest total first.
	// Percentage is left for the caller to compute.
	ExpenseByCategory(ctx context.Context, userID int64) ([]models.CategoryExpense, error)
	// MonthlyTotals returns one entry per month with activity on or after since,
	// oldest first. Only Month, TotalIncome and TotalExpense are set.
	MonthlyTotals(ctx context.Context, userID int64, since time.Time) ([]models.MonthlyTotals, error)
}
