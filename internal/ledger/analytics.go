package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

const (
	trendMonths = 12
	topExpenses = 5
)

var hundred = decimal.NewFromInt(100)

// ExpenseByCategory breaks down all of the user's expenses by category,
// with each share of the total as a percentage rounded to two places.
func (s *Service) ExpenseByCategory(ctx context.Context, userID int64) ([]models.CategoryExpense, error) {
	list, err := s.analytics.ExpenseByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("expense by category: %w", err)
	}

	total := decimal.Zero
	for _, ce := range list {
		total = total.Add(ce.Total)
	}
	if total.IsZero() {
		return list, nil
	}
	for i := range list {
		list[i].Percentage = list[i].Total.Mul(hundred).Div(total).Round(2)
	}
	return list, nil
}

// MonthlyComparison returns income against expense for the twelve calendar
// months ending with the current one, oldest first. Months without
// activity are present with zero totals.
func (s *Service) MonthlyComparison(ctx context.Context, userID int64) ([]models.MonthlyTotals, error) {
	now := s.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).AddDate(0, -(trendMonths - 1), 0)

	found, err := s.analytics.MonthlyTotals(ctx, userID, first)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	byMonth := make(map[string]models.MonthlyTotals, len(found))
	for _, m := range found {
		byMonth[m.Month] = m
	}

	months := make([]models.MonthlyTotals, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		m := byMonth[key]
		m.Month = key
		m.MonthLabel = month.Format("Jan 2006")
		m.Balance = m.TotalIncome.Sub(m.TotalExpense)
		months = append(months, m)
	}
	return months, nil
}

// TopExpenses returns the user's largest expenses.
func (s *Service) TopExpenses(ctx context.Context, userID int64) ([]models.TransactionRow, error) {
	expense := models.Expense
	f := filter.Spec{
		Kind: &expense,
		Sort: filter.Sort{Column: filter.SortAmount, Order: filter.Desc},
	}
	rows, err := s.transactions.List(ctx, userID, f, repo.Window{Limit: topExpenses})
	if err != nil {
		return nil, fmt.Errorf("top expenses: %w", err)
	}
	return rows, nil
}
