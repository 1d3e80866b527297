package repo

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

type InMemoryAnalyticsRepository struct {
	transactions *InMemoryTransactionRepository
}

func NewInMemoryAnalyticsRepository() *InMemoryAnalyticsRepository {
	return &InMemoryAnalyticsRepository{}
}

func (r *InMemoryAnalyticsRepository) SetRepositories(transactions *InMemoryTransactionRepository) {
	r.transactions = transactions
}

func (r *InMemoryAnalyticsRepository) ExpenseByCategory(_ context.Context, userID int64) ([]models.CategoryExpense, error) {
	expense := models.Expense
	byName := map[string]*models.CategoryExpense{}
	list := []models.CategoryExpense{}

	for _, row := range r.transactions.matching(userID, filter.Spec{Kind: &expense}) {
		name := models.Uncategorized
		if row.CategoryName != nil {
			name = *row.CategoryName
		}
		ce, ok := byName[name]
		if !ok {
			ce = &models.CategoryExpense{CategoryName: name}
			byName[name] = ce
		}
		ce.Total = ce.Total.Add(row.Amount)
		ce.Count++
	}

	for _, ce := range byName {
		list = append(list, *ce)
	}
	slices.SortFunc(list, func(a, b models.CategoryExpense) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryName, b.CategoryName)
	})
	return list, nil
}

func (r *InMemoryAnalyticsRepository) MonthlyTotals(_ context.Context, userID int64, since time.Time) ([]models.MonthlyTotals, error) {
	from := dateOf(since)
	byMonth := map[string]*models.MonthlyTotals{}

	for _, row := range r.transactions.matching(userID, filter.Spec{DateFrom: &from}) {
		key := row.Date.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &models.MonthlyTotals{Month: key}
			byMonth[key] = m
		}
		if row.Kind == models.Income {
			m.TotalIncome = m.TotalIncome.Add(row.Amount)
		} else {
			m.TotalExpense = m.TotalExpense.Add(row.Amount)
		}
	}

	list := []models.MonthlyTotals{}
	for _, m := range byMonth {
		list = append(list, *m)
	}
	slices.SortFunc(list, func(a, b models.MonthlyTotals) int { return cmp.Compare(a.Month, b.Month) })
	return list, nil
}
