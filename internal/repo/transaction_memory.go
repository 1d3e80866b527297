package repo

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

// InMemoryTransactionRepository mirrors the Postgres repository's filtering
// and ordering rules for tests.
type InMemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	nextID       int64
	categories   *InMemoryCategoryRepository
}

func NewInMemoryTransactionRepository(categories *InMemoryCategoryRepository) *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{nextID: 1, categories: categories}
}

func (r *InMemoryTransactionRepository) Create(_ context.Context, t models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now().UTC()
	r.transactions = append(r.transactions, t)
	return t, nil
}

func (r *InMemoryTransactionRepository) OwnerOf(_ context.Context, id int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transactions {
		if t.ID == id {
			return t.UserID, nil
		}
	}
	return 0, ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Update(_ context.Context, t models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.transactions {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			t.CreatedAt = existing.CreatedAt
			r.transactions[i] = t
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Delete(_ context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.transactions {
		if t.ID == id && t.UserID == userID {
			r.transactions = slices.Delete(r.transactions, i, i+1)
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) List(_ context.Context, userID int64, f filter.Spec, w Window) ([]models.TransactionRow, error) {
	rows := r.matching(userID, f)

	slices.SortStableFunc(rows, func(a, b models.TransactionRow) int {
		c := compareBy(f.Sort.Column, a, b)
		if f.Sort.Order != filter.Asc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if w.Limit <= 0 {
		return rows, nil
	}
	start := min(w.Offset, len(rows))
	end := min(start+w.Limit, len(rows))
	return rows[start:end], nil
}

func (r *InMemoryTransactionRepository) Count(_ context.Context, userID int64, f filter.Spec) (int, error) {
	return len(r.matching(userID, f)), nil
}

func (r *InMemoryTransactionRepository) Summarize(_ context.Context, userID int64, f filter.Spec) (models.Summary, error) {
	var s models.Summary
	for _, row := range r.matching(userID, f) {
		switch row.Kind {
		case models.Income:
			s.TotalIncome = s.TotalIncome.Add(row.Amount)
		case models.Expense:
			s.TotalExpense = s.TotalExpense.Add(row.Amount)
		}
	}
	return s, nil
}

// ReadConsistent hands fn a frozen copy of the current rows.
func (r *InMemoryTransactionRepository) ReadConsistent(_ context.Context, fn func(TransactionReader) error) error {
	r.mu.RLock()
	frozen := &InMemoryTransactionRepository{
		transactions: slices.Clone(r.transactions),
		nextID:       r.nextID,
		categories:   r.categories,
	}
	r.mu.RUnlock()
	return fn(frozen)
}

// Clear removes every transaction.
func (r *InMemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = nil
	r.nextID = 1
}

func (r *InMemoryTransactionRepository) snapshot() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.transactions)
}

func (r *InMemoryTransactionRepository) matching(userID int64, f filter.Spec) []models.TransactionRow {
	search := strings.ToLower(f.Search)

	rows := []models.TransactionRow{}
	for _, t := range r.snapshot() {
		if t.UserID != userID {
			continue
		}
		if f.Kind != nil && t.Kind != *f.Kind {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if f.DateFrom != nil && dateOf(t.Date).Before(dateOf(*f.DateFrom)) {
			continue
		}
		if f.DateTo != nil && dateOf(t.Date).After(dateOf(*f.DateTo)) {
			continue
		}
		rows = append(rows, models.TransactionRow{Transaction: t, CategoryName: r.categoryName(t.CategoryID)})
	}
	return rows
}

func (r *InMemoryTransactionRepository) categoryName(id *int64) *string {
	if id == nil || r.categories == nil {
		return nil
	}
	c, err := r.categories.GetByID(context.Background(), *id)
	if err != nil {
		return nil
	}
	return &c.Name
}

// compareBy orders ascending. Missing category names sort last, as NULLs do in Postgres.
func compareBy(col filter.SortColumn, a, b models.TransactionRow) int {
	switch col {
	case filter.SortAmount:
		return a.Amount.Cmp(b.Amount)
	case filter.SortKind:
		return cmp.Compare(a.Kind, b.Kind)
	case filter.SortDescription:
		return cmp.Compare(a.Description, b.Description)
	case filter.SortCategoryName:
		switch {
		case a.CategoryName == nil && b.CategoryName == nil:
			return 0
		case a.CategoryName == nil:
			return 1
		case b.CategoryName == nil:
			return -1
		}
		return cmp.Compare(*a.CategoryName, *b.CategoryName)
	default:
		return dateOf(a.Date).Compare(dateOf(b.Date))
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
