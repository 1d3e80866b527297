// Package ledger composes the transaction listing, export and mutation
// flows on top of the repositories.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
)

type Service struct {
	transactions repo.TransactionRepository
	categories   repo.CategoryRepository
	analytics    repo.AnalyticsRepository
	loc          *time.Location
	now          func() time.Time
}

type Option func(*Service)

// WithLocation sets the timezone used for "today" and export timestamps.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(transactions repo.TransactionRepository, categories repo.CategoryRepository, analytics repo.AnalyticsRepository, opts ...Option) *Service {
	s := &Service{
		transactions: transactions,
		categories:   categories,
		analytics:    analytics,
		loc:          time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the current time in the service's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Page is one page of a filtered listing with its summary.
type Page struct {
	Rows       []models.TransactionRow
	Summary    models.Summary
	Count      int
	Pagination filter.Pagination
}

// Search counts and summarizes the filtered set, clamps the requested page
// and then fetches the rows of the clamped page, all from one snapshot.
func (s *Service) Search(ctx context.Context, userID int64, f filter.Spec) (Page, error) {
	var page Page
	err := s.transactions.ReadConsistent(ctx, func(tr repo.TransactionReader) error {
		total, err := tr.Count(ctx, userID, f)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}

		summary, err := tr.Summarize(ctx, userID, f)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		p := filter.Paginate(total, f.Limit, f.Page)

		rows := []models.TransactionRow{}
		if total > 0 {
			rows, err = tr.List(ctx, userID, f, repo.Window{Limit: p.PerPage, Offset: p.Offset()})
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
		}

		page = Page{Rows: rows, Summary: summary, Count: total, Pagination: p}
		return nil
	})
	if err != nil {
		return Page{}, err
	}
	return page, nil
}
