package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

const (
	minDescription = 3
	maxDescription = 255
)

// maxAmount is the largest value a NUMERIC(15,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999999.99")

// TransactionInput is an unvalidated create or update request. Fields are
// raw text so every problem can be reported together.
type TransactionInput struct {
	Amount      string
	Type        string
	CategoryID  string
	Description string
	Date        string
}

// Create validates the input and stores it as a new transaction of userID.
func (s *Service) Create(ctx context.Context, userID int64, in TransactionInput) (models.Transaction, error) {
	var verr ValidationError
	t, err := s.validate(ctx, in, &verr)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := verr.orNil(); err != nil {
		return models.Transaction{}, err
	}
	t.UserID = userID

	created, err := s.transactions.Create(ctx, t)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("create: %w", err)
	}
	return created, nil
}

// Update replaces every field of transaction id. The input is validated
// before ownership is checked.
func (s *Service) Update(ctx context.Context, userID, id int64, in TransactionInput) (models.Transaction, error) {
	var verr ValidationError
	if id <= 0 {
		verr.add("transaction id is required")
	}
	t, err := s.validate(ctx, in, &verr)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := verr.orNil(); err != nil {
		return models.Transaction{}, err
	}

	if err := s.authorize(ctx, userID, id); err != nil {
		return models.Transaction{}, err
	}

	t.ID, t.UserID = id, userID
	if err := s.transactions.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, fmt.Errorf("update: %w", err)
	}
	return t, nil
}

// Delete removes transaction id after checking that userID owns it.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return &ValidationError{Problems: []string{"transaction id is required"}}
	}

	if err := s.authorize(ctx, userID, id); err != nil {
		return err
	}

	if err := s.transactions.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// authorize resolves the owner first so a missing row and a foreign row
// are reported differently.
func (s *Service) authorize(ctx context.Context, userID, id int64) error {
	owner, err := s.transactions.OwnerOf(ctx, id)
	if errors.Is(err, repo.ErrTransactionNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("owner lookup: %w", err)
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}

// validate records input problems in verr. The returned error is reserved
// for store failures.
func (s *Service) validate(ctx context.Context, in TransactionInput, verr *ValidationError) (models.Transaction, error) {
	var t models.Transaction

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	switch {
	case err != nil || !amount.IsPositive():
		verr.add("amount must be greater than 0")
	case !amount.Equal(amount.Truncate(2)):
		verr.add("amount must have at most 2 decimal places")
	case amount.GreaterThan(maxAmount):
		verr.add("amount is too large")
	default:
		t.Amount = amount
	}

	kind, kindOK := models.ParseKind(strings.TrimSpace(in.Type))
	if !kindOK {
		verr.add("type must be income or expense")
	}
	t.Kind = kind

	t.Description = strings.TrimSpace(in.Description)
	switch n := utf8.RuneCountInString(t.Description); {
	case n < minDescription:
		verr.add(fmt.Sprintf("description must be at least %d characters", minDescription))
	case n > maxDescription:
		verr.add(fmt.Sprintf("description must be at most %d characters", maxDescription))
	}

	today := s.Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc)
	if raw := strings.TrimSpace(in.Date); raw == "" {
		t.Date = today
	} else if d, err := time.ParseInLocation(models.DateLayout, raw, s.loc); err != nil {
		verr.add("date must be in YYYY-MM-DD format")
	} else if d.After(today) {
		verr.add("date cannot be in the future")
	} else {
		t.Date = d
	}

	if raw := strings.TrimSpace(in.CategoryID); raw != "" && raw != "0" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			verr.add("category_id must be a positive integer")
		} else {
			c, err := s.categories.GetByID(ctx, id)
			switch {
			case errors.Is(err, repo.ErrCategoryNotFound):
				verr.add("category does not exist")
			case err != nil:
				return models.Transaction{}, fmt.Errorf("category lookup: %w", err)
			case kindOK && c.Kind != kind:
				verr.add("category type does not match transaction type")
			default:
				t.CategoryID = &c.ID
			}
		}
	}

	return t, nil
}
