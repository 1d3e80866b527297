package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionReader answers the filtered listing queries.
type TransactionReader interface {
	List(ctx context.Context, userID int64, f filter.Spec, w Window) ([]models.TransactionRow, error)
	Count(ctx context.Context, userID int64, f filter.Spec) (int, error)
	Summarize(ctx context.Context, userID int64, f filter.Spec) (models.Summary, error)
}

// TransactionRepository stores transactions. Every read and write except
// OwnerOf is scoped to the given user.
type TransactionRepository interface {
	TransactionReader
	Create(ctx context.Context, t models.Transaction) (models.Transaction, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, t models.Transaction) error
	Delete(ctx context.Context, id, userID int64) error
	// ReadConsistent runs fn against a single snapshot of the data, so
	// every read inside it sees the same set of rows.
	ReadConsistent(ctx context.Context, fn func(TransactionReader) error) error
}
