package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	// List returns categories ordered by name, optionally restricted to one kind.
	List(ctx context.Context, kind *models.Kind) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (models.Category, error)
}
