package repo

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
}

func NewInMemoryCategoryRepository(seed ...models.Category) *InMemoryCategoryRepository {
	r := &InMemoryCategoryRepository{}
	for _, c := range seed {
		r.Add(c)
	}
	return r
}

// Add stores a category, assigning the next id when none is set.
func (r *InMemoryCategoryRepository) Add(c models.Category) models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = int64(len(r.categories) + 1)
	}
	r.categories = append(r.categories, c)
	return c
}

func (r *InMemoryCategoryRepository) List(_ context.Context, kind *models.Kind) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.Category{}
	for _, c := range r.categories {
		if kind == nil || c.Kind == *kind {
			list = append(list, c)
		}
	}
	slices.SortFunc(list, func(a, b models.Category) int { return cmp.Compare(a.Name, b.Name) })
	return list, nil
}

func (r *InMemoryCategoryRepository) GetByID(_ context.Context, id int64) (models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}
