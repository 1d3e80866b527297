package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
