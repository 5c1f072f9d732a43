package repository

import (
	"context"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Los Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List devuelve los usuarios ordenados por username.
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
