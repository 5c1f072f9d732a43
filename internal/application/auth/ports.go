package auth

import (
	"context"

	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando el repo de usuarios
// atado a ella. Las reglas de borrado se evalúan y aplican en la misma tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository) error) error
}
