package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial. Las fechas se comparan
// contra la fecha de calendario de created_at (ambos extremos inclusivos).
type MovementFilter struct {
	ProductName  string // subcadena, sin distinguir mayúsculas
	MovementType string // igualdad exacta
	DateFrom     *time.Time
	DateTo       *time.Time
}

// InventoryMovementRepository puerto del ledger: solo inserción y lectura.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// List ordena por created_at DESC, id DESC.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
}
