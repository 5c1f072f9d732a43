package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
	"github.com/jhoicas/inventario-scomm/pkg/logger"
)

// MovementRecord datos de un movimiento antes de anexarlo al ledger.
type MovementRecord struct {
	ProductID      string
	ProductName    string
	Type           string
	QuantityBefore int
	QuantityAfter  int
	Reason         string
}

// LedgerWriter anexa filas inmutables al historial de movimientos.
type LedgerWriter struct {
	movements repository.InventoryMovementRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerWriter construye el escritor del ledger.
func NewLedgerWriter(movements repository.InventoryMovementRepository, log *logger.Logger) *LedgerWriter {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerWriter{movements: movements, log: log.Named("ledger"), now: time.Now}
}

// RecordMovement escribe una fila con quantity_change = after - before.
// Sin actor (o sin user id) no escribe nada y devuelve nil.
func (w *LedgerWriter) RecordMovement(ctx context.Context, rec MovementRecord, actor *entity.Actor) error {
	if actor == nil || actor.UserID == "" {
		w.log.Debug().Str("product_id", rec.ProductID).Str("type", rec.Type).Msg("movimiento omitido: sin usuario")
		return nil
	}
	if !entity.ValidMovementType(rec.Type) {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, rec.Type)
	}

	m := &entity.InventoryMovement{
		ProductID:      rec.ProductID,
		ProductName:    rec.ProductName,
		Type:           rec.Type,
		QuantityBefore: rec.QuantityBefore,
		QuantityAfter:  rec.QuantityAfter,
		QuantityChange: rec.QuantityAfter - rec.QuantityBefore,
		Reason:         rec.Reason,
		UserID:         actor.UserID,
		Username:       actor.Username,
		CreatedAt:      w.now(),
	}
	if err := w.movements.Create(ctx, m); err != nil {
		return fmt.Errorf("record movement: %w", err)
	}
	return nil
}
