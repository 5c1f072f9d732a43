package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/memory"
)

func TestRecordMovement(t *testing.T) {
	movements := memory.NewInventoryMovementRepository(memory.NewStore(time.UTC))
	w := NewLedgerWriter(movements, nil)
	fixed := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }
	ctx := context.Background()

	err := w.RecordMovement(ctx, MovementRecord{
		ProductID: "p1", ProductName: "Widget", Type: entity.MovementAjuste,
		QuantityBefore: 8, QuantityAfter: 5, Reason: "conteo",
	}, editor)
	require.NoError(t, err)

	list, err := movements.List(ctx, repository.MovementFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	m := list[0]
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, -3, m.QuantityChange)
	assert.Equal(t, "u-editor", m.UserID)
	assert.Equal(t, "editor", m.Username)
	assert.Equal(t, fixed, m.CreatedAt)
}

func TestRecordMovement_SinActor(t *testing.T) {
	movements := memory.NewInventoryMovementRepository(memory.NewStore(time.UTC))
	w := NewLedgerWriter(movements, nil)

	require.NoError(t, w.RecordMovement(context.Background(), MovementRecord{Type: entity.MovementEntrada}, nil))
	n, err := movements.Count(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordMovement_TipoDesconocido(t *testing.T) {
	movements := memory.NewInventoryMovementRepository(memory.NewStore(time.UTC))
	w := NewLedgerWriter(movements, nil)

	err := w.RecordMovement(context.Background(), MovementRecord{Type: "robo"}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
