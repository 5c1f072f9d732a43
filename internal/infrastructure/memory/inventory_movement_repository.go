package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo ledger en memoria (append-only).
type InventoryMovementRepo struct {
	s *Store
}

// NewInventoryMovementRepository construye el repo sobre el store.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

// Create agrega una copia del movimiento.
func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id.String()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *InventoryMovementRepo) matches(m *entity.InventoryMovement, f repository.MovementFilter) bool {
	if f.ProductName != "" && !strings.Contains(strings.ToLower(m.ProductName), strings.ToLower(f.ProductName)) {
		return false
	}
	if f.MovementType != "" && m.Type != f.MovementType {
		return false
	}
	d := r.s.calendarDay(m.CreatedAt)
	if f.DateFrom != nil && d.Before(r.s.calendarDay(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && d.After(r.s.calendarDay(*f.DateTo)) {
		return false
	}
	return true
}

// sorted copia filtrada por created_at DESC, id DESC. Requiere el lock tomado.
func (r *InventoryMovementRepo) sorted(f repository.MovementFilter) []*entity.InventoryMovement {
	list := make([]*entity.InventoryMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		if r.matches(m, f) {
			c := *m
			list = append(list, &c)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

// List ver InventoryMovementRepository.
func (r *InventoryMovementRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.sorted(f), limit, offset), nil
}

// Count ver InventoryMovementRepository.
func (r *InventoryMovementRepo) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.sorted(f)), nil
}
