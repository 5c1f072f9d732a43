// Package memory implementa los puertos de persistencia en memoria. Lo usan
// los tests de casos de uso y de handlers; replica el orden y los filtros de
// las consultas SQL de internal/infrastructure/postgres.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	products  map[string]*entity.Product
	users     map[string]*entity.User
	movements []*entity.InventoryMovement

	// Loc zona de la fecha de calendario (equivale al timezone de la sesión SQL).
	Loc *time.Location
	// Now reloj inyectable para las ventanas de días.
	Now func() time.Time
}

// NewStore crea un store vacío en la zona indicada (nil = UTC).
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
		Loc:      loc,
		Now:      time.Now,
	}
}

// calendarDay trunca t a la fecha local del store.
func (s *Store) calendarDay(t time.Time) time.Time {
	l := t.In(s.Loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, s.Loc)
}

// sinceDay primer día incluido en una ventana de `days` días hacia atrás.
func (s *Store) sinceDay(days int) time.Time {
	return s.calendarDay(s.Now()).AddDate(0, 0, -days)
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.SKU != nil {
		sku := *p.SKU
		c.SKU = &sku
	}
	return &c
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 || offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return list[offset:end]
}
