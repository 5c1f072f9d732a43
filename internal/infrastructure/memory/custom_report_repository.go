package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.CustomReportRepository = (*CustomReportRepo)(nil)

// CustomReportRepo formas de reporte personalizado sobre el store.
type CustomReportRepo struct {
	s *Store
}

// NewCustomReportRepository construye el repo sobre el store.
func NewCustomReportRepository(s *Store) *CustomReportRepo {
	return &CustomReportRepo{s: s}
}

// InventoryByCategory ver CustomReportRepository.
func (r *CustomReportRepo) InventoryByCategory(_ context.Context, f repository.CustomReportFilter) ([]repository.GroupValueRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.groupValues(
		func(p *entity.Product) bool { return f.Category == "" || p.Category == f.Category },
		func(p *entity.Product) string { return p.Category },
	), nil
}

// ValueByProvider ver CustomReportRepository.
func (r *CustomReportRepo) ValueByProvider(_ context.Context, f repository.CustomReportFilter) ([]repository.GroupValueRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.groupValues(
		func(p *entity.Product) bool { return f.Provider == "" || p.Provider == f.Provider },
		func(p *entity.Product) string { return p.Provider },
	), nil
}

func (r *CustomReportRepo) groupValues(keep func(*entity.Product) bool, key func(*entity.Product) string) []repository.GroupValueRow {
	groups := make(map[string]*repository.GroupValueRow)
	for _, p := range r.s.products {
		if !keep(p) {
			continue
		}
		g, ok := groups[key(p)]
		if !ok {
			g = &repository.GroupValueRow{Key: key(p), TotalValue: decimal.Zero}
			groups[key(p)] = g
		}
		g.TotalProducts++
		g.TotalQuantity += p.Quantity
		g.TotalValue = g.TotalValue.Add(p.Value())
	}
	out := make([]repository.GroupValueRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalValue.Equal(out[j].TotalValue) {
			return out[i].TotalValue.GreaterThan(out[j].TotalValue)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// LowStock ver CustomReportRepository.
func (r *CustomReportRepo) LowStock(_ context.Context, f repository.CustomReportFilter) ([]repository.LowStockRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.byName(func(p *entity.Product) bool {
		return inventory.NeedsAttention(p.Quantity, p.StockMin) && (f.Category == "" || p.Category == f.Category)
	})
	out := make([]repository.LowStockRow, 0, len(list))
	for _, p := range list {
		out = append(out, repository.LowStockRow{
			Name: p.Name, Category: p.Category, Quantity: p.Quantity,
			StockMin: p.StockMin, Provider: p.Provider, Deficit: inventory.Deficit(p.Quantity, p.StockMin),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deficit > out[j].Deficit })
	return out, nil
}

// MovementsByPeriod solo movimientos cuyo producto y usuario siguen existiendo.
func (r *CustomReportRepo) MovementsByPeriod(_ context.Context, f repository.CustomReportFilter) ([]repository.PeriodMovementRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type pair struct {
		m        *entity.InventoryMovement
		category string
	}
	var rows []pair
	for _, m := range r.s.movements {
		p, ok := r.s.products[m.ProductID]
		if !ok {
			continue
		}
		if _, ok := r.s.users[m.UserID]; !ok {
			continue
		}
		d := r.s.calendarDay(m.CreatedAt)
		if f.DateFrom != nil && d.Before(r.s.calendarDay(*f.DateFrom)) {
			continue
		}
		if f.DateTo != nil && d.After(r.s.calendarDay(*f.DateTo)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		rows = append(rows, pair{m, p.Category})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].m, rows[j].m
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	out := make([]repository.PeriodMovementRow, 0, len(rows))
	for _, x := range rows {
		out = append(out, repository.PeriodMovementRow{
			CreatedAt:      x.m.CreatedAt,
			ProductName:    x.m.ProductName,
			Category:       x.category,
			MovementType:   x.m.Type,
			QuantityChange: x.m.QuantityChange,
			Reason:         x.m.Reason,
			Username:       x.m.Username,
		})
	}
	return out, nil
}

// General ver CustomReportRepository.
func (r *CustomReportRepo) General(_ context.Context, f repository.CustomReportFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.byName(func(p *entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.Provider != "" && p.Provider != f.Provider {
			return false
		}
		switch f.StockLevel {
		case repository.StockLevelLow:
			return p.Quantity <= p.StockMin
		case repository.StockLevelHigh:
			return p.Quantity > p.StockMin*2
		}
		return true
	}), nil
}
