package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados sobre el store en memoria. Cada método
// replica la consulta de postgres.ReportRepo del mismo nombre (filtro, orden
// y desempates); un cambio en una va acompañado del cambio en la otra.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repo sobre el store.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

// GetStats COUNT/SUM/ROUND(AVG,2)/MIN/MAX; ceros sin productos como el COALESCE.
func (r *ReportRepo) GetStats(_ context.Context) (repository.InventoryStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var st repository.InventoryStats
	sumPrice := decimal.Zero
	first := true
	for _, p := range r.s.products {
		st.TotalProducts++
		st.TotalQuantity += p.Quantity
		st.TotalValue = st.TotalValue.Add(p.Value())
		sumPrice = sumPrice.Add(p.Price)
		if first || p.Price.LessThan(st.MinPrice) {
			st.MinPrice = p.Price
		}
		if first || p.Price.GreaterThan(st.MaxPrice) {
			st.MaxPrice = p.Price
		}
		first = false
	}
	if st.TotalProducts > 0 {
		st.AvgPrice = sumPrice.Div(decimal.NewFromInt(int64(st.TotalProducts))).Round(2)
	}
	return st, nil
}

// CountOutOfStock quantity = 0.
func (r *ReportRepo) CountOutOfStock(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.Quantity == 0 {
			n++
		}
	}
	return n, nil
}

func byQuantityAsc(list []*entity.Product) []*entity.Product {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Quantity < list[j].Quantity })
	return list
}

// ListLowStock quantity < stock_min ORDER BY quantity, name.
func (r *ReportRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byQuantityAsc(r.s.byName(func(p *entity.Product) bool {
		return inventory.IsLowStock(p.Quantity, p.StockMin)
	})), nil
}

// ListOutOfStock quantity = 0 ORDER BY name.
func (r *ReportRepo) ListOutOfStock(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.byName(func(p *entity.Product) bool { return p.Quantity == 0 }), nil
}

// ListAlertProducts quantity <= stock_min ORDER BY quantity, name LIMIT.
func (r *ReportRepo) ListAlertProducts(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := byQuantityAsc(r.s.byName(func(p *entity.Product) bool {
		return inventory.NeedsAttention(p.Quantity, p.StockMin)
	}))
	return page(list, limit, 0), nil
}

func (r *ReportRepo) rollup(key func(*entity.Product) string) []repository.GroupRollup {
	groups := make(map[string]*repository.GroupRollup)
	sums := make(map[string]decimal.Decimal)
	for _, p := range r.s.products {
		k := key(p)
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &repository.GroupRollup{Key: k}
			groups[k] = g
		}
		g.ProductCount++
		g.TotalQuantity += p.Quantity
		g.TotalValue = g.TotalValue.Add(p.Value())
		sums[k] = sums[k].Add(p.Price)
	}
	out := make([]repository.GroupRollup, 0, len(groups))
	for k, g := range groups {
		g.AvgPrice = sums[k].Div(decimal.NewFromInt(int64(g.ProductCount))).Round(2)
		out = append(out, *g)
	}
	return out
}

// CategoryRollup WHERE category <> '' ORDER BY product_count DESC, category.
func (r *ReportRepo) CategoryRollup(_ context.Context) ([]repository.GroupRollup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.rollup(func(p *entity.Product) string { return p.Category })
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductCount != out[j].ProductCount {
			return out[i].ProductCount > out[j].ProductCount
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// ProviderRollup WHERE provider <> '' ORDER BY total_value DESC, provider.
func (r *ReportRepo) ProviderRollup(_ context.Context) ([]repository.GroupRollup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.rollup(func(p *entity.Product) string { return p.Provider })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalValue.Equal(out[j].TotalValue) {
			return out[i].TotalValue.GreaterThan(out[j].TotalValue)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// TopValueProducts ORDER BY quantity * price DESC, name LIMIT.
func (r *ReportRepo) TopValueProducts(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.byName(nil)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Value().GreaterThan(list[j].Value()) })
	return page(list, limit, 0), nil
}

// RecentProducts created_at::date >= CURRENT_DATE - days, más nuevos primero.
func (r *ReportRepo) RecentProducts(_ context.Context, days int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	since := r.s.sinceDay(days)
	list := r.s.byName(func(p *entity.Product) bool {
		return !r.s.calendarDay(p.CreatedAt).Before(since)
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// MovementTrends GROUP BY created_at::date desde CURRENT_DATE - days: entradas
// suman quantity_change, salidas ABS(quantity_change); el resto solo cuenta.
func (r *ReportRepo) MovementTrends(_ context.Context, days int) ([]repository.TrendPoint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	since := r.s.sinceDay(days)
	byDay := make(map[int64]*repository.TrendPoint)
	for _, m := range r.s.movements {
		d := r.s.calendarDay(m.CreatedAt)
		if d.Before(since) {
			continue
		}
		p, ok := byDay[d.Unix()]
		if !ok {
			p = &repository.TrendPoint{Date: d}
			byDay[d.Unix()] = p
		}
		p.MovementCount++
		switch m.Type {
		case entity.MovementEntrada:
			p.TotalEntries += m.QuantityChange
		case entity.MovementSalida:
			p.TotalExits += abs(m.QuantityChange)
		}
	}
	out := make([]repository.TrendPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// MostMovedProducts GROUP BY product_name ORDER BY movement_count DESC, product_name LIMIT.
func (r *ReportRepo) MostMovedProducts(_ context.Context, limit int) ([]repository.MovedProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byName := make(map[string]*repository.MovedProduct)
	for _, m := range r.s.movements {
		mp, ok := byName[m.ProductName]
		if !ok {
			mp = &repository.MovedProduct{ProductName: m.ProductName}
			byName[m.ProductName] = mp
		}
		mp.MovementCount++
		mp.TotalMoved += abs(m.QuantityChange)
	}
	out := make([]repository.MovedProduct, 0, len(byName))
	for _, mp := range byName {
		out = append(out, *mp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovementCount != out[j].MovementCount {
			return out[i].MovementCount > out[j].MovementCount
		}
		return out[i].ProductName < out[j].ProductName
	})
	return page(out, limit, 0), nil
}

// UserActivity GROUP BY username desde CURRENT_DATE - days ORDER BY movement_count DESC, username.
func (r *ReportRepo) UserActivity(_ context.Context, days int) ([]repository.UserActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	since := r.s.sinceDay(days)
	counts := make(map[string]int)
	for _, m := range r.s.movements {
		if !r.s.calendarDay(m.CreatedAt).Before(since) {
			counts[m.Username]++
		}
	}
	out := make([]repository.UserActivity, 0, len(counts))
	for u, n := range counts {
		out = append(out, repository.UserActivity{Username: u, MovementCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovementCount != out[j].MovementCount {
			return out[i].MovementCount > out[j].MovementCount
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// StockDistribution mismo CASE de buckets vía inventory.Bucket; todos los buckets presentes.
func (r *ReportRepo) StockDistribution(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	dist := make(map[string]int, len(inventory.BucketLabels))
	for _, b := range inventory.BucketLabels {
		dist[b.Key] = 0
	}
	for _, p := range r.s.products {
		dist[inventory.Bucket(p.Quantity, p.StockMin)]++
	}
	return dist, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
