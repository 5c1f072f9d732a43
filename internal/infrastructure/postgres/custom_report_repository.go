package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.CustomReportRepository = (*CustomReportRepo)(nil)

// CustomReportRepo una consulta por forma de reporte personalizado.
type CustomReportRepo struct {
	q Querier
}

// NewCustomReportRepository construye el adaptador.
func NewCustomReportRepository(q Querier) *CustomReportRepo {
	return &CustomReportRepo{q: q}
}

// Predicados por forma. Son la única fuente de filtrado de cada reporte.

func categoryShapePredicates(f repository.CustomReportFilter) *Predicates {
	p := &Predicates{}
	p.AddIf(f.Category != "", "category = ?", f.Category)
	return p
}

func lowStockShapePredicates(f repository.CustomReportFilter) *Predicates {
	p := &Predicates{}
	p.Add("quantity <= stock_min")
	p.AddIf(f.Category != "", "category = ?", f.Category)
	return p
}

func periodShapePredicates(f repository.CustomReportFilter) *Predicates {
	p := &Predicates{}
	if f.DateFrom != nil {
		p.Add("im.created_at::date >= ?::date", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		p.Add("im.created_at::date <= ?::date", f.DateTo.Format("2006-01-02"))
	}
	p.AddIf(f.Category != "", "p.category = ?", f.Category)
	return p
}

func providerShapePredicates(f repository.CustomReportFilter) *Predicates {
	p := &Predicates{}
	p.AddIf(f.Provider != "", "provider = ?", f.Provider)
	return p
}

func generalShapePredicates(f repository.CustomReportFilter) *Predicates {
	p := &Predicates{}
	p.AddIf(f.Category != "", "category = ?", f.Category)
	p.AddIf(f.Provider != "", "provider = ?", f.Provider)
	switch f.StockLevel {
	case repository.StockLevelLow:
		p.Add("quantity <= stock_min")
	case repository.StockLevelHigh:
		p.Add("quantity > stock_min::bigint * 2")
	}
	return p
}

// InventoryByCategory cantidad y valor por categoría.
func (r *CustomReportRepo) InventoryByCategory(ctx context.Context, f repository.CustomReportFilter) ([]repository.GroupValueRow, error) {
	p := categoryShapePredicates(f)
	query := `
	SELECT category, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0) AS total_value
	FROM products` + p.Where() + `
	GROUP BY category
	ORDER BY total_value DESC, category`
	return r.groupValues(ctx, "custom.InventoryByCategory", query, p.Args()...)
}

// ValueByProvider cantidad y valor por proveedor.
func (r *CustomReportRepo) ValueByProvider(ctx context.Context, f repository.CustomReportFilter) ([]repository.GroupValueRow, error) {
	p := providerShapePredicates(f)
	query := `
	SELECT provider, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0) AS total_value
	FROM products` + p.Where() + `
	GROUP BY provider
	ORDER BY total_value DESC, provider`
	return r.groupValues(ctx, "custom.ValueByProvider", query, p.Args()...)
}

// LowStock productos en o bajo el mínimo, mayor déficit primero.
func (r *CustomReportRepo) LowStock(ctx context.Context, f repository.CustomReportFilter) ([]repository.LowStockRow, error) {
	p := lowStockShapePredicates(f)
	query := `
	SELECT name, category, quantity, stock_min, provider, stock_min - quantity AS deficit
	FROM products` + p.Where() + `
	ORDER BY deficit DESC, name`

	rows, err := r.q.Query(ctx, query, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("custom.LowStock: %w", err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.LowStockRow, error) {
		var l repository.LowStockRow
		err := row.Scan(&l.Name, &l.Category, &l.Quantity, &l.StockMin, &l.Provider, &l.Deficit)
		return l, err
	})
}

// MovementsByPeriod movimientos del período con la categoría actual del producto.
// El INNER JOIN deja fuera los movimientos de productos ya eliminados y de
// usuarios borrados; nombre de producto y usuario salen del snapshot.
func (r *CustomReportRepo) MovementsByPeriod(ctx context.Context, f repository.CustomReportFilter) ([]repository.PeriodMovementRow, error) {
	p := periodShapePredicates(f)
	query := `
	SELECT im.created_at, im.product_name, p.category, im.movement_type,
	       im.quantity_change, COALESCE(im.reason, ''), im.username
	FROM inventory_movements im
	JOIN products p ON p.id = im.product_id
	JOIN users u    ON u.id = im.user_id` + p.Where() + `
	ORDER BY im.created_at DESC, im.id DESC`

	rows, err := r.q.Query(ctx, query, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("custom.MovementsByPeriod: %w", err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.PeriodMovementRow, error) {
		var m repository.PeriodMovementRow
		err := row.Scan(&m.CreatedAt, &m.ProductName, &m.Category, &m.MovementType,
			&m.QuantityChange, &m.Reason, &m.Username)
		return m, err
	})
}

// General listado de productos con filtros combinados, por nombre.
func (r *CustomReportRepo) General(ctx context.Context, f repository.CustomReportFilter) ([]*entity.Product, error) {
	p := generalShapePredicates(f)
	query := `SELECT ` + productColumns + ` FROM products` + p.Where() + ` ORDER BY name, id`

	rows, err := r.q.Query(ctx, query, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("custom.General: %w", err)
	}
	defer rows.Close()
	return collectProducts("custom.General", rows)
}

func (r *CustomReportRepo) groupValues(ctx context.Context, op, query string, args ...any) ([]repository.GroupValueRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.GroupValueRow, error) {
		var g repository.GroupValueRow
		err := row.Scan(&g.Key, &g.TotalProducts, &g.TotalQuantity, &g.TotalValue)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
