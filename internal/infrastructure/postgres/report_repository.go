package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y reportes.
// Cada método es un round trip independiente (autocommit).
// memory.ReportRepo replica cada consulta para las pruebas; mantener ambos en par.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetStats estadísticas globales. COALESCE devuelve ceros con la tabla vacía.
func (r *ReportRepo) GetStats(ctx context.Context) (repository.InventoryStats, error) {
	const query = `
	SELECT
	    COUNT(*)                               AS total_products,
	    COALESCE(SUM(quantity), 0)             AS total_quantity,
	    COALESCE(ROUND(AVG(price), 2), 0)      AS avg_price,
	    COALESCE(MIN(price), 0)                AS min_price,
	    COALESCE(MAX(price), 0)                AS max_price,
	    COALESCE(SUM(quantity * price), 0)     AS total_value
	FROM products`

	var s repository.InventoryStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.TotalQuantity, &s.AvgPrice, &s.MinPrice, &s.MaxPrice, &s.TotalValue,
	)
	if err != nil {
		return repository.InventoryStats{}, fmt.Errorf("reports.GetStats: %w", err)
	}
	return s, nil
}

// CountOutOfStock productos con quantity = 0.
func (r *ReportRepo) CountOutOfStock(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountOutOfStock: %w", err)
	}
	return n, nil
}

// ListLowStock quantity < stock_min, los más escasos primero.
func (r *ReportRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity < stock_min ORDER BY quantity ASC, name`
	return r.products(ctx, "reports.ListLowStock", query)
}

// ListOutOfStock quantity = 0 por nombre.
func (r *ReportRepo) ListOutOfStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity = 0 ORDER BY name`
	return r.products(ctx, "reports.ListOutOfStock", query)
}

// ListAlertProducts quantity <= stock_min, los más críticos primero.
func (r *ReportRepo) ListAlertProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= stock_min ORDER BY quantity ASC, name LIMIT $1`
	return r.products(ctx, "reports.ListAlertProducts", query, limit)
}

// CategoryRollup agregados por categoría, sin la categoría vacía.
func (r *ReportRepo) CategoryRollup(ctx context.Context) ([]repository.GroupRollup, error) {
	const query = `
	SELECT category,
	       COUNT(*)                    AS product_count,
	       SUM(quantity)               AS total_quantity,
	       ROUND(AVG(price), 2)        AS avg_price,
	       SUM(quantity * price)       AS total_value
	FROM products
	WHERE category <> ''
	GROUP BY category
	ORDER BY product_count DESC, category`
	return r.rollup(ctx, "reports.CategoryRollup", query)
}

// ProviderRollup agregados por proveedor.
func (r *ReportRepo) ProviderRollup(ctx context.Context) ([]repository.GroupRollup, error) {
	const query = `
	SELECT provider,
	       COUNT(*)                    AS product_count,
	       SUM(quantity)               AS total_quantity,
	       ROUND(AVG(price), 2)        AS avg_price,
	       SUM(quantity * price)       AS total_value
	FROM products
	WHERE provider <> ''
	GROUP BY provider
	ORDER BY total_value DESC, provider`
	return r.rollup(ctx, "reports.ProviderRollup", query)
}

// TopValueProducts productos con mayor quantity × price.
func (r *ReportRepo) TopValueProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY quantity * price DESC, name LIMIT $1`
	return r.products(ctx, "reports.TopValueProducts", query, limit)
}

// RecentProducts productos creados en los últimos `days` días.
func (r *ReportRepo) RecentProducts(ctx context.Context, days int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE created_at::date >= CURRENT_DATE - $1::int
		ORDER BY created_at DESC`
	return r.products(ctx, "reports.RecentProducts", query, days)
}

// MovementTrends serie diaria de los últimos `days` días (fecha local de la sesión).
func (r *ReportRepo) MovementTrends(ctx context.Context, days int) ([]repository.TrendPoint, error) {
	const query = `
	SELECT created_at::date                                                          AS day,
	       COUNT(*)                                                                  AS movement_count,
	       COALESCE(SUM(CASE WHEN movement_type = 'entrada' THEN quantity_change END), 0)    AS total_entries,
	       COALESCE(SUM(CASE WHEN movement_type = 'salida' THEN ABS(quantity_change) END), 0) AS total_exits
	FROM inventory_movements
	WHERE created_at::date >= CURRENT_DATE - $1::int
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reports.MovementTrends: %w", err)
	}
	defer rows.Close()
	points := make([]repository.TrendPoint, 0)
	for rows.Next() {
		var p repository.TrendPoint
		if err := rows.Scan(&p.Date, &p.MovementCount, &p.TotalEntries, &p.TotalExits); err != nil {
			return nil, fmt.Errorf("reports.MovementTrends scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// MostMovedProducts top por número de movimientos, agrupado por snapshot de nombre.
func (r *ReportRepo) MostMovedProducts(ctx context.Context, limit int) ([]repository.MovedProduct, error) {
	const query = `
	SELECT product_name,
	       COUNT(*)                   AS movement_count,
	       SUM(ABS(quantity_change))  AS total_moved
	FROM inventory_movements
	GROUP BY product_name
	ORDER BY movement_count DESC, product_name
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.MostMovedProducts: %w", err)
	}
	defer rows.Close()
	list := make([]repository.MovedProduct, 0)
	for rows.Next() {
		var m repository.MovedProduct
		if err := rows.Scan(&m.ProductName, &m.MovementCount, &m.TotalMoved); err != nil {
			return nil, fmt.Errorf("reports.MostMovedProducts scan: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UserActivity movimientos por usuario en los últimos `days` días.
func (r *ReportRepo) UserActivity(ctx context.Context, days int) ([]repository.UserActivity, error) {
	const query = `
	SELECT username, COUNT(*) AS movement_count
	FROM inventory_movements
	WHERE created_at::date >= CURRENT_DATE - $1::int
	GROUP BY username
	ORDER BY movement_count DESC, username`

	rows, err := r.q.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reports.UserActivity: %w", err)
	}
	defer rows.Close()
	list := make([]repository.UserActivity, 0)
	for rows.Next() {
		var a repository.UserActivity
		if err := rows.Scan(&a.Username, &a.MovementCount); err != nil {
			return nil, fmt.Errorf("reports.UserActivity scan: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// StockDistribution conteo por bucket; los buckets sin productos quedan en 0.
func (r *ReportRepo) StockDistribution(ctx context.Context) (map[string]int, error) {
	query := fmt.Sprintf(`
	SELECT CASE
	         WHEN quantity = 0             THEN '%s'
	         WHEN quantity < stock_min     THEN '%s'
	         WHEN quantity < stock_min::bigint * 2 THEN '%s'
	         ELSE '%s'
	       END AS bucket,
	       COUNT(*)
	FROM products
	GROUP BY bucket`,
		inventory.BucketSinStock, inventory.BucketStockBajo, inventory.BucketStockNormal, inventory.BucketStockAlto)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.StockDistribution: %w", err)
	}
	defer rows.Close()
	dist := make(map[string]int, len(inventory.BucketLabels))
	for _, b := range inventory.BucketLabels {
		dist[b.Key] = 0
	}
	for rows.Next() {
		var bucket string
		var n int
		if err := rows.Scan(&bucket, &n); err != nil {
			return nil, fmt.Errorf("reports.StockDistribution scan: %w", err)
		}
		dist[bucket] = n
	}
	return dist, rows.Err()
}

func (r *ReportRepo) products(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectProducts(op, rows)
}

func (r *ReportRepo) rollup(ctx context.Context, op, query string) ([]repository.GroupRollup, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.GroupRollup, error) {
		var g repository.GroupRollup
		err := row.Scan(&g.Key, &g.ProductCount, &g.TotalQuantity, &g.AvgPrice, &g.TotalValue)
		return g, err
	})
}
