package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, category, quantity, price, provider, stock_min, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.Price, p.Provider, p.StockMin, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		if isOutOfRange(err) {
			return fmt.Errorf("%w: valor numérico fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe o el id no es un UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reemplaza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, category = $4, quantity = $5, price = $6, provider = $7, stock_min = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.Price, p.Provider, p.StockMin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		if isOutOfRange(err) {
			return fmt.Errorf("%w: valor numérico fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente el producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsSKU consulta proactiva de duplicados antes de insertar o actualizar.
func (r *ProductRepo) ExistsSKU(ctx context.Context, sku, excludeID string) (bool, error) {
	var p Predicates
	p.Add("sku = ?", sku)
	p.AddIf(excludeID != "", "id <> ?", excludeID)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM products` + p.Where() + `)`
	if err := r.q.QueryRow(ctx, query, p.Args()...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists sku: %w", err)
	}
	return exists, nil
}

func productPredicates(f repository.ProductFilter) *Predicates {
	p := &Predicates{}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		p.Add("(name ILIKE ? OR category ILIKE ? OR provider ILIKE ? OR COALESCE(sku, '') ILIKE ?)",
			pattern, pattern, pattern, pattern)
	}
	return p
}

// List lista productos (más recientes primero) con búsqueda libre y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	p := productPredicates(f)
	query := `SELECT ` + productColumns + ` FROM products` + p.Where() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + p.Bind(limit) + ` OFFSET ` + p.Bind(offset)
	return r.queryProducts(ctx, "list products", query, p.Args()...)
}

// Count total de productos que cumplen el filtro (mismos predicados que List).
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	p := productPredicates(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+p.Where(), p.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta productos con quantity < stock_min.
func (r *ProductRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity < stock_min`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// ListAll todos los productos por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name, id`
	return r.queryProducts(ctx, "list all products", query)
}

// DistinctCategories categorías existentes, ordenadas.
func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// DistinctProviders proveedores existentes, ordenados.
func (r *ProductRepo) DistinctProviders(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "provider")
}

// column viene siempre de una constante interna.
func (r *ProductRepo) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM products WHERE %[1]s <> '' ORDER BY %[1]s`, column)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectProducts(op, rows)
}

func collectProducts(op string, rows pgx.Rows) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan product: %w", op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Quantity, &p.Price, &p.Provider, &p.StockMin, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
