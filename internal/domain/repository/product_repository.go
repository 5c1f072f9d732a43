package repository

import (
	"context"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// ProductFilter búsqueda libre sobre nombre, categoría, proveedor y SKU.
type ProductFilter struct {
	Search string
}

// ProductRepository define el puerto de persistencia para Product.
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// ExistsSKU indica si otro producto (distinto de excludeID) ya usa el SKU.
	ExistsSKU(ctx context.Context, sku, excludeID string) (bool, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	// CountLowStock cuenta productos con quantity < stock_min.
	CountLowStock(ctx context.Context) (int, error)
	// ListAll devuelve todos los productos ordenados por nombre (exportación).
	ListAll(ctx context.Context) ([]*entity.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctProviders(ctx context.Context) ([]string, error)
}
