package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repo sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) skuTaken(sku *string, excludeID string) bool {
	if sku == nil {
		return false
	}
	for id, p := range r.s.products {
		if id != excludeID && p.SKU != nil && *p.SKU == *sku {
			return true
		}
	}
	return false
}

// Create inserta el producto; respeta el índice único de SKU.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, "") {
		return domain.ErrDuplicateSKU
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicateSKU
	}
	c := copyProduct(p)
	c.CreatedAt = old.CreatedAt
	r.s.products[p.ID] = c
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ExistsSKU ver ProductRepository.
func (r *ProductRepo) ExistsSKU(_ context.Context, sku, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.skuTaken(&sku, excludeID), nil
}

func matchesSearch(p *entity.Product, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	sku := ""
	if p.SKU != nil {
		sku = *p.SKU
	}
	for _, field := range []string{p.Name, p.Category, p.Provider, sku} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// filtered snapshot ordenado por created_at DESC, id DESC.
func (r *ProductRepo) filtered(f repository.ProductFilter) []*entity.Product {
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if matchesSearch(p, f.Search) {
			list = append(list, copyProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

// List ver ProductRepository.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filtered(f), limit, offset), nil
}

// Count ver ProductRepository.
func (r *ProductRepo) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.filtered(f)), nil
}

// CountLowStock quantity < stock_min.
func (r *ProductRepo) CountLowStock(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.Quantity < p.StockMin {
			n++
		}
	}
	return n, nil
}

// ListAll por nombre.
func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.byName(nil), nil
}

// DistinctCategories ver ProductRepository.
func (r *ProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Category }), nil
}

// DistinctProviders ver ProductRepository.
func (r *ProductRepo) DistinctProviders(_ context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Provider }), nil
}

func (r *ProductRepo) distinct(field func(*entity.Product) string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.s.products {
		v := field(p)
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// byName copia de los productos que cumplen keep (nil = todos), por nombre.
// Requiere el lock tomado.
func (s *Store) byName(keep func(*entity.Product) bool) []*entity.Product {
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep == nil || keep(p) {
			list = append(list, copyProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list
}
