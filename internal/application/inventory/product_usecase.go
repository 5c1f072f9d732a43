package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
	"github.com/jhoicas/inventario-scomm/pkg/logger"
)

// Stock mínimo cuando el request no lo indica.
const DefaultStockMin = 5

// ProductUseCase CRUD de productos. Cada cambio de cantidad deja su fila en el
// ledger después de confirmar el producto (dos escrituras independientes).
type ProductUseCase struct {
	products repository.ProductRepository
	ledger   *LedgerWriter
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, ledger *LedgerWriter, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{products: products, ledger: ledger, log: log.Named("products"), now: time.Now}
}

// Create registra el producto y su movimiento de creación 0 → quantity.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor *entity.Actor) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidQuantity(in.Quantity) || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	stockMin := DefaultStockMin
	if in.StockMin != nil {
		stockMin = *in.StockMin
	}
	if !entity.ValidQuantity(stockMin) {
		return nil, domain.ErrInvalidInput
	}

	sku := entity.NormalizeSKU(in.SKU)
	if err := uc.ensureSKUFree(ctx, sku, ""); err != nil {
		return nil, err
	}

	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Category:  strings.TrimSpace(in.Category),
		Quantity:  in.Quantity,
		Price:     in.Price,
		Provider:  strings.TrimSpace(in.Provider),
		StockMin:  stockMin,
		CreatedAt: uc.now(),
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.record(ctx, MovementRecord{
		ProductID:      p.ID,
		ProductName:    p.Name,
		Type:           entity.MovementCreacion,
		QuantityBefore: 0,
		QuantityAfter:  p.Quantity,
		Reason:         fmt.Sprintf("Producto creado con stock inicial de %d", p.Quantity),
	}, actor)
	uc.warnLowStock(p)
	return ToProductResponse(p), nil
}

// Update reemplaza los campos editables. Si la cantidad cambió escribe una
// entrada o salida según el signo, con el nombre ya actualizado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actor *entity.Actor) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidQuantity(in.Quantity) || !entity.ValidQuantity(in.StockMin) || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	sku := entity.NormalizeSKU(in.SKU)
	if err := uc.ensureSKUFree(ctx, sku, p.ID); err != nil {
		return nil, err
	}

	before := p.Quantity
	p.Name = name
	p.SKU = sku
	p.Category = strings.TrimSpace(in.Category)
	p.Quantity = in.Quantity
	p.Price = in.Price
	p.Provider = strings.TrimSpace(in.Provider)
	p.StockMin = in.StockMin
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}

	if diff := p.Quantity - before; diff != 0 {
		rec := MovementRecord{
			ProductID:      p.ID,
			ProductName:    p.Name,
			QuantityBefore: before,
			QuantityAfter:  p.Quantity,
		}
		if diff > 0 {
			rec.Type = entity.MovementEntrada
			rec.Reason = fmt.Sprintf("Actualización de producto: entrada de %d unidades", diff)
		} else {
			rec.Type = entity.MovementSalida
			rec.Reason = fmt.Sprintf("Actualización de producto: salida de %d unidades", -diff)
		}
		uc.record(ctx, rec, actor)
		uc.warnLowStock(p)
	}
	return ToProductResponse(p), nil
}

// Adjust ajuste rápido: add suma, subtract resta sin bajar de cero.
func (uc *ProductUseCase) Adjust(ctx context.Context, id string, in dto.AdjustStockRequest, actor *entity.Actor) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 || in.Quantity > entity.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(in.Reason)
	before := p.Quantity
	rec := MovementRecord{ProductID: p.ID, ProductName: p.Name, QuantityBefore: before}
	switch in.Operation {
	case dto.AdjustAdd:
		if in.Quantity > entity.MaxQuantity-before {
			return nil, fmt.Errorf("%w: la cantidad resultante supera %d", domain.ErrInvalidInput, entity.MaxQuantity)
		}
		p.Quantity = before + in.Quantity
		rec.Type = entity.MovementEntrada
		rec.Reason = fmt.Sprintf("Ajuste de inventario: +%d - %s", in.Quantity, reason)
	case dto.AdjustSubtract:
		p.Quantity = max(0, before-in.Quantity)
		rec.Type = entity.MovementSalida
		rec.Reason = fmt.Sprintf("Ajuste de inventario: -%d - %s", in.Quantity, reason)
	default:
		return nil, domain.ErrInvalidInput
	}
	rec.QuantityAfter = p.Quantity

	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.record(ctx, rec, actor)
	uc.warnLowStock(p)
	return ToProductResponse(p), nil
}

// Delete elimina el producto y deja el movimiento de eliminación quantity → 0.
func (uc *ProductUseCase) Delete(ctx context.Context, id string, actor *entity.Actor) error {
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, p.ID); err != nil {
		return err
	}
	uc.record(ctx, MovementRecord{
		ProductID:      p.ID,
		ProductName:    p.Name,
		Type:           entity.MovementEliminacion,
		QuantityBefore: p.Quantity,
		QuantityAfter:  0,
		Reason:         "Producto eliminado del inventario",
	}, actor)
	return nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// List página de productos (más recientes primero) con el contador de stock bajo.
func (uc *ProductUseCase) List(ctx context.Context, search string, page int) (*dto.ProductListResponse, error) {
	page = dto.NormalizePage(page)
	filter := repository.ProductFilter{Search: strings.TrimSpace(search)}

	total, err := uc.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.products.List(ctx, filter, dto.DefaultPerPage, dto.Offset(page, dto.DefaultPerPage))
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.products.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:         items,
		Pagination:    dto.NewPagination(page, dto.DefaultPerPage, total),
		LowStockCount: lowStock,
		Search:        filter.Search,
	}, nil
}

func (uc *ProductUseCase) mustGet(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku *string, excludeID string) error {
	if sku == nil {
		return nil
	}
	taken, err := uc.products.ExistsSKU(ctx, *sku, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, *sku)
	}
	return nil
}

// record el producto ya quedó confirmado; un fallo del ledger solo se registra.
func (uc *ProductUseCase) record(ctx context.Context, rec MovementRecord, actor *entity.Actor) {
	if err := uc.ledger.RecordMovement(ctx, rec, actor); err != nil {
		uc.log.Error().Err(err).Str("product_id", rec.ProductID).Str("type", rec.Type).Msg("no se pudo registrar el movimiento")
	}
}

func (uc *ProductUseCase) warnLowStock(p *entity.Product) {
	if inventory.IsLowStock(p.Quantity, p.StockMin) {
		uc.log.Warn().Str("product_id", p.ID).Str("name", p.Name).
			Int("quantity", p.Quantity).Int("stock_min", p.StockMin).Msg("producto bajo stock mínimo")
	}
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Provider:    p.Provider,
		StockMin:    p.StockMin,
		TotalValue:  p.Value(),
		StockStatus: inventory.AlertLevel(p.Quantity, p.StockMin),
		CreatedAt:   p.CreatedAt,
	}
}
