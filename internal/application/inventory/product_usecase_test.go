package inventory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/memory"
)

var editor = &entity.Actor{UserID: "u-editor", Username: "editor", Role: entity.RoleEditor}

type fixture struct {
	store     *memory.Store
	products  *memory.ProductRepo
	movements *memory.InventoryMovementRepo
	uc        *ProductUseCase
}

func newFixture() *fixture {
	s := memory.NewStore(time.UTC)
	products := memory.NewProductRepository(s)
	movements := memory.NewInventoryMovementRepository(s)
	return &fixture{
		store:     s,
		products:  products,
		movements: movements,
		uc:        NewProductUseCase(products, NewLedgerWriter(movements, nil), nil),
	}
}

func (f *fixture) history(t *testing.T) []*entity.InventoryMovement {
	t.Helper()
	list, err := f.movements.List(context.Background(), repository.MovementFilter{}, 1000, 0)
	require.NoError(t, err)
	return list
}

func intPtr(n int) *int { return &n }

func TestWidgetScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.uc.Create(ctx, dto.CreateProductRequest{
		Name: "Widget", Quantity: 10, Price: decimal.NewFromInt(2), StockMin: intPtr(5),
	}, editor)
	require.NoError(t, err)

	h := f.history(t)
	require.Len(t, h, 1)
	assert.Equal(t, entity.MovementCreacion, h[0].Type)
	assert.Equal(t, 0, h[0].QuantityBefore)
	assert.Equal(t, 10, h[0].QuantityAfter)
	assert.Equal(t, "Producto creado con stock inicial de 10", h[0].Reason)

	_, err = f.uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name: "Widget", Quantity: 3, Price: decimal.NewFromInt(2), StockMin: 5,
	}, editor)
	require.NoError(t, err)

	h = f.history(t)
	require.Len(t, h, 2)
	assert.Equal(t, entity.MovementSalida, h[0].Type)
	assert.Equal(t, 10, h[0].QuantityBefore)
	assert.Equal(t, 3, h[0].QuantityAfter)
	assert.Equal(t, -7, h[0].QuantityChange)
	assert.Equal(t, "Actualización de producto: salida de 7 unidades", h[0].Reason)

	low, err := f.products.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, low)

	require.NoError(t, f.uc.Delete(ctx, created.ID, editor))

	list, err := f.uc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	h = f.history(t)
	require.Len(t, h, 3)
	assert.Equal(t, entity.MovementEliminacion, h[0].Type)
	assert.Equal(t, 3, h[0].QuantityBefore)
	assert.Equal(t, 0, h[0].QuantityAfter)
	for _, m := range h {
		assert.Equal(t, "Widget", m.ProductName)
		assert.Equal(t, "editor", m.Username)
	}
}

func TestCreate_StockMinPorDefectoYSKUNormalizado(t *testing.T) {
	f := newFixture()
	p, err := f.uc.Create(context.Background(), dto.CreateProductRequest{
		Name: " Tornillo ", SKU: " ab-1 ", Quantity: 0, Price: decimal.RequireFromString("0.50"),
	}, editor)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", p.Name)
	assert.Equal(t, DefaultStockMin, p.StockMin)
	require.NotNil(t, p.SKU)
	assert.Equal(t, "AB-1", *p.SKU)
	assert.Equal(t, "critical", p.StockStatus)

	h := f.history(t)
	require.Len(t, h, 1, "la creación con cantidad 0 también queda en el ledger")
	assert.Equal(t, 0, h[0].QuantityChange)
}

func TestCreate_SKUDuplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "x1"}, editor)
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, dto.CreateProductRequest{Name: "B", SKU: "X1"}, editor)
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Contains(t, err.Error(), "ya existe un producto con el SKU: X1")
	assert.Len(t, f.history(t), 1, "sin escritura cuando se rechaza")
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), dto.CreateProductRequest{Name: "A", Quantity: -1}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(context.Background(), dto.CreateProductRequest{Name: "A", Price: decimal.NewFromInt(-1)}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.history(t))
}

func TestUpdate_SinCambioDeCantidadNoEscribe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: 4}, editor)
	require.NoError(t, err)

	out, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "A2", Quantity: 4, StockMin: 1, Category: "Cat"}, editor)
	require.NoError(t, err)
	assert.Equal(t, "A2", out.Name)
	assert.Len(t, f.history(t), 1)
}

func TestUpdate_EntradaUsaNombreNuevo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Viejo", Quantity: 1}, editor)
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "Nuevo", Quantity: 6, StockMin: 5}, editor)
	require.NoError(t, err)

	h := f.history(t)
	assert.Equal(t, entity.MovementEntrada, h[0].Type)
	assert.Equal(t, "Nuevo", h[0].ProductName)
	assert.Equal(t, "Actualización de producto: entrada de 5 unidades", h[0].Reason)
}

func TestUpdate_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Update(context.Background(), "nope", dto.UpdateProductRequest{Name: "A"}, editor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: 4}, editor)
	require.NoError(t, err)

	out, err := f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: 6, Reason: "compra"}, editor)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Quantity)
	h := f.history(t)
	assert.Equal(t, entity.MovementEntrada, h[0].Type)
	assert.Equal(t, "Ajuste de inventario: +6 - compra", h[0].Reason)

	out, err = f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustSubtract, Quantity: 25, Reason: "merma"}, editor)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity, "la resta no baja de cero")
	h = f.history(t)
	assert.Equal(t, entity.MovementSalida, h[0].Type)
	assert.Equal(t, 10, h[0].QuantityBefore)
	assert.Equal(t, 0, h[0].QuantityAfter)
	assert.Equal(t, -10, h[0].QuantityChange)
	assert.Equal(t, "Ajuste de inventario: -25 - merma", h[0].Reason)

	_, err = f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: "multiply", Quantity: 2}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMutacionesSinActorNoEscribenLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: 4}, nil)
	require.NoError(t, err)
	_, err = f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: 1, Reason: "x"}, &entity.Actor{})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, p.ID, nil))
	assert.Empty(t, f.history(t))
}

func TestList_BusquedaYContadorStockBajo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Martillo", Category: "Herramientas", Quantity: 1, StockMin: intPtr(3)}, editor)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, dto.CreateProductRequest{Name: "Clavo", Provider: "ACME", Quantity: 100}, editor)
	require.NoError(t, err)

	res, err := f.uc.List(ctx, "acme", 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Clavo", res.Items[0].Name)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 1, res.Pagination.TotalRecords)
	assert.Equal(t, 1, res.LowStockCount, "el contador no depende de la búsqueda")
}

func TestCreate_CantidadFueraDeRango(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: entity.MaxQuantity + 1}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", StockMin: intPtr(entity.MaxQuantity + 1)}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.history(t), "sin escritura parcial")

	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: entity.MaxQuantity}, editor)
	require.NoError(t, err)
	_, err = f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "A", Quantity: 1, StockMin: entity.MaxQuantity + 1}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_SumaQueDesbordaSeRechaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "A", Quantity: entity.MaxQuantity - 5}, editor)
	require.NoError(t, err)

	_, err = f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: 6, Reason: "compra"}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: math.MaxInt, Reason: "compra"}, editor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity-5, got.Quantity)
	assert.Len(t, f.history(t), 1, "solo la creación")

	out, err := f.uc.Adjust(ctx, p.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: 5, Reason: "compra"}, editor)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, out.Quantity)
}

func TestList_PaginaEnormeDevuelveVacio(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, dto.CreateProductRequest{Name: "Martillo", Quantity: 1}, editor)
	require.NoError(t, err)

	var res *dto.ProductListResponse
	require.NotPanics(t, func() {
		res, err = f.uc.List(ctx, "", math.MaxInt)
	})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.Pagination.TotalRecords)
	assert.False(t, res.Pagination.HasNext)
}
