package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

func TestGetReports(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	w := e.create(t, "Widget", 10, 5, "2")
	e.create(t, "Tuerca", 0, 5, "1")
	e.create(t, "Llave", 50, 5, "10")
	_, err := e.uc.Adjust(ctx, w.ID, dto.AdjustStockRequest{Operation: dto.AdjustSubtract, Quantity: 4, Reason: "venta"}, admin)
	require.NoError(t, err)
	_, err = e.uc.Adjust(ctx, w.ID, dto.AdjustStockRequest{Operation: dto.AdjustAdd, Quantity: 1, Reason: "devolución"}, admin)
	require.NoError(t, err)

	r, err := NewReportsUseCase(e.reports).GetReports(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Stats.TotalProducts)
	assert.Equal(t, 57, r.Stats.TotalQuantity)
	assert.True(t, decimal.NewFromInt(514).Equal(r.Stats.TotalValue))
	assert.True(t, decimal.NewFromInt(1).Equal(r.Stats.MinPrice))

	require.Len(t, r.LowStock, 1)
	assert.Equal(t, "Tuerca", r.LowStock[0].Name, "Widget quedó en 7, sobre el mínimo")
	require.Len(t, r.OutOfStock, 1)
	require.Len(t, r.Categories, 1)
	assert.Equal(t, 3, r.Categories[0].ProductCount)
	assert.Equal(t, "Llave", r.TopValue[0].Name)
	assert.Len(t, r.RecentProducts, 3)

	require.Len(t, r.MovementTrends, 1)
	assert.Equal(t, 5, r.MovementTrends[0].MovementCount)
	assert.Equal(t, 1, r.MovementTrends[0].TotalEntries)
	assert.Equal(t, 4, r.MovementTrends[0].TotalExits)

	require.NotEmpty(t, r.MostMoved)
	assert.Equal(t, dto.MovedProductDTO{ProductName: "Widget", MovementCount: 3, TotalMoved: 15}, r.MostMoved[0])

	require.Len(t, r.StockDistribution, len(inventory.BucketLabels))
	counts := map[string]int{}
	for _, b := range r.StockDistribution {
		counts[b.Key] = b.Count
	}
	assert.Equal(t, 1, counts[inventory.BucketSinStock])
	assert.Equal(t, 1, counts[inventory.BucketStockNormal])
	assert.Equal(t, 1, counts[inventory.BucketStockAlto])
	assert.Equal(t, 0, counts[inventory.BucketStockBajo])
}

// failingReports devuelve vacío en todo salvo en los métodos configurados con mock.
type failingReports struct {
	mock.Mock
}

func (m *failingReports) GetStats(ctx context.Context) (repository.InventoryStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.InventoryStats), args.Error(1)
}
func (m *failingReports) CountOutOfStock(context.Context) (int, error) { return 0, nil }
func (m *failingReports) ListLowStock(context.Context) ([]*entity.Product, error) {
	return nil, nil
}
func (m *failingReports) ListOutOfStock(context.Context) ([]*entity.Product, error) {
	return nil, nil
}
func (m *failingReports) ListAlertProducts(context.Context, int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *failingReports) CategoryRollup(context.Context) ([]repository.GroupRollup, error) {
	return nil, nil
}
func (m *failingReports) ProviderRollup(context.Context) ([]repository.GroupRollup, error) {
	return nil, nil
}
func (m *failingReports) TopValueProducts(context.Context, int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *failingReports) RecentProducts(context.Context, int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *failingReports) MovementTrends(ctx context.Context, days int) ([]repository.TrendPoint, error) {
	args := m.Called(ctx, days)
	list, _ := args.Get(0).([]repository.TrendPoint)
	return list, args.Error(1)
}
func (m *failingReports) MostMovedProducts(context.Context, int) ([]repository.MovedProduct, error) {
	return nil, nil
}
func (m *failingReports) UserActivity(context.Context, int) ([]repository.UserActivity, error) {
	return nil, nil
}
func (m *failingReports) StockDistribution(context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func TestGetReports_PropagaError(t *testing.T) {
	repo := &failingReports{}
	repo.On("GetStats", mock.Anything).Return(repository.InventoryStats{}, nil)
	repo.On("MovementTrends", mock.Anything, 30).Return(nil, errors.New("conexión perdida"))

	_, err := NewReportsUseCase(repo).GetReports(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tendencias")
	assert.Contains(t, err.Error(), "conexión perdida")
	repo.AssertExpectations(t)
}

func TestGetReports_Vacio(t *testing.T) {
	repo := &failingReports{}
	repo.On("GetStats", mock.Anything).Return(repository.InventoryStats{}, nil)
	repo.On("MovementTrends", mock.Anything, 30).Return([]repository.TrendPoint{}, nil)

	r, err := NewReportsUseCase(repo).GetReports(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, r.LowStock)
	assert.NotNil(t, r.MostMoved)
	for _, b := range r.StockDistribution {
		assert.Zero(t, b.Count)
	}
}
