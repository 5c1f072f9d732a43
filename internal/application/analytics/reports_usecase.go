package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	appinv "github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

const (
	topValueProducts  = 10
	mostMovedProducts = 10
	recentWindowDays  = 30
	trendWindowDays   = 30
)

// ReportsUseCase página de reportes agregados.
type ReportsUseCase struct {
	reports repository.ReportRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(reports repository.ReportRepository) *ReportsUseCase {
	return &ReportsUseCase{reports: reports}
}

// GetReports ejecuta las diez consultas del motor de agregación en paralelo.
func (uc *ReportsUseCase) GetReports(ctx context.Context) (*dto.ReportsDTO, error) {
	statsCh := async(func() (repository.InventoryStats, error) { return uc.reports.GetStats(ctx) })
	lowCh := async(func() ([]*entity.Product, error) { return uc.reports.ListLowStock(ctx) })
	outCh := async(func() ([]*entity.Product, error) { return uc.reports.ListOutOfStock(ctx) })
	catCh := async(func() ([]repository.GroupRollup, error) { return uc.reports.CategoryRollup(ctx) })
	provCh := async(func() ([]repository.GroupRollup, error) { return uc.reports.ProviderRollup(ctx) })
	topCh := async(func() ([]*entity.Product, error) { return uc.reports.TopValueProducts(ctx, topValueProducts) })
	recentCh := async(func() ([]*entity.Product, error) { return uc.reports.RecentProducts(ctx, recentWindowDays) })
	trendCh := async(func() ([]repository.TrendPoint, error) { return uc.reports.MovementTrends(ctx, trendWindowDays) })
	movedCh := async(func() ([]repository.MovedProduct, error) { return uc.reports.MostMovedProducts(ctx, mostMovedProducts) })
	distCh := async(func() (map[string]int, error) { return uc.reports.StockDistribution(ctx) })

	stats, low, out := <-statsCh, <-lowCh, <-outCh
	cat, prov, top, recent := <-catCh, <-provCh, <-topCh, <-recentCh
	trend, moved, dist := <-trendCh, <-movedCh, <-distCh

	for _, e := range []struct {
		name string
		err  error
	}{
		{"estadísticas", stats.err},
		{"stock bajo", low.err},
		{"sin stock", out.err},
		{"categorías", cat.err},
		{"proveedores", prov.err},
		{"top valor", top.err},
		{"productos recientes", recent.err},
		{"tendencias", trend.err},
		{"más movidos", moved.err},
		{"distribución", dist.err},
	} {
		if e.err != nil {
			return nil, fmt.Errorf("reportes: %s: %w", e.name, e.err)
		}
	}

	res := &dto.ReportsDTO{
		Stats: dto.InventoryStatsDTO{
			TotalProducts: stats.val.TotalProducts,
			TotalQuantity: stats.val.TotalQuantity,
			AvgPrice:      stats.val.AvgPrice.Round(2),
			MinPrice:      stats.val.MinPrice,
			MaxPrice:      stats.val.MaxPrice,
			TotalValue:    stats.val.TotalValue.Round(2),
		},
		LowStock:          toProducts(low.val),
		OutOfStock:        toProducts(out.val),
		Categories:        toRollups(cat.val),
		Providers:         toRollups(prov.val),
		TopValue:          toProducts(top.val),
		RecentProducts:    toProducts(recent.val),
		MovementTrends:    make([]dto.TrendPointDTO, 0, len(trend.val)),
		MostMoved:         make([]dto.MovedProductDTO, 0, len(moved.val)),
		StockDistribution: make([]dto.StockBucketDTO, 0, len(inventory.BucketLabels)),
	}
	for _, p := range trend.val {
		res.MovementTrends = append(res.MovementTrends, dto.TrendPointDTO{
			Date:          p.Date.Format(time.DateOnly),
			MovementCount: p.MovementCount,
			TotalEntries:  p.TotalEntries,
			TotalExits:    p.TotalExits,
		})
	}
	for _, m := range moved.val {
		res.MostMoved = append(res.MostMoved, dto.MovedProductDTO{
			ProductName:   m.ProductName,
			MovementCount: m.MovementCount,
			TotalMoved:    m.TotalMoved,
		})
	}
	for _, b := range inventory.BucketLabels {
		res.StockDistribution = append(res.StockDistribution, dto.StockBucketDTO{
			Key: b.Key, Label: b.Label, Count: dist.val[b.Key],
		})
	}
	return res, nil
}

func toProducts(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *appinv.ToProductResponse(p))
	}
	return out
}

func toRollups(list []repository.GroupRollup) []dto.GroupRollupDTO {
	out := make([]dto.GroupRollupDTO, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GroupRollupDTO{
			Name:          g.Key,
			ProductCount:  g.ProductCount,
			TotalQuantity: g.TotalQuantity,
			AvgPrice:      g.AvgPrice.Round(2),
			TotalValue:    g.TotalValue.Round(2),
		})
	}
	return out
}
