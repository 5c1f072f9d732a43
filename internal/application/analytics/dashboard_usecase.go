// Package analytics contiene los casos de uso de lectura: dashboard y reportes
// agregados del inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	appinv "github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/domain/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain/repository"
)

const (
	dashboardRecentMovements = 10
	dashboardAlertProducts   = 10
	userActivityDays         = 7
)

// DashboardUseCase arma el resumen de la página principal.
//
// Cada bloque es una consulta independiente; no hay atomicidad entre ellas.
type DashboardUseCase struct {
	reports   repository.ReportRepository
	products  repository.ProductRepository
	movements repository.InventoryMovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reports repository.ReportRepository,
	products repository.ProductRepository,
	movements repository.InventoryMovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{reports: reports, products: products, movements: movements}
}

// GetDashboard lanza las consultas en paralelo y espera todas:
//  1. GetStats + CountLowStock + CountOutOfStock → Stats
//  2. últimos 10 movimientos
//  3. hasta 10 productos en alerta (quantity <= stock_min)
//  4. actividad por usuario de los últimos 7 días
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	statsCh := async(func() (repository.InventoryStats, error) { return uc.reports.GetStats(ctx) })
	lowCh := async(func() (int, error) { return uc.products.CountLowStock(ctx) })
	outCh := async(func() (int, error) { return uc.reports.CountOutOfStock(ctx) })
	recentCh := async(func() ([]*entity.InventoryMovement, error) {
		return uc.movements.List(ctx, repository.MovementFilter{}, dashboardRecentMovements, 0)
	})
	alertCh := async(func() ([]*entity.Product, error) {
		return uc.reports.ListAlertProducts(ctx, dashboardAlertProducts)
	})
	activityCh := async(func() ([]repository.UserActivity, error) {
		return uc.reports.UserActivity(ctx, userActivityDays)
	})

	stats, low, out := <-statsCh, <-lowCh, <-outCh
	recent, alerts, activity := <-recentCh, <-alertCh, <-activityCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: estadísticas: %w", stats.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: sin stock: %w", out.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}
	if activity.err != nil {
		return nil, fmt.Errorf("dashboard: actividad: %w", activity.err)
	}

	res := &dto.DashboardDTO{
		Stats: dto.DashboardStatsDTO{
			TotalProducts:   stats.val.TotalProducts,
			TotalItems:      stats.val.TotalQuantity,
			TotalValue:      stats.val.TotalValue.Round(2),
			LowStockCount:   low.val,
			OutOfStockCount: out.val,
		},
		RecentMovements: make([]dto.MovementResponse, 0, len(recent.val)),
		AlertProducts:   make([]dto.AlertProductDTO, 0, len(alerts.val)),
		UserActivity:    toUserActivity(activity.val),
	}
	for _, m := range recent.val {
		res.RecentMovements = append(res.RecentMovements, appinv.ToMovementResponse(m))
	}
	for _, p := range alerts.val {
		res.AlertProducts = append(res.AlertProducts, dto.AlertProductDTO{
			ID:         p.ID,
			Name:       p.Name,
			Category:   p.Category,
			Quantity:   p.Quantity,
			StockMin:   p.StockMin,
			AlertLevel: inventory.AlertLevel(p.Quantity, p.StockMin),
		})
	}
	return res, nil
}

func toUserActivity(list []repository.UserActivity) []dto.UserActivityDTO {
	out := make([]dto.UserActivityDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.UserActivityDTO{Username: a.Username, MovementCount: a.MovementCount})
	}
	return out
}
