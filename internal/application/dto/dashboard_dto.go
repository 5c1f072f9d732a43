package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO totales del inventario.
type DashboardStatsDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}

// AlertProductDTO producto en o bajo su mínimo.
type AlertProductDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Quantity   int    `json:"quantity"`
	StockMin   int    `json:"stock_min"`
	AlertLevel string `json:"alert_level"` // critical | warning | normal
}

// UserActivityDTO movimientos por usuario.
type UserActivityDTO struct {
	Username      string `json:"username"`
	MovementCount int    `json:"movement_count"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	Stats           DashboardStatsDTO  `json:"stats"`
	RecentMovements []MovementResponse `json:"recent_movements"`
	AlertProducts   []AlertProductDTO  `json:"alert_products"`
	UserActivity    []UserActivityDTO  `json:"user_activity"`
}
