package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// Niveles de stock del reporte general.
const (
	StockLevelLow  = "low"  // quantity <= stock_min
	StockLevelHigh = "high" // quantity > 2 × stock_min
)

// CustomReportFilter filtros del constructor de reportes. Cada forma usa solo
// los que le aplican.
type CustomReportFilter struct {
	Category   string
	Provider   string
	StockLevel string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// LowStockRow fila del reporte low_stock.
type LowStockRow struct {
	Name     string
	Category string
	Quantity int
	StockMin int
	Provider string
	Deficit  int
}

// PeriodMovementRow fila del reporte movements_by_period.
type PeriodMovementRow struct {
	CreatedAt      time.Time
	ProductName    string
	Category       string
	MovementType   string
	QuantityChange int
	Reason         string
	Username       string
}

// GroupValueRow fila de inventory_by_category y value_by_provider.
type GroupValueRow struct {
	Key           string
	TotalProducts int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// CustomReportRepository una consulta por forma de reporte. La vista
// interactiva y la exportación llaman al mismo método.
type CustomReportRepository interface {
	InventoryByCategory(ctx context.Context, f CustomReportFilter) ([]GroupValueRow, error)
	LowStock(ctx context.Context, f CustomReportFilter) ([]LowStockRow, error)
	MovementsByPeriod(ctx context.Context, f CustomReportFilter) ([]PeriodMovementRow, error)
	ValueByProvider(ctx context.Context, f CustomReportFilter) ([]GroupValueRow, error)
	General(ctx context.Context, f CustomReportFilter) ([]*entity.Product, error)
}
