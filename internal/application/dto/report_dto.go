package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStatsDTO estadísticas globales.
type InventoryStatsDTO struct {
	TotalProducts int             `json:"total_products"`
	TotalQuantity int             `json:"total_quantity"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	MinPrice      decimal.Decimal `json:"min_price"`
	MaxPrice      decimal.Decimal `json:"max_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// GroupRollupDTO agregado por categoría o proveedor.
type GroupRollupDTO struct {
	Name          string          `json:"name"`
	ProductCount  int             `json:"product_count"`
	TotalQuantity int             `json:"total_quantity"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// TrendPointDTO movimientos de un día.
type TrendPointDTO struct {
	Date          string `json:"date"` // YYYY-MM-DD
	MovementCount int    `json:"movement_count"`
	TotalEntries  int    `json:"total_entries"`
	TotalExits    int    `json:"total_exits"`
}

// MovedProductDTO producto con más movimientos.
type MovedProductDTO struct {
	ProductName   string `json:"product_name"`
	MovementCount int    `json:"movement_count"`
	TotalMoved    int    `json:"total_moved"`
}

// StockBucketDTO un bucket de la distribución de stock.
type StockBucketDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReportsDTO respuesta de GET /api/reports.
type ReportsDTO struct {
	Stats             InventoryStatsDTO `json:"stats"`
	LowStock          []ProductResponse `json:"low_stock"`
	OutOfStock        []ProductResponse `json:"out_of_stock"`
	Categories        []GroupRollupDTO  `json:"categories"`
	Providers         []GroupRollupDTO  `json:"providers"`
	TopValue          []ProductResponse `json:"top_value"`
	RecentProducts    []ProductResponse `json:"recent_products"`
	MovementTrends    []TrendPointDTO   `json:"movement_trends"`
	MostMoved         []MovedProductDTO `json:"most_moved"`
	StockDistribution []StockBucketDTO  `json:"stock_distribution"`
}

// CustomReportRequest parámetros del constructor de reportes.
type CustomReportRequest struct {
	ReportType string `json:"report_type"`
	Category   string `json:"category" validate:"max=100"`
	Provider   string `json:"provider" validate:"max=200"`
	StockLevel string `json:"stock_level" validate:"omitempty,oneof=low high"`
	DateFrom   string `json:"date_from" validate:"isodate"`
	DateTo     string `json:"date_to" validate:"isodate"`
	Format     string `json:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

// ReportColumnDTO columna de un reporte: clave JSON y encabezado de exportación.
type ReportColumnDTO struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// CustomReportResponse resultado interactivo de un reporte personalizado.
type CustomReportResponse struct {
	ReportType  string              `json:"report_type"`
	Title       string              `json:"title"`
	Columns     []ReportColumnDTO   `json:"columns"`
	Rows        []map[string]any    `json:"rows"`
	Total       int                 `json:"total"`
	Message     string              `json:"message,omitempty"`
	Filters     CustomReportRequest `json:"filters"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ReportOptionsDTO valores disponibles para los filtros.
type ReportOptionsDTO struct {
	Categories  []string `json:"categories"`
	Providers   []string `json:"providers"`
	ReportTypes []string `json:"report_types"`
}
