package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
)

// InventoryStats estadísticas globales del inventario.
type InventoryStats struct {
	TotalProducts int
	TotalQuantity int
	AvgPrice      decimal.Decimal
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
	TotalValue    decimal.Decimal // Σ quantity × price
}

// GroupRollup agregado por categoría o proveedor.
type GroupRollup struct {
	Key           string
	ProductCount  int
	TotalQuantity int
	AvgPrice      decimal.Decimal
	TotalValue    decimal.Decimal
}

// TrendPoint movimientos de un día de calendario.
type TrendPoint struct {
	Date          time.Time
	MovementCount int
	TotalEntries  int // Σ quantity_change de entradas
	TotalExits    int // Σ |quantity_change| de salidas
}

// MovedProduct producto con más movimientos (agrupado por snapshot de nombre).
type MovedProduct struct {
	ProductName   string
	MovementCount int
	TotalMoved    int // Σ |quantity_change|
}

// UserActivity movimientos registrados por usuario.
type UserActivity struct {
	Username      string
	MovementCount int
}

// ReportRepository consultas de solo lectura del motor de agregación.
// Cada método es una consulta independiente; no hay atomicidad entre métricas.
type ReportRepository interface {
	GetStats(ctx context.Context) (InventoryStats, error)
	CountOutOfStock(ctx context.Context) (int, error)
	// ListLowStock quantity < stock_min, por quantity ascendente.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// ListOutOfStock quantity = 0, por nombre.
	ListOutOfStock(ctx context.Context) ([]*entity.Product, error)
	// ListAlertProducts quantity <= stock_min, por quantity ascendente.
	ListAlertProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	// CategoryRollup excluye la categoría vacía; por número de productos desc.
	CategoryRollup(ctx context.Context) ([]GroupRollup, error)
	ProviderRollup(ctx context.Context) ([]GroupRollup, error)
	TopValueProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	RecentProducts(ctx context.Context, days int) ([]*entity.Product, error)
	// MovementTrends solo días con movimientos dentro de la ventana.
	MovementTrends(ctx context.Context, days int) ([]TrendPoint, error)
	MostMovedProducts(ctx context.Context, limit int) ([]MovedProduct, error)
	UserActivity(ctx context.Context, days int) ([]UserActivity, error)
	// StockDistribution conteo por bucket (claves de domain/inventory).
	StockDistribution(ctx context.Context) (map[string]int, error)
}
