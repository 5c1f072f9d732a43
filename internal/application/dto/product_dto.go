package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. StockMin nil = 5.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	SKU      string          `json:"sku" validate:"max=64"`
	Category string          `json:"category" validate:"max=100"`
	Quantity int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Provider string          `json:"provider" validate:"max=200"`
	StockMin *int            `json:"stock_min" validate:"omitempty,gte=0,lte=2147483647"`
}

// UpdateProductRequest reemplazo completo de los campos editables.
type UpdateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	SKU      string          `json:"sku" validate:"max=64"`
	Category string          `json:"category" validate:"max=100"`
	Quantity int             `json:"quantity" validate:"gte=0,lte=2147483647"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Provider string          `json:"provider" validate:"max=200"`
	StockMin int             `json:"stock_min" validate:"gte=0,lte=2147483647"`
}

// Operaciones de ajuste rápido.
const (
	AdjustAdd      = "add"
	AdjustSubtract = "subtract"
)

// AdjustStockRequest ajuste rápido de existencias.
type AdjustStockRequest struct {
	Operation string `json:"operation" validate:"required,oneof=add subtract"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=2147483647"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         *string         `json:"sku"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Provider    string          `json:"provider"`
	StockMin    int             `json:"stock_min"`
	TotalValue  decimal.Decimal `json:"total_value"`
	StockStatus string          `json:"stock_status"` // critical | warning | normal
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos con el contador de stock bajo.
type ProductListResponse struct {
	Items         []ProductResponse `json:"items"`
	Pagination    Pagination        `json:"pagination"`
	LowStockCount int               `json:"low_stock_count"`
	Search        string            `json:"search,omitempty"`
}
