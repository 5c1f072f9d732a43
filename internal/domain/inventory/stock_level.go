// Package inventory contiene reglas puras de clasificación de stock.
package inventory

// Nivel de alerta del dashboard.
const (
	AlertCritical = "critical" // sin existencias
	AlertWarning  = "warning"  // por debajo del mínimo
	AlertNormal   = "normal"
)

// Buckets de la distribución de stock del reporte.
const (
	BucketSinStock    = "sin_stock"
	BucketStockBajo   = "stock_bajo"
	BucketStockNormal = "stock_normal"
	BucketStockAlto   = "stock_alto"
)

// BucketLabels etiqueta visible de cada bucket, en orden de presentación.
var BucketLabels = []struct {
	Key   string
	Label string
}{
	{BucketSinStock, "Sin stock"},
	{BucketStockBajo, "Stock bajo"},
	{BucketStockNormal, "Stock normal"},
	{BucketStockAlto, "Stock alto"},
}

// AlertLevel clasifica un producto en tres niveles: critical (0),
// warning (< mínimo) o normal.
func AlertLevel(quantity, stockMin int) string {
	switch {
	case quantity == 0:
		return AlertCritical
	case quantity < stockMin:
		return AlertWarning
	default:
		return AlertNormal
	}
}

// Bucket clasifica un producto en cuatro buckets; stock normal es < 2× mínimo.
func Bucket(quantity, stockMin int) string {
	switch {
	case quantity == 0:
		return BucketSinStock
	case quantity < stockMin:
		return BucketStockBajo
	case quantity < stockMin*2:
		return BucketStockNormal
	default:
		return BucketStockAlto
	}
}

// IsLowStock criterio estricto del conteo de stock bajo (quantity < stock_min).
func IsLowStock(quantity, stockMin int) bool {
	return quantity < stockMin
}

// NeedsAttention criterio inclusivo de alertas y del reporte low_stock
// (quantity <= stock_min).
func NeedsAttention(quantity, stockMin int) bool {
	return quantity <= stockMin
}

// Deficit unidades faltantes para llegar al mínimo (puede ser 0).
func Deficit(quantity, stockMin int) int {
	return stockMin - quantity
}
