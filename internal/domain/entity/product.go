package entity

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. Se elimina físicamente; su
// historia sobrevive en el ledger a través del snapshot ProductName.
type Product struct {
	ID        string
	Name      string
	SKU       *string // opcional; único entre los valores no nulos
	Category  string
	Quantity  int
	Price     decimal.Decimal
	Provider  string
	StockMin  int
	CreatedAt time.Time
}

// MaxQuantity tope de quantity y stock_min (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// ValidQuantity cantidad dentro de [0, MaxQuantity].
func ValidQuantity(n int) bool {
	return n >= 0 && n <= MaxQuantity
}

// Value devuelve quantity × price.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// NormalizeSKU recorta y pasa a mayúsculas; un SKU vacío se guarda como NULL.
func NormalizeSKU(raw string) *string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	return &s
}
