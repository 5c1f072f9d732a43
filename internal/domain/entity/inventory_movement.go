package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementEntrada     = "entrada"
	MovementSalida      = "salida"
	MovementAjuste      = "ajuste"
	MovementCreacion    = "creacion"
	MovementEliminacion = "eliminacion"
)

// ValidMovementType indica si t pertenece al enum de movimientos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste, MovementCreacion, MovementEliminacion:
		return true
	}
	return false
}

// InventoryMovement fila inmutable del ledger. ProductID es una referencia
// blanda (sin FK); ProductName y Username son copias al momento de escribir.
type InventoryMovement struct {
	ID             string
	ProductID      string
	ProductName    string
	Type           string
	QuantityBefore int
	QuantityAfter  int
	QuantityChange int
	Reason         string
	UserID         string
	Username       string
	CreatedAt      time.Time
}
