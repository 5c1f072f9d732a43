package dto

import "time"

// MovementQuery filtros del historial tal como llegan por query string.
type MovementQuery struct {
	Page         int    `query:"page" json:"page"`
	Product      string `query:"product" json:"product"`
	MovementType string `query:"movement_type" json:"movement_type" validate:"omitempty,oneof=entrada salida ajuste creacion eliminacion"`
	DateFrom     string `query:"date_from" json:"date_from" validate:"isodate"`
	DateTo       string `query:"date_to" json:"date_to" validate:"isodate"`
}

// MovementResponse fila del ledger.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	MovementType   string    `json:"movement_type"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse página del historial con los filtros aplicados.
type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Pagination Pagination         `json:"pagination"`
	Filters    MovementQuery      `json:"filters"`
}
