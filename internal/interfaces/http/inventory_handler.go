package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// InventoryHandler historial de movimientos (protegido, solo lectura).
type InventoryHandler struct {
	uc *inventory.MovementQueryUseCase
	v  validator.Validator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementQueryUseCase, v validator.Validator) *InventoryHandler {
	return &InventoryHandler{uc: uc, v: v}
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Más recientes primero, 50 por página. Fechas en formato YYYY-MM-DD, ambos extremos inclusive.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página (desde 1)"
// @Param        product        query  string  false  "Nombre del producto (parcial)"
// @Param        movement_type  query  string  false  "entrada, salida, ajuste, creacion o eliminacion"
// @Param        date_from      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	// page no numérico cae a 1 en lugar de fallar como haría QueryParser.
	q := dto.MovementQuery{
		Page:         c.QueryInt("page", 1),
		Product:      c.Query("product"),
		MovementType: c.Query("movement_type"),
		DateFrom:     c.Query("date_from"),
		DateTo:       c.Query("date_to"),
	}
	if err := validate(c, h.v, q); err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
