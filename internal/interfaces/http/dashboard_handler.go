package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-scomm/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del panel principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve el resumen del inventario.
// GET /api/dashboard
//
// Respuesta: DashboardDTO (stats con conteos de stock bajo y agotado,
// recent_movements[10], alert_products[10], user_activity de 7 días).
// No requiere parámetros.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
