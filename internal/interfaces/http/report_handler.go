package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-scomm/internal/application/analytics"
	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// ReportHandler reportes agregados y reportes personalizados.
type ReportHandler struct {
	reports *appanalytics.ReportsUseCase
	custom  *report.CustomReportUseCase
	v       validator.Validator
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appanalytics.ReportsUseCase, custom *report.CustomReportUseCase, v validator.Validator) *ReportHandler {
	return &ReportHandler{reports: reports, custom: custom, v: v}
}

// Get godoc
// @Summary      Reportes agregados
// @Description  Estadísticas, rollups por categoría y proveedor, tendencias de 30 días, top por valor, más movidos y distribución de stock.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportsDTO
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.reports.GetReports(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Options godoc
// @Summary      Opciones de filtros para reportes personalizados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportOptionsDTO
// @Router       /api/reports/custom/options [get]
func (h *ReportHandler) Options(c *fiber.Ctx) error {
	out, err := h.custom.Options(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Custom godoc
// @Summary      Reporte personalizado
// @Description  report_type inventory_by_category, low_stock, movements_by_period, value_by_provider o general (por defecto).
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomReportRequest  true  "Tipo y filtros"
// @Success      200   {object}  dto.CustomReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/custom [post]
func (h *ReportHandler) Custom(c *fiber.Ctx) error {
	in, err := h.parseCustom(c)
	if in == nil {
		return err
	}
	out, err := h.custom.Run(c.Context(), *in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte personalizado
// @Description  format csv (por defecto), xlsx o pdf. Nombre reporte_{tipo}_{YYYYMMDD_HHMMSS}.{ext}, donde tipo es el report_type resuelto: uno desconocido o vacío exporta general con nombre reporte_general_….
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      octet-stream
// @Param        body  body  dto.CustomReportRequest  true  "Tipo, filtros y formato"
// @Success      200   {file}  file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/custom/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	in, err := h.parseCustom(c)
	if in == nil {
		return err
	}
	file, err := h.custom.Export(c.Context(), *in)
	if err != nil {
		return writeError(c, err, "")
	}
	return sendFile(c, file)
}

// parseCustom devuelve nil y la respuesta ya escrita si el cuerpo no sirve.
func (h *ReportHandler) parseCustom(c *fiber.Ctx) (*dto.CustomReportRequest, error) {
	var in dto.CustomReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return nil, invalidBody(c)
		}
	}
	if err := validate(c, h.v, in); err != nil {
		return nil, err
	}
	return &in, nil
}
