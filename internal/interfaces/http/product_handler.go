package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/application/report"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

const productNotFound = "Producto no encontrado"

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc      *inventory.ProductUseCase
	reports *report.CustomReportUseCase
	v       validator.Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.ProductUseCase, reports *report.CustomReportUseCase, v validator.Validator) *ProductHandler {
	return &ProductHandler{uc: uc, reports: reports, v: v}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate(c, h.v, in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in, GetActor(c))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Más recientes primero, 50 por página. search busca en nombre, categoría, proveedor y SKU.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto libre"
// @Param        page    query  int     false  "Página (desde 1)"
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("search"), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Si cambia la cantidad se registra una entrada o salida en el historial.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate(c, h.v, in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in, GetActor(c))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste rápido de stock
// @Description  operation add o subtract; la resta no baja de cero.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "operation, quantity, reason"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *ProductHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate(c, h.v, in); err != nil {
		return err
	}
	out, err := h.uc.Adjust(c.Context(), c.Params("id"), in, GetActor(c))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetActor(c)); err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado exitosamente"})
}

// Export godoc
// @Summary      Exportar inventario completo
// @Tags         products
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file  "inventario.csv"
// @Router       /api/products/export [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	file, err := h.reports.ExportInventory(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return sendFile(c, file)
}

// sendFile responde con el archivo como adjunto. Attachment fija el tipo por
// extensión, así que el Content-Type del exportador va después.
func sendFile(c *fiber.Ctx, file *report.ExportFile) error {
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}
