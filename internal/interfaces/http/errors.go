package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// errorMapping traducción de un error de dominio a respuesta HTTP.
// Message vacío usa el texto del error.
type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrDuplicateSKU, fiber.StatusConflict, "DUPLICATE_SKU", ""},
	{domain.ErrUsernameTaken, fiber.StatusConflict, "DUPLICATE_USERNAME", "El nombre de usuario ya existe"},
	{domain.ErrSelfDelete, fiber.StatusConflict, "SELF_DELETE", "No puedes eliminar tu propia cuenta"},
	{domain.ErrAdminDelete, fiber.StatusForbidden, "ADMIN_DELETE", "No se puede eliminar a otro administrador por seguridad"},
	{domain.ErrLastUser, fiber.StatusConflict, "LAST_USER", "No se puede eliminar el último usuario del sistema"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Usuario o contraseña incorrectos"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", ""},
}

// writeError responde con el ErrorResponse correspondiente a err. notFound es
// el mensaje para domain.ErrNotFound.
func writeError(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFound})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// invalidBody cuerpo JSON que no se pudo convertir (números no numéricos incluidos).
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// validate corre las reglas de los tags; nil si pasa.
func validate(c *fiber.Ctx, v validator.Validator, in any) error {
	err := v.Validate(in)
	if err == nil {
		return nil
	}
	if validator.IsValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: validator.Messages(err),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
}
