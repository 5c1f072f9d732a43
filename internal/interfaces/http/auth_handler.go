package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-scomm/internal/application/auth"
	"github.com/jhoicas/inventario-scomm/internal/application/dto"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc *auth.AuthUseCase
	v  validator.Validator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, v validator.Validator) *AuthHandler {
	return &AuthHandler{uc: uc, v: v}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validate(c, h.v, in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
