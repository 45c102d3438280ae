package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/application/usecase"
)

// UserHandler identidad local del usuario autenticado.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Ensure godoc
// @Summary      Registrar el usuario del token (idempotente)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnsureUserRequest  false  "Nombre a usar si el token no trae uno"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/ensure [post]
func (h *UserHandler) Ensure(c *fiber.Ctx) error {
	var in dto.EnsureUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	p := GetPrincipal(c)
	name := p.Name
	if in.Name != "" {
		name = in.Name
	}
	out, err := h.uc.EnsureUser(c.UserContext(), p.Email, name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetPrincipal(c).Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
