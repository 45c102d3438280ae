package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/application/usecase"
)

// ShopHandler tiendas y sus miembros.
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda (el usuario queda como dueño)
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShopRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.ShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Tiendas del usuario (dueño o miembro)
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId} [get]
func (h *ShopHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tienda (solo dueño)
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        body    body  dto.ShopRequest  true  "Datos de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId} [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.ShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("shopId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tienda con todo su contenido (solo dueño)
// @Tags         shops
// @Security     Bearer
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId} [delete]
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("shopId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMember godoc
// @Summary      Agregar miembro por email (solo dueño)
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        body    body  dto.AddMemberRequest  true  "Email del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/members [post]
func (h *ShopHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddMember(c.UserContext(), GetUserID(c), c.Params("shopId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMembers godoc
// @Summary      Miembros de la tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.MemberListResponse
// @Router       /api/shops/{shopId}/members [get]
func (h *ShopHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListMembers(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
