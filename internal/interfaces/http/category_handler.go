package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/application/usecase"
)

// CategoryHandler categorías de una tienda. Las rutas pasan antes por RequireShopAccess.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        body    body  dto.CategoryRequest  true  "Nombre"
// @Success      201  {object}  dto.CategoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("shopId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/shops/{shopId}/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID de la categoría"
// @Param        body    body  dto.CategoryRequest  true  "Nombre"
// @Success      200  {object}  dto.CategoryResponse
// @Router       /api/shops/{shopId}/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("shopId"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría sin productos
// @Tags         categories
// @Security     Bearer
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        id      path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("shopId"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
