package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
)

// InventoryHandler libro de stock de una tienda.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ApplyMovements godoc
// @Summary      Aplicar un lote de movimientos (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Param        body    body  dto.ApplyMovementsRequest  true  "Movimientos"
// @Success      201  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/shops/{shopId}/stock/movements [post]
func (h *InventoryHandler) ApplyMovements(c *fiber.Ctx) error {
	var in dto.ApplyMovementsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Apply(c.UserContext(), c.Params("shopId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        shopId  path   string  true   "ID de la tienda"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/shops/{shopId}/stock/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.History(c.UserContext(), c.Params("shopId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
