package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/facturapp-api/internal/application/analytics"
)

// DashboardHandler reportes de solo lectura de una tienda.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview devuelve las cuatro vistas calculadas en paralelo.
// GET /api/shops/:shopId/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen del día
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/shops/{shopId}/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesLast7Days godoc
// @Summary      Ventas de los últimos 7 días (sin huecos)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.SalesSeriesDTO
// @Router       /api/shops/{shopId}/dashboard/sales-7-days [get]
func (h *DashboardHandler) SalesLast7Days(c *fiber.Ctx) error {
	out, err := h.uc.SalesLast7Days(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlySales godoc
// @Summary      Ventas de los últimos 12 meses
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.SalesSeriesDTO
// @Router       /api/shops/{shopId}/dashboard/monthly-sales [get]
func (h *DashboardHandler) MonthlySales(c *fiber.Ctx) error {
	out, err := h.uc.MonthlySales(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con existencia baja
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        shopId     path   string  true   "ID de la tienda"
// @Param        threshold  query  int     false  "Umbral (por defecto el configurado)"
// @Success      200  {object}  dto.LowStockListDTO
// @Router       /api/shops/{shopId}/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	threshold := int64(c.QueryInt("threshold", 0))
	out, err := h.uc.LowStock(c.UserContext(), c.Params("shopId"), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
