package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/application/dto"
)

// InvoiceHandler facturas y sus pagos. El acceso se verifica en los casos de uso
// (creador de la factura o miembro de su tienda).
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	payments *billing.PaymentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, payments *billing.PaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments}
}

// Create godoc
// @Summary      Crear factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Nombre y tienda opcional"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if shopID := c.Params("shopId"); shopID != "" {
		in.ShopID = shopID
	}
	out, err := h.invoices.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Facturas del usuario
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.invoices.ListForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListForShop godoc
// @Summary      Facturas de la tienda
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        shopId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/shops/{shopId}/invoices [get]
func (h *InvoiceHandler) ListForShop(c *fiber.Ctx) error {
	out, err := h.invoices.ListForShop(c.UserContext(), c.Params("shopId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener factura con líneas y totales
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura (6 hex)"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar factura completa (cabecera y líneas)
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.SaveInvoiceRequest  true  "Factura"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invoices.Save(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPayment godoc
// @Summary      Registrar un pago
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.RecordPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordPayment(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Historial de pagos de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.PaymentListResponse
// @Router       /api/invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.ListPayments(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
