package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
)

// respondError traduce un error de dominio a su respuesta HTTP.
// Los errores no reconocidos se registran y se devuelven como 500 sin detalle.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func errorBody(err error) (int, dto.ErrorResponse) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: vErr.Fields}
	case errors.Is(err, domain.ErrOverpayment):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "OVERPAYMENT", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"}
	case errors.Is(err, domain.ErrAlreadyPaid):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la factura ya está pagada"}
	case errors.Is(err, domain.ErrProductInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "PRODUCT_IN_USE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "TIMEOUT", Message: "tiempo de espera agotado"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
