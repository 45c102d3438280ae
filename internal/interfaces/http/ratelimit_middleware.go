package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
)

// NewRateLimiter construye un limitador en memoria a partir de una tasa con formato ulule ("120-M").
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimitMiddleware limita peticiones por IP de cliente.
func RateLimitMiddleware(l *limiter.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		lctx, err := l.Get(c.UserContext(), ip)
		if err != nil {
			log.Error().Err(err).Str("ip", ip).Msg("rate limit: no se pudo consultar el store")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			log.Warn().Str("ip", ip).Int64("limit", lctx.Limit).Msg("rate limit excedido")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
		}
		return c.Next()
	}
}
