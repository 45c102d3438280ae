package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/facturapp-api/internal/interfaces/http"
)

func TestRateLimitMiddleware_BloqueaAlSuperarLaTasa(t *testing.T) {
	l, err := apphttp.NewRateLimiter("2-M")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RateLimitMiddleware(l))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	for i := 0; i < 2; i++ {
		resp := doGet(t, app, "/ping", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "petición %d", i+1)
		assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
		resp.Body.Close()
	}

	resp := doGet(t, app, "/ping", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestNewRateLimiter_FormatoInvalido(t *testing.T) {
	_, err := apphttp.NewRateLimiter("cien-por-minuto")
	assert.Error(t, err)
}
