package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalPrincipal = "principal"
	LocalUserID    = "user_id"
)

// AuthMiddleware valida el Bearer Token JWT y deja el Principal (email, nombre) en c.Locals.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		// fasthttp recorta los espacios finales: "Bearer   " llega como "Bearer".
		if strings.EqualFold(authHeader, "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		principal, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad del token (después de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) jwt.Principal {
	p, _ := c.Locals(LocalPrincipal).(jwt.Principal)
	return p
}

type userResolver interface {
	Me(ctx context.Context, email string) (*dto.UserResponse, error)
}

// CurrentUser resuelve el ID local del principal. Si el usuario aún no existe
// responde 404 USER_NOT_PROVISIONED: el cliente debe llamar antes a POST /api/users/ensure.
func CurrentUser(users userResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.Email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad requerida"})
		}
		u, err := users.Me(c.UserContext(), p.Email)
		if err != nil {
			if status, _ := errorBody(err); status == fiber.StatusNotFound {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_PROVISIONED", Message: "usuario no registrado"})
			}
			return respondError(c, err)
		}
		c.Locals(LocalUserID, u.ID)
		return c.Next()
	}
}

// GetUserID devuelve el ID local del usuario (después de CurrentUser).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

type shopAccessChecker interface {
	CanAccess(ctx context.Context, shopID, userID string) error
}

// RequireShopAccess exige que el usuario sea dueño o miembro de la tienda :shopId.
func RequireShopAccess(shops shopAccessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID := c.Params("shopId")
		if shopID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "shopId es requerido"})
		}
		if err := shops.CanAccess(c.UserContext(), shopID, GetUserID(c)); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}
