package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturapp-api/internal/application/dto"
	"github.com/jhoicas/facturapp-api/internal/domain"
	apphttp "github.com/jhoicas/facturapp-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/facturapp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "facturapp-test"
	testEmail     = "awa@boutique.sn"
	testName      = "Awa Diop"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testExpMin    = 60
)

// fakeUsers resuelve emails a IDs locales.
type fakeUsers map[string]string

func (f fakeUsers) Me(_ context.Context, email string) (*dto.UserResponse, error) {
	id, ok := f[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dto.UserResponse{ID: id, Email: email}, nil
}

// fakeShops devuelve el error configurado por tienda (nil = acceso permitido).
type fakeShops map[string]error

func (f fakeShops) CanAccess(_ context.Context, shopID, _ string) error {
	err, ok := f[shopID]
	if !ok {
		return domain.ErrNotFound
	}
	return err
}

func bearer(t *testing.T, email, name string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, email, name, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.AuthMiddleware(testJWTSecret, testIssuer), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"email": p.Email, "name": p.Name})
	})
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraePrincipal(t *testing.T) {
	resp := doGet(t, buildAuthApp(), "/whoami", bearer(t, "Awa@Boutique.SN", testName))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmail, body["email"], "el email se normaliza a minúsculas")
	assert.Equal(t, testName, body["name"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	otherIssuer, err := pkgjwt.Generate(testJWTSecret, testEmail, testName, "otro-emisor", testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testEmail, testName, testIssuer, -1)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"formato incorrecto", "Token abc", "INVALID_TOKEN"},
		{"token vacío", "Bearer   ", "MISSING_TOKEN"},
		{"solo el esquema", "bearer", "MISSING_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"otro emisor", "Bearer " + otherIssuer, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, buildAuthApp(), "/whoami", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentUser y RequireShopAccess
// ──────────────────────────────────────────────────────────────────────────────

func buildShopApp(users fakeUsers, shops fakeShops) *fiber.App {
	app := fiber.New()
	app.Get("/shops/:shopId",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.CurrentUser(users),
		apphttp.RequireShopAccess(shops),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func TestCurrentUser_ResuelveIDLocal(t *testing.T) {
	app := buildShopApp(fakeUsers{testEmail: testUserID}, fakeShops{"s1": nil})
	resp := doGet(t, app, "/shops/s1", bearer(t, testEmail, testName))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

func TestCurrentUser_UsuarioNoRegistrado(t *testing.T) {
	app := buildShopApp(fakeUsers{}, fakeShops{"s1": nil})
	resp := doGet(t, app, "/shops/s1", bearer(t, testEmail, testName))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "USER_NOT_PROVISIONED")
}

func TestRequireShopAccess(t *testing.T) {
	users := fakeUsers{testEmail: testUserID}
	shops := fakeShops{"propia": nil, "ajena": domain.ErrForbidden}

	cases := []struct {
		shop   string
		status int
	}{
		{"propia", http.StatusOK},
		{"ajena", http.StatusForbidden},
		{"inexistente", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.shop, func(t *testing.T) {
			resp := doGet(t, buildShopApp(users, shops), "/shops/"+tc.shop, bearer(t, testEmail, testName))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
