package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/packstock-api/internal/interfaces/http"
	"github.com/jhoicas/packstock-api/pkg/logger"
	pkgjwt "github.com/jhoicas/packstock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAdminID   = "00000000-0000-0000-0000-000000000001"
	testUsername  = "tendero"
	testIssuer    = "packstock-test"
	testExpMin    = 60
)

// adminSet implementa AdminChecker con un conjunto fijo de ids.
type adminSet struct {
	ids map[string]bool
	err error
}

func (a adminSet) Exists(_ context.Context, id string) (bool, error) {
	return a.ids[id], a.err
}

// buildTestApp app mínima con AuthMiddleware y un handler que devuelve los locals.
func buildTestApp(admins apphttp.AdminChecker) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret, admins), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"admin_id": apphttp.GetAdminID(c),
			"username": c.Locals(apphttp.LocalUsername),
		})
	})
	return app
}

func bearer(t *testing.T, adminID string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, adminID, testUsername, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func knownAdmin() adminSet {
	return adminSet{ids: map[string]bool{testAdminID: true}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	resp := doRequest(t, buildTestApp(knownAdmin()), bearer(t, testAdminID, testExpMin))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAdminID, body["admin_id"])
	assert.Equal(t, testUsername, body["username"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	expired := bearer(t, testAdminID, -1)
	tests := []struct {
		name     string
		header   string
		admins   adminSet
		wantCode string
	}{
		{"sin header", "", knownAdmin(), "MISSING_TOKEN"},
		{"formato inválido", "Token abc", knownAdmin(), "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", knownAdmin(), "INVALID_TOKEN"},
		{"token expirado", expired, knownAdmin(), "INVALID_TOKEN"},
		{"administrador eliminado", bearer(t, testAdminID, testExpMin), adminSet{}, "ADMIN_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(tt.admins), tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.wantCode)
		})
	}
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testAdminID, testUsername, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(knownAdmin()), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ErrorDeBD(t *testing.T) {
	admins := adminSet{err: errors.New("conexión rechazada")}
	resp := doRequest(t, buildTestApp(admins), bearer(t, testAdminID, testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "conexión rechazada", "los 5xx no exponen detalle interno")
}
