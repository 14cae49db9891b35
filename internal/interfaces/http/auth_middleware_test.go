package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
	testUserID    = int64(21)
	testEmail     = "ana@example.com"
)

// buildTestApp app mínima con RequireAuthenticated + RequireRole delante de un handler que
// devuelve la identidad.
func buildTestApp(allowed ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.RequireAuthenticated(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			id, _ := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{"ok": true, "id": id.ID, "email": id.Email, "role": int(id.Role)})
		},
	)
	return app
}

func accessToken(t *testing.T, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.GenerateAccess(testJWTSecret, testIssuer, testUserID, testEmail, int(role), time.Hour)
	require.NoError(t, err)
	return tok
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

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+accessToken(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(entity.RoleAdmin), body["role"])
}

func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+accessToken(t, entity.RoleCustomer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleCustomer)

	resp := doRequest(t, app, "Bearer "+accessToken(t, entity.RoleCustomer))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doRequest(t, app, "Bearer "+accessToken(t, entity.RoleSeller))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

func TestRequireRole_SinIdentidad_Retorna403(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(200) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthenticated_SinToken_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireAuthenticated_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireAuthenticated_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticated_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testJWTSecret, testIssuer, testUserID, testEmail, int(entity.RoleAdmin), -time.Minute)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticated_RefreshTokenNoSirve(t *testing.T) {
	tok, _, err := pkgjwt.GenerateRefresh(testJWTSecret, testIssuer, testUserID, "jti-1", time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticated_RolDesconocido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "Bearer "+accessToken(t, entity.Role(9)))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticated_CookieComoAlternativa(t *testing.T) {
	app := buildTestApp(entity.RoleCustomer)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: accessToken(t, entity.RoleCustomer)})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuthenticated_ExtraeIdentidad(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleSeller), "Bearer "+accessToken(t, entity.RoleSeller))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(testUserID), body["id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, float64(entity.RoleSeller), body["role"])
}
