package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/Villegascvrr/entalpiamvp-sub000/internal/application/session"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/fixture"
	httpiface "github.com/Villegascvrr/entalpiamvp-sub000/internal/interfaces/http"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/jwt"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/logger"
)

const testSecret = "secreto-de-test"

func testApp() *fiber.App {
	store := fixture.NewStore(0)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	resolver := appsession.NewResolver(fixture.NewActorRepository(store), log, "")

	app := fiber.New()
	protected := app.Group("/", httpiface.AuthMiddleware(testSecret, resolver))
	protected.Get("/whoami", func(c *fiber.Ctx) error {
		s := httpiface.GetSession(c)
		return c.JSON(fiber.Map{"actor_id": s.ActorID, "role": s.Role, "resolved_by_email": s.ResolvedByEmail})
	})
	protected.Get("/staff", httpiface.RequireRole(entity.RoleAdmin, entity.RoleCommercial), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := testApp()
	resp, body := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := testApp()
	resp, body := doRequest(t, app, "no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := testApp()
	token, err := jwt.Generate("otro-secreto", "actor-admin", "admin@entalpia.example", "test", 5)
	require.NoError(t, err)
	resp, _ := doRequest(t, app, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SesionResuelta(t *testing.T) {
	app := testApp()
	token, err := jwt.Generate(testSecret, "actor-admin", "admin@entalpia.example", "test", 5)
	require.NoError(t, err)

	resp, body := doRequest(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "actor-admin", body["actor_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// Token válido cuyo auth_id no resuelve a ningún actor: autenticado pero
// no autorizado, 403 y no 401.
func TestAuthMiddleware_SinPerfil(t *testing.T) {
	app := testApp()
	token, err := jwt.Generate(testSecret, "auth-fantasma", "", "test", 5)
	require.NoError(t, err)

	resp, body := doRequest(t, app, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NO_PROFILE", body["code"])
}

// El actor con drift de auth_id entra igualmente gracias al fallback por
// email, y la sesión lo deja marcado.
func TestAuthMiddleware_FallbackPorEmail(t *testing.T) {
	app := testApp()
	token, err := jwt.Generate(testSecret, "auth-nueva-999", "pedidos@nunez.example", "test", 5)
	require.NoError(t, err)

	resp, body := doRequest(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "actor-drift", body["actor_id"])
	assert.Equal(t, true, body["resolved_by_email"])
}

func TestRequireRole(t *testing.T) {
	app := testApp()

	staffReq := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	admin, err := jwt.Generate(testSecret, "actor-admin", "admin@entalpia.example", "test", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, staffReq(admin))

	comm, err := jwt.Generate(testSecret, "actor-comm", "comercial@entalpia.example", "test", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, staffReq(comm))

	cust, err := jwt.Generate(testSecret, "actor-cust", "compras@vega.example", "test", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, staffReq(cust))
}
