package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"imc-donations/internal/config"
	"imc-donations/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-0123456789ab"

func newApp(handlers ...fiber.Handler) *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	chain := append([]fiber.Handler{AuthMiddleware(cfg)}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalRole).(string))
	})
	app.Get("/", chain...)
	return app
}

func get(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func token(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(7, "Ana", role, testSecret, expiry)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp()

	status, _ := get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := get(t, app, token(t, "Donor", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "expirado")

	status, body = get(t, app, token(t, "Donor", time.Hour))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Donor", body)
}

func TestRoleMiddleware(t *testing.T) {
	app := newApp(StaffOnly())

	status, _ := get(t, app, token(t, "Donor", time.Hour))
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = get(t, app, token(t, "Collaborator", time.Hour))
	assert.Equal(t, http.StatusOK, status)

	admin := newApp(AdminOnly())
	status, _ = get(t, admin, token(t, "Collaborator", time.Hour))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db password is hunter2") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "hunter2")
}

func TestNoStore(t *testing.T) {
	app := fiber.New()
	app.Get("/", NoStore(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}
