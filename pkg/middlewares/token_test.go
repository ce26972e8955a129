package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"
	t_token "engagement_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(h fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(errprocess.StatusCode(err)).SendString(errprocess.Message(err))
		},
	})
	app.Get("/", h, func(c *fiber.Ctx) error {
		return c.SendString("user=" + UserID(c))
	})
	return app
}

func body(t *testing.T, resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestJWTMiddleware(t *testing.T) {
	logger.SetNewNop()
	app := newApp(JWTMiddleware())

	tokenStr, err := t_token.GenerateJWT("user-1", "test")
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "user=user-1", body(t, resp))
	})

	t.Run("query", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?auth="+tokenStr, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieToken, Value: tokenStr})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "missing token", body(t, resp))
	})

	t.Run("invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer broken")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestOptionalJWTMiddleware(t *testing.T) {
	logger.SetNewNop()
	app := newApp(OptionalJWTMiddleware())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user=", body(t, resp))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "user=", body(t, resp))

	tokenStr, err := t_token.GenerateJWT("user-2", "test")
	require.NoError(t, err)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?auth="+tokenStr, nil))
	require.NoError(t, err)
	assert.Equal(t, "user=user-2", body(t, resp))
}
