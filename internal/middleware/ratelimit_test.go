package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/middleware"
	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/ratelimit"
)

// keyApp records the key the middleware computed for each request.
func keyApp(userID string) (*fiber.App, *string) {
	var key string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		key = middleware.RateLimitKey(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &key
}

func TestRateLimitKeyPrefersUserID(t *testing.T) {
	app, key := keyApp("user-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "user:user-1", *key)
}

func TestRateLimitKeyUsesFirstForwardedEntry(t *testing.T) {
	app, key := keyApp("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "ip:203.0.113.9", *key)
}

func TestRateLimitKeyFallsBackToConnectionIP(t *testing.T) {
	app, key := keyApp("")

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, "ip:0.0.0.0", *key)
}

func TestRateLimitSetsHeadersOnSuccessAnd429(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New(fiber.Config{ErrorHandler: apierror.FiberErrorHandler(logger)})
	app.Use(middleware.RateLimit(ratelimit.New(1, time.Minute)))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}
