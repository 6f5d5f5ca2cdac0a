package apierror_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
)

func newTestApp(logs io.Writer) *fiber.App {
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	return fiber.New(fiber.Config{ErrorHandler: apierror.FiberErrorHandler(logger)})
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestFiberErrorHandler(t *testing.T) {
	t.Run("known kinds keep message and status", func(t *testing.T) {
		app := newTestApp(io.Discard)
		app.Get("/conflict", func(c *fiber.Ctx) error {
			return apierror.Conflict("Email already registered")
		})
		app.Get("/notfound", func(c *fiber.Ctx) error {
			return apierror.NotFound("Issue not found")
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email already registered", decodeBody(t, resp.Body)["error"])

		resp, err = app.Test(httptest.NewRequest("GET", "/notfound", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Issue not found", decodeBody(t, resp.Body)["error"])
	})

	t.Run("validation details are included", func(t *testing.T) {
		app := newTestApp(io.Discard)
		app.Get("/invalid", func(c *fiber.Ctx) error {
			return apierror.Validation("name is required", []string{"name is required"})
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/invalid", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, "name is required", body["error"])
		assert.Equal(t, []any{"name is required"}, body["details"])
	})

	t.Run("unmatched route returns 404", func(t *testing.T) {
		app := newTestApp(io.Discard)

		resp, err := app.Test(httptest.NewRequest("GET", "/no/such/route", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown errors are logged and hidden", func(t *testing.T) {
		var logs bytes.Buffer
		app := newTestApp(&logs)
		app.Get("/boom", func(c *fiber.Ctx) error {
			return errors.New("pq: connection refused at 10.0.0.5")
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, "Internal Server Error", body["error"])
		assert.NotContains(t, body["error"], "10.0.0.5")

		// Full detail goes to the server-side log.
		assert.Contains(t, logs.String(), "connection refused at 10.0.0.5")
	})
}
