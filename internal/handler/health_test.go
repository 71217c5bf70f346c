package handler_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"trivia-api/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	t.Run("AllUp", func(t *testing.T) {
		app := fiber.New()
		app.Get("/healthz", handler.NewHealthHandler(map[string]handler.HealthCheck{"database": ok, "redis": ok}).Health)

		resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := readJSON(t, resp)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("DatabaseDown", func(t *testing.T) {
		app := fiber.New()
		app.Get("/healthz", handler.NewHealthHandler(map[string]handler.HealthCheck{"database": down, "redis": ok}).Health)

		resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		body := readJSON(t, resp)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, map[string]interface{}{"database": "down", "redis": "up"}, body["components"])
	})
}
