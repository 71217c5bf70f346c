package middleware

import (
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(requestID(c)) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(RequestIDHeader)
	_, parseErr := ulid.ParseStrict(header)
	assert.NoError(t, parseErr)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, header, string(body))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(RequestIDHeader))
}

func TestRequestLogger_AppliesErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestID(), RequestLogger())
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NewQuestionNotFoundError(3) })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, 404, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(Metrics(m))
	app.Get("/api/categories/:id/questions", func(c *fiber.Ctx) error { return c.SendStatus(200) })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	for _, path := range []string{"/api/categories/1/questions", "/api/categories/2/questions", "/nowhere"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	out := rec.Body.String()

	assert.Contains(t, out, `trivia_http_requests_total{method="GET",route="/api/categories/:id/questions",status="200"} 2`)
	assert.Contains(t, out, `trivia_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.False(t, strings.Contains(out, `route="/api/categories/1/questions"`))
}
