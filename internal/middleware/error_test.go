package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"trivia-api/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func decodeBody(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.NewNotFoundError("nothing here"), 404, "NOT_FOUND"},
		{"question not found", domain.NewQuestionNotFoundError(9), 404, "QUESTION_NOT_FOUND"},
		{"category not found", domain.NewCategoryNotFoundError(9), 404, "CATEGORY_NOT_FOUND"},
		{"invalid category", domain.NewInvalidCategoryError(9), 422, "INVALID_CATEGORY"},
		{"unprocessable", domain.NewUnprocessableError("db down", errors.New("dial tcp")), 422, "UNPROCESSABLE"},
		{"invalid input", domain.NewInvalidInputError("bad json"), 400, "INVALID_INPUT"},
		{"internal", domain.NewInternalError("boom", nil), 500, "INTERNAL_ERROR"},
		{"wrapped domain error", wrapError(domain.NewQuestionNotFoundError(1)), 404, "QUESTION_NOT_FOUND"},
		{"fiber error", fiber.NewError(fiber.StatusTooManyRequests, "Too Many Requests"), 429, "HTTP_ERROR"},
		{"unknown", errors.New("kaboom"), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := decodeBody(t, newErrorApp(tt.err), "/fail")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tt.status), body["error"])
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func wrapError(err error) error {
	return errors.Join(errors.New("while deleting"), err)
}

func TestErrorHandler_Details(t *testing.T) {
	_, body := decodeBody(t, newErrorApp(domain.NewQuestionNotFoundError(12)), "/fail")

	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), details["question_id"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	err := domain.ValidationErrors{
		domain.NewMissingFieldError("question"),
		domain.NewOutOfRangeError("difficulty", 9, 1, 5),
	}

	status, body := decodeBody(t, newErrorApp(err), "/fail")

	assert.Equal(t, 422, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 2)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "question", first["field"])
	assert.Equal(t, "MISSING_FIELD", first["code"])
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})

	status, body := decodeBody(t, app, "/nope")

	assert.Equal(t, 404, status)
	assert.Equal(t, "HTTP_ERROR", body["code"])
}
