package handler_test

import (
	"context"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizApp(svc *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/quizzes", handler.NewQuizHandler(svc).NextQuestion)
	return app
}

func TestQuizHandler_NextQuestion(t *testing.T) {
	t.Run("StringCategoryID", func(t *testing.T) {
		svc := &MockQuizService{NextQuestionFunc: func(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
			assert.Equal(t, int64(1), req.CategoryID())
			assert.Equal(t, []int64{20, 21}, req.PreviousQuestions)
			return &dto.QuizResponse{
				Success:           true,
				Question:          &dto.QuestionResponse{ID: 22, Question: "Q", Answer: "A", Difficulty: 1, Category: 1},
				PreviousQuestions: req.PreviousQuestions,
			}, nil
		}}

		resp, err := newQuizApp(svc).Test(jsonRequest("POST", "/quizzes",
			`{"previous_questions":[20,21],"quiz_category":{"type":"Science","id":"1"}}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := readJSON(t, resp)
		question := body["question"].(map[string]interface{})
		assert.Equal(t, float64(22), question["id"])
	})

	t.Run("Exhausted", func(t *testing.T) {
		svc := &MockQuizService{NextQuestionFunc: func(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
			return &dto.QuizResponse{Success: true, PreviousQuestions: req.PreviousQuestions}, nil
		}}

		resp, err := newQuizApp(svc).Test(jsonRequest("POST", "/quizzes",
			`{"previous_questions":[1],"quiz_category":{"type":"click","id":0}}`))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := readJSON(t, resp)
		assert.Contains(t, body, "question")
		assert.Nil(t, body["question"])
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		svc := &MockQuizService{NextQuestionFunc: func(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
			return nil, domain.NewCategoryNotFoundError(req.CategoryID())
		}}

		resp, err := newQuizApp(svc).Test(jsonRequest("POST", "/quizzes", `{"quiz_category":{"id":1000}}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadCategoryID", func(t *testing.T) {
		resp, err := newQuizApp(&MockQuizService{}).Test(jsonRequest("POST", "/quizzes", `{"quiz_category":{"id":"science"}}`))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
