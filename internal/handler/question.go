package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// pageParam reads ?page=, falling back to 1 when it is missing or not an integer.
func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// idParam reads a numeric path parameter. Anything that is not an integer matches no resource.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns one page of all questions together with every category
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestions(c.UserContext(), pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Adds a question to an existing category
// @Tags questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionRequest true "New question"
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Deletes a question and returns the requested page of the remaining ones
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return domain.NewNotFoundError("Question not found")
	}

	resp, err := h.service.DeleteQuestion(c.UserContext(), id, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchQuestions godoc
// @Summary Search questions
// @Description Case-insensitive substring search over question text
// @Tags questions
// @Accept json
// @Produce json
// @Param search body dto.SearchQuestionsRequest true "Search term"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /questions/search [post]
func (h *QuestionHandler) SearchQuestions(c *fiber.Ctx) error {
	var req dto.SearchQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SearchQuestions(c.UserContext(), &req, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestionsByCategory godoc
// @Summary List questions of a category
// @Description Returns one page of the questions in a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *QuestionHandler) ListQuestionsByCategory(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return domain.NewNotFoundError("Category not found")
	}

	resp, err := h.service.ListQuestionsByCategory(c.UserContext(), id, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
