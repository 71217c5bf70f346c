package service

import (
	"context"
	"math/rand/v2"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// SelectionRecorder is notified of every quiz draw.
type SelectionRecorder interface {
	ObserveQuizSelection(served bool)
}

// QuizService picks the next quiz question
type QuizService interface {
	NextQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	recorder   SelectionRecorder
	intn       func(n int) int
}

// NewQuizService creates a quiz service drawing uniformly with math/rand/v2.
// recorder may be nil.
func NewQuizService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	recorder SelectionRecorder,
) QuizService {
	return &quizService{
		questions:  questions,
		categories: categories,
		recorder:   recorder,
		intn:       rand.IntN,
	}
}

// NextQuestion draws a question not in req.PreviousQuestions from the requested category,
// or from every category when the id is 0. The question is null once all have been served.
func (s *quizService) NextQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	categoryID := req.CategoryID()
	previous := req.PreviousQuestions
	if previous == nil {
		previous = []int64{}
	}

	var (
		candidates []*domain.Question
		err        error
	)
	if categoryID == domain.AllCategories {
		candidates, err = s.questions.ListQuestions(ctx)
	} else {
		category, lookupErr := s.categories.GetCategoryByID(ctx, categoryID)
		if lookupErr != nil {
			return nil, domain.NewUnprocessableError("Failed to load category", lookupErr)
		}
		if category == nil {
			return nil, domain.NewCategoryNotFoundError(categoryID)
		}
		candidates, err = s.questions.ListQuestionsByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to load quiz questions", err)
	}

	picked := domain.PickUnseen(candidates, previous, s.intn)
	if s.recorder != nil {
		s.recorder.ObserveQuizSelection(picked != nil)
	}

	resp := &dto.QuizResponse{
		Success:           true,
		PreviousQuestions: previous,
	}
	if picked != nil {
		q := toQuestionResponse(picked)
		resp.Question = &q
	} else {
		logger.Get().Debug("Quiz exhausted",
			zap.Int64("category_id", categoryID),
			zap.Int("previous", len(previous)))
	}
	return resp, nil
}
