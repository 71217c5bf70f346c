package service

import (
	"context"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the question listing and editing operations
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.QuestionListResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest, page int) (*dto.QuestionListResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error)
}

type questionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	tx         domain.TransactionManager
	perPage    int
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	tx domain.TransactionManager,
	perPage int,
) QuestionService {
	return &questionService{
		questions:  questions,
		categories: categories,
		tx:         tx,
		perPage:    perPage,
	}
}

// ListQuestions returns one page of all questions. A page past the end is NOT_FOUND.
func (s *questionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error) {
	var (
		questions  []*domain.Question
		categories []*domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.ListQuestions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewUnprocessableError("Failed to load questions", err)
	}

	current := domain.Paginate(questions, page, s.perPage)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No questions found on page %d", page)).
			WithContext("page", page)
	}

	return &dto.QuestionListResponse{
		Success:         true,
		Questions:       toQuestionResponses(current),
		TotalQuestions:  len(questions),
		CurrentCategory: nil,
		Categories:      categoryMap(categories),
	}, nil
}

// ListQuestionsByCategory returns one page of a category's questions; an empty page is not an error.
func (s *questionService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.QuestionListResponse, error) {
	category, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to load category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(categoryID)
	}

	questions, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to load questions", err)
	}

	name := category.Type
	return &dto.QuestionListResponse{
		Success:         true,
		Questions:       toQuestionResponses(domain.Paginate(questions, page, s.perPage)),
		TotalQuestions:  len(questions),
		CurrentCategory: &name,
	}, nil
}

// SearchQuestions pages through the questions whose text contains the term.
func (s *questionService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest, page int) (*dto.QuestionListResponse, error) {
	term := req.Term()
	if term == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("search_term")}
	}

	questions, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to search questions", err)
	}

	logger.Get().Debug("Searched questions",
		zap.String("term", term),
		zap.Int("matches", len(questions)))

	return &dto.QuestionListResponse{
		Success:         true,
		Questions:       toQuestionResponses(domain.Paginate(questions, page, s.perPage)),
		TotalQuestions:  len(questions),
		CurrentCategory: nil,
	}, nil
}

// CreateQuestion validates and stores a question in an existing category.
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	question := domain.NewQuestion(req.Question, req.Answer, req.Difficulty, req.Category)
	if err := question.Validate(); err != nil {
		return nil, err
	}

	category, err := s.categories.GetCategoryByID(ctx, question.CategoryID)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to load category", err)
	}
	if category == nil {
		return nil, domain.NewInvalidCategoryError(question.CategoryID)
	}

	if err := s.questions.SaveQuestion(ctx, question); err != nil {
		return nil, domain.NewUnprocessableError("Failed to create question", err)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to count questions", err)
	}

	logger.Get().Info("Question created",
		zap.Int64("question_id", question.ID),
		zap.Int64("category_id", question.CategoryID))

	return &dto.CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		TotalQuestions: total,
	}, nil
}

// DeleteQuestion removes a question and returns the requested page of what is left,
// all inside one transaction.
func (s *questionService) DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error) {
	var resp *dto.DeleteQuestionResponse

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		question, err := s.questions.GetQuestionByID(ctx, id)
		if err != nil {
			return domain.NewUnprocessableError("Failed to load question", err)
		}
		if question == nil {
			return domain.NewQuestionNotFoundError(id)
		}

		deleted, err := s.questions.DeleteQuestion(ctx, id)
		if err != nil {
			return domain.NewUnprocessableError("Failed to delete question", err)
		}
		if !deleted {
			return domain.NewQuestionNotFoundError(id)
		}

		remaining, err := s.questions.ListQuestions(ctx)
		if err != nil {
			return domain.NewUnprocessableError("Failed to load questions", err)
		}

		resp = &dto.DeleteQuestionResponse{
			Success:        true,
			Deleted:        id,
			Questions:      toQuestionResponses(domain.Paginate(remaining, page, s.perPage)),
			TotalQuestions: len(remaining),
		}
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			// begin or commit failed
			return nil, domain.NewUnprocessableError("Failed to delete question", err)
		}
		return nil, err
	}

	logger.Get().Info("Question deleted", zap.Int64("question_id", id))
	return resp, nil
}
