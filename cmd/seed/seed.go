package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// seedQuestion defines the structure for a question in the JSON seed file.
type seedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
}

// seedCategory defines the structure for a category in the JSON seed file.
type seedCategory struct {
	Type      string         `json:"type"`
	Questions []seedQuestion `json:"questions"`
}

type seedFile struct {
	Categories []seedCategory `json:"categories"`
}

type seedResult struct {
	CategoriesCreated int
	CategoriesSkipped int
	QuestionsCreated  int
}

func loadSeedFile(r io.Reader) (*seedFile, error) {
	var data seedFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &data, nil
}

type seeder struct {
	tx         domain.TransactionManager
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
}

// Seed stores every category that does not exist yet, together with its questions,
// in a single transaction. Existing categories and their questions are left untouched,
// so running the seeder twice is harmless.
func (s *seeder) Seed(ctx context.Context, data *seedFile) (seedResult, error) {
	var result seedResult
	log := logger.Get()

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, sc := range data.Categories {
			existing, err := s.categories.GetCategoryByType(ctx, sc.Type)
			if err != nil {
				return fmt.Errorf("error checking category %s: %w", sc.Type, err)
			}
			if existing != nil {
				log.Info("Category exists, skipping", zap.String("type", sc.Type), zap.Int64("id", existing.ID))
				result.CategoriesSkipped++
				continue
			}

			category := &domain.Category{Type: sc.Type}
			if err := s.categories.SaveCategory(ctx, category); err != nil {
				return fmt.Errorf("failed to save category %s: %w", sc.Type, err)
			}
			log.Info("Created category", zap.String("type", category.Type), zap.Int64("id", category.ID))
			result.CategoriesCreated++

			for _, sq := range sc.Questions {
				question := domain.NewQuestion(sq.Question, sq.Answer, sq.Difficulty, category.ID)
				if err := question.Validate(); err != nil {
					return fmt.Errorf("invalid question %q in category %s: %w", sq.Question, sc.Type, err)
				}
				if err := s.questions.SaveQuestion(ctx, question); err != nil {
					return fmt.Errorf("failed to save question %q: %w", sq.Question, err)
				}
				result.QuestionsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return seedResult{}, err
	}
	return result, nil
}
