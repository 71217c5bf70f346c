package service

import (
	"context"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

// CategoryService defines category operations
type CategoryService interface {
	ListCategories(ctx context.Context) (*dto.CategoryListResponse, error)
}

type categoryService struct {
	categories domain.CategoryRepository
}

func NewCategoryService(categories domain.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewUnprocessableError("Failed to load categories", err)
	}
	return &dto.CategoryListResponse{
		Success:    true,
		Categories: categoryMap(categories),
	}, nil
}
