package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type CategoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db *sqlx.DB) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// ListCategories returns all categories ordered by id
func (r *CategoryDatabaseAdapter) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)
	var categories []models.Category
	if err := exec.SelectContext(ctx, &categories, exec.Rebind("SELECT id, type FROM categories ORDER BY id")); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = convertToDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// GetCategoryByID returns nil, nil when the category does not exist
func (r *CategoryDatabaseAdapter) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)
	var category models.Category
	if err := exec.GetContext(ctx, &category, exec.Rebind("SELECT id, type FROM categories WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return convertToDomainCategory(&category), nil
}

// GetCategoryByType returns nil, nil when no category has that name
func (r *CategoryDatabaseAdapter) GetCategoryByType(ctx context.Context, categoryType string) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)
	var category models.Category
	if err := exec.GetContext(ctx, &category, exec.Rebind("SELECT id, type FROM categories WHERE type = ?"), categoryType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category %q: %w", categoryType, err)
	}
	return convertToDomainCategory(&category), nil
}

// SaveCategory persists a new category and sets its generated id
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	exec := GetExecutor(ctx, r.db)
	id, err := insertReturningID(ctx, exec, r.db.DriverName(), "INSERT INTO categories (type) VALUES (?)", category.Type)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	category.ID = id
	return nil
}

func convertToDomainCategory(category *models.Category) *domain.Category {
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
