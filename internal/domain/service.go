package domain

import "context"

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// ListQuestions returns every question ordered by ID
	ListQuestions(ctx context.Context) ([]*Question, error)

	// ListQuestionsByCategory returns the questions of one category ordered by ID
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// SearchQuestions returns questions whose text contains term, case-insensitively
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// GetQuestionByID returns nil, nil when no question has that ID
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// CountQuestions returns the number of stored questions
	CountQuestions(ctx context.Context) (int, error)

	// SaveQuestion persists a new question and sets its ID
	SaveQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes a question, reporting whether a row was deleted
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// ListCategories returns every category ordered by ID
	ListCategories(ctx context.Context) ([]*Category, error)

	// GetCategoryByID returns nil, nil when no category has that ID
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)

	// GetCategoryByType returns nil, nil when no category has that display name
	GetCategoryByType(ctx context.Context, categoryType string) (*Category, error)

	// SaveCategory persists a new category and sets its ID
	SaveCategory(ctx context.Context, category *Category) error
}

// TransactionManager runs fn inside one store transaction. Repositories called with
// the context handed to fn take part in that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
