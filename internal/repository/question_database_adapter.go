package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = "id, question, answer, difficulty, category"

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
// Queries are written with "?" and rebound for the connected driver.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	query := "SELECT " + questionColumns + " FROM questions ORDER BY id"
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	query := "SELECT " + questionColumns + " FROM questions WHERE category = ? ORDER BY id"
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), categoryID); err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return toDomainQuestions(rows), nil
}

// SearchQuestions matches term as a case-insensitive substring of the question text.
// LIKE wildcards in term match literally. On sqlite3 case folding covers ASCII letters only.
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	query := "SELECT " + questionColumns + ` FROM questions WHERE LOWER(question) LIKE ? ESCAPE '\' ORDER BY id`
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), containsPattern(term, a.db.DriverName() == config.DriverSQLite)); err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestionByID returns nil, nil when the question does not exist.
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Question
	query := "SELECT " + questionColumns + " FROM questions WHERE id = ?"
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	exec := GetExecutor(ctx, a.db)
	var count int
	if err := exec.GetContext(ctx, &count, exec.Rebind("SELECT COUNT(*) FROM questions")); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SaveQuestion inserts q and sets q.ID to the generated id.
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, q *domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	m := toModelQuestion(q)
	id, err := insertReturningID(ctx, exec, a.db.DriverName(),
		"INSERT INTO questions (question, answer, difficulty, category) VALUES (?, ?, ?, ?)",
		m.Question, m.Answer, m.Difficulty, m.Category)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	q.ID = id
	return nil
}

// DeleteQuestion reports whether a row was removed.
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	res, err := exec.ExecContext(ctx, exec.Rebind("DELETE FROM questions WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for question %d: %w", id, err)
	}
	return n > 0, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Difficulty: m.Difficulty,
		CategoryID: m.Category,
	}
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Category:   q.CategoryID,
	}
}
