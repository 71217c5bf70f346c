package domain

import "strings"

// Difficulty bounds accepted for a question.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories int64 = 0

// Category is a named grouping of questions, e.g. "Science".
type Category struct {
	ID   int64
	Type string
}

// Question is a single trivia item.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Difficulty int
	CategoryID int64
}

// NewQuestion creates a new Question instance. The ID is assigned by the store on save.
func NewQuestion(question, answer string, difficulty int, categoryID int64) *Question {
	return &Question{
		Question:   strings.TrimSpace(question),
		Answer:     strings.TrimSpace(answer),
		Difficulty: difficulty,
		CategoryID: categoryID,
	}
}

// Validate checks the invariants a question must hold before it is stored.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.Question == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if q.Answer == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		errs = append(errs, NewOutOfRangeError("difficulty", q.Difficulty, MinDifficulty, MaxDifficulty))
	}
	if q.CategoryID <= 0 {
		errs = append(errs, NewMissingFieldError("category"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CategoryTypes indexes categories by id.
func CategoryTypes(categories []*Category) map[int64]string {
	types := make(map[int64]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
