package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QuestionResponse is the wire form of a question
// @Description Question information
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// CategoryListResponse maps category ids to display names
// @Description All categories keyed by id
type CategoryListResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

// QuestionListResponse is a page of questions
// @Description A page of questions
type QuestionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *string            `json:"current_category"`
	Categories      map[string]string  `json:"categories,omitempty"`
}

// CreateQuestionRequest is the body of POST /questions
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required,max=1000"`
	Answer     string `json:"answer" validate:"required,max=1000"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	Category   int64  `json:"category" validate:"required,gt=0"`
}

// CreateQuestionResponse reports the stored question
type CreateQuestionResponse struct {
	Success        bool  `json:"success"`
	Created        int64 `json:"created"`
	TotalQuestions int   `json:"total_questions"`
}

// DeleteQuestionResponse reports the deleted id and the remaining questions
type DeleteQuestionResponse struct {
	Success        bool               `json:"success"`
	Deleted        int64              `json:"deleted"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// SearchQuestionsRequest is the body of POST /questions/search.
// Older clients send the term as "searchTerm".
// @Description Request body for searching questions
type SearchQuestionsRequest struct {
	SearchTerm       string `json:"search_term"`
	LegacySearchTerm string `json:"searchTerm"`
}

// Term returns the search term, preferring search_term over searchTerm.
func (r *SearchQuestionsRequest) Term() string {
	if t := strings.TrimSpace(r.SearchTerm); t != "" {
		return t
	}
	return strings.TrimSpace(r.LegacySearchTerm)
}

// QuizCategory selects the category to draw from; ID 0 means every category.
type QuizCategory struct {
	ID   FlexibleID `json:"id"`
	Type string     `json:"type,omitempty"`
}

// QuizRequest is the body of POST /quizzes
// @Description Request body for drawing the next quiz question
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// CategoryID returns the requested category, 0 when none was given.
func (r *QuizRequest) CategoryID() int64 {
	if r.QuizCategory == nil {
		return 0
	}
	return int64(r.QuizCategory.ID)
}

// QuizResponse carries the next question, null once the category is exhausted
type QuizResponse struct {
	Success           bool              `json:"success"`
	Question          *QuestionResponse `json:"question"`
	PreviousQuestions []int64           `json:"previous_questions"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// FlexibleID accepts a JSON number, a numeric string or null.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: must be an integer", string(data))
	}
	*id = FlexibleID(n)
	return nil
}
