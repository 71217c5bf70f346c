package service

import (
	"strconv"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Category:   q.CategoryID,
	}
}

// toQuestionResponses never returns nil so that empty pages encode as [].
func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

// categoryMap renders categories as the {"<id>": "<type>"} object clients expect.
func categoryMap(categories []*domain.Category) map[string]string {
	out := make(map[string]string, len(categories))
	for id, name := range domain.CategoryTypes(categories) {
		out[strconv.FormatInt(id, 10)] = name
	}
	return out
}
