package repository

import (
	"context"
	"errors"

	"quizdeck/internal/domain/entity"
)

// ErrQuestionNotFound is returned when no question matches the requested filter.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository defines the operations for question persistence.
type QuestionRepository interface {
	// Create persists a new question together with its answers.
	Create(ctx context.Context, question *entity.Question) error

	// FindRandomByCategory returns up to limit questions matching the exact
	// category, sampled in random order. An empty result is not an error;
	// the use case decides how to report it.
	FindRandomByCategory(ctx context.Context, category string, limit int) ([]*entity.Question, error)
}
