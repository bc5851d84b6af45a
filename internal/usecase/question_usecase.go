package usecase

import (
	"context"

	"quizdeck/internal/domain/entity"
)

// AnswerInput defines one answer choice supplied when authoring a question.
type AnswerInput struct {
	Text      string
	IsCorrect bool
}

// CreateQuestionInput defines the data required to author a new quiz question.
type CreateQuestionInput struct {
	Category string
	Prompt   string
	Answers  []AnswerInput
}

// CreateQuestionOutput returns the stored question.
type CreateQuestionOutput struct {
	Question *entity.Question
}

// RandomQuestionsOutput returns the sampled questions for a category.
type RandomQuestionsOutput struct {
	Questions []*entity.Question
}

// QuestionUsecase defines the interface for quiz question operations.
type QuestionUsecase interface {
	CreateQuestion(ctx context.Context, input *CreateQuestionInput) (*CreateQuestionOutput, error)
	GetRandomQuestions(ctx context.Context, category string) (*RandomQuestionsOutput, error)
}
