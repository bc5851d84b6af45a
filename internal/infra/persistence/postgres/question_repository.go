package postgres

import (
	"context"

	"quizdeck/internal/domain/entity"
	domainerrors "quizdeck/internal/domain/errors"
	"quizdeck/internal/domain/repository"
	"quizdeck/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// questionRepository implements the domain.QuestionRepository interface using GORM.
type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository is the constructor for questionRepository.
func NewQuestionRepository(db *gorm.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

// Create persists a question and its answer choices in one insert.
// GORM writes the associated AnswerModel rows through the has-many relation.
func (repo *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	questionM := fromQuestionDomain(question)

	if err := repo.db.WithContext(ctx).Create(questionM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required question information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create question")
	}

	question.ID = questionM.ID
	question.CreatedAt = questionM.CreatedAt

	return nil
}

// FindRandomByCategory returns up to limit questions in the given category,
// sampled uniformly by the database. Answer choices are preloaded in their
// original authoring order.
func (repo *questionRepository) FindRandomByCategory(ctx context.Context, category string, limit int) ([]*entity.Question, error) {
	var questionMs []*model.QuestionModel
	if err := repo.db.WithContext(ctx).
		Where("category = ?", category).
		Order("RANDOM()").
		Limit(limit).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_answers.position ASC")
		}).
		Find(&questionMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sample questions by category")
	}

	questions := make([]*entity.Question, 0, len(questionMs))
	for _, questionM := range questionMs {
		questions = append(questions, toQuestionDomain(questionM))
	}

	return questions, nil
}

// toQuestionDomain converts a GORM QuestionModel to a domain Question entity.
func toQuestionDomain(data *model.QuestionModel) *entity.Question {
	if data == nil {
		return nil
	}

	answers := make([]entity.Answer, 0, len(data.Answers))
	for _, answerM := range data.Answers {
		answers = append(answers, entity.Answer{
			Text:      answerM.Answer,
			IsCorrect: answerM.TrueAnswer,
		})
	}

	return &entity.Question{
		ID:        data.ID,
		Category:  data.Category,
		Prompt:    data.Prompt,
		Answers:   answers,
		CreatedAt: data.CreatedAt,
	}
}

// fromQuestionDomain converts a domain Question entity to a GORM QuestionModel.
func fromQuestionDomain(data *entity.Question) *model.QuestionModel {
	if data == nil {
		return nil
	}

	answers := make([]*model.AnswerModel, 0, len(data.Answers))
	for idx, answer := range data.Answers {
		answers = append(answers, &model.AnswerModel{
			Position:   idx,
			Answer:     answer.Text,
			TrueAnswer: answer.IsCorrect,
		})
	}

	return &model.QuestionModel{
		Category: data.Category,
		Prompt:   data.Prompt,
		Answers:  answers,
	}
}
