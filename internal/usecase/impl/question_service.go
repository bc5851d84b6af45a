package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "quizdeck/internal/delivery/context"
	"quizdeck/internal/domain/entity"
	domainerrors "quizdeck/internal/domain/errors"
	"quizdeck/internal/domain/repository"
	"quizdeck/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// randomQuestionLimit caps how many questions a single draw returns.
const randomQuestionLimit = 5

// questionService implements the QuestionUsecase interface.
type questionService struct {
	questionRepo repository.QuestionRepository
	logger       *slog.Logger
}

// QuestionServiceParams holds dependencies for questionService, injected by Fx.
type QuestionServiceParams struct {
	fx.In

	QuestionRepo repository.QuestionRepository
	Logger       *slog.Logger
}

// NewQuestionService is the constructor for questionService.
func NewQuestionService(params QuestionServiceParams) usecase.QuestionUsecase {
	return &questionService{
		questionRepo: params.QuestionRepo,
		logger:       params.Logger,
	}
}

func (srv *questionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateQuestion validates and stores a new quiz question with its answer choices.
func (srv *questionService) CreateQuestion(ctx context.Context, input *usecase.CreateQuestionInput) (*usecase.CreateQuestionOutput, error) {
	question := &entity.Question{
		Category: strings.TrimSpace(input.Category),
		Prompt:   strings.TrimSpace(input.Prompt),
	}
	for _, answer := range input.Answers {
		question.Answers = append(question.Answers, entity.Answer{
			Text:      strings.TrimSpace(answer.Text),
			IsCorrect: answer.IsCorrect,
		})
	}

	if err := validateQuestion(question); err != nil {
		srv.log(ctx).Warn("Question validation failed", slog.Any("error", err))

		return nil, err
	}

	if err := srv.questionRepo.Create(ctx, question); err != nil {
		srv.log(ctx).Error("Failed to create question", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create question")
	}
	srv.log(ctx).Debug("Question created", slog.Any("questionID", question.ID), slog.String("category", question.Category))

	return &usecase.CreateQuestionOutput{Question: question}, nil
}

func validateQuestion(question *entity.Question) error {
	if question.Category == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("category is required")
	}
	if question.Prompt == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("question text is required")
	}
	if len(question.Answers) == 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("at least one answer choice is required")
	}
	for _, answer := range question.Answers {
		if answer.Text == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("answer choices must not be empty")
		}
	}
	if !question.HasCorrectAnswer() {
		return domainerrors.ErrValidationFailed.WrapMessage("at least one answer must be marked correct")
	}

	return nil
}

// GetRandomQuestions draws up to five random questions from the category.
// An empty draw is reported as not found rather than an empty list.
func (srv *questionService) GetRandomQuestions(ctx context.Context, category string) (*usecase.RandomQuestionsOutput, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		// A blank category can never match a stored question, so it is a miss,
		// not a malformed request.
		return nil, domainerrors.ErrQuestionNotFound.WrapMessage("no questions in empty category")
	}

	questions, err := srv.questionRepo.FindRandomByCategory(ctx, category, randomQuestionLimit)
	if err != nil {
		srv.log(ctx).Error("Failed to sample questions", slog.String("category", category), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to sample questions by category")
	}

	if len(questions) == 0 {
		srv.log(ctx).Debug("No questions in category", slog.String("category", category))

		return nil, domainerrors.ErrQuestionNotFound.WrapMessage("no questions in category " + category)
	}

	return &usecase.RandomQuestionsOutput{Questions: questions}, nil
}
