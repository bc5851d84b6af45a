package handler

import (
	"log/slog"
	"net/http"

	"quizdeck/internal/delivery/http/response"
	"quizdeck/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// QuestionHandler holds dependencies for quiz question handlers.
type QuestionHandler struct {
	uc     usecase.QuestionUsecase
	logger *slog.Logger
}

// NewQuestionHandler is the constructor for QuestionHandler, injected by Fx.
func NewQuestionHandler(uc usecase.QuestionUsecase, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		uc:     uc,
		logger: logger,
	}
}

type answerRequest struct {
	Answer    string `json:"answer" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type createQuestionRequest struct {
	Question         string          `json:"question" validate:"required"`
	Answers          []answerRequest `json:"answers" validate:"required,min=1,dive"`
	SelectedCategory string          `json:"selectedCategory" validate:"required"`
}

// CreateQuestion handles the question authoring request.
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var input createQuestionRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid question input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ucInput := &usecase.CreateQuestionInput{
		Category: input.SelectedCategory,
		Prompt:   input.Question,
	}
	for _, answer := range input.Answers {
		ucInput.Answers = append(ucInput.Answers, usecase.AnswerInput{
			Text:      answer.Answer,
			IsCorrect: answer.IsCorrect,
		})
	}

	output, err := h.uc.CreateQuestion(c.Request().Context(), ucInput)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Question, "Question created successfully")
}

// GetQuestions handles the random question draw for a category.
func (h *QuestionHandler) GetQuestions(c echo.Context) error {
	category := c.QueryParam("category")

	output, err := h.uc.GetRandomQuestions(c.Request().Context(), category)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Questions, "Questions retrieved successfully")
}
