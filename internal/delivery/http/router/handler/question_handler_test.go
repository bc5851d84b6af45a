package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quizdeck/internal/domain/entity"
	"quizdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuestionUsecase lets handler tests script the usecase behavior.
type stubQuestionUsecase struct {
	createFn func(ctx context.Context, input *usecase.CreateQuestionInput) (*usecase.CreateQuestionOutput, error)
	randomFn func(ctx context.Context, category string) (*usecase.RandomQuestionsOutput, error)
}

func (s *stubQuestionUsecase) CreateQuestion(ctx context.Context, input *usecase.CreateQuestionInput) (*usecase.CreateQuestionOutput, error) {
	return s.createFn(ctx, input)
}

func (s *stubQuestionUsecase) GetRandomQuestions(ctx context.Context, category string) (*usecase.RandomQuestionsOutput, error) {
	return s.randomFn(ctx, category)
}

func TestQuestionHandler_CreateQuestion_SingleAnswer(t *testing.T) {
	uc := &stubQuestionUsecase{
		createFn: func(_ context.Context, input *usecase.CreateQuestionInput) (*usecase.CreateQuestionOutput, error) {
			assert.Equal(t, "math", input.Category)
			require.Len(t, input.Answers, 1)
			assert.True(t, input.Answers[0].IsCorrect)

			return &usecase.CreateQuestionOutput{Question: &entity.Question{
				ID:       uuid.New(),
				Category: input.Category,
				Prompt:   input.Prompt,
				Answers:  []entity.Answer{{Text: "4", IsCorrect: true}},
			}}, nil
		},
	}
	h := NewQuestionHandler(uc, testLogger())

	body := `{"question":"2+2?","answers":[{"answer":"4","isCorrect":true}],"selectedCategory":"math"}`
	req := httptest.NewRequest(http.MethodPost, "/create-question", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newHandlerContext(req)

	require.NoError(t, h.CreateQuestion(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trueAnswer":true`)
}

func TestQuestionHandler_CreateQuestion_RejectsEmptyAnswers(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionUsecase{}, testLogger())

	body := `{"question":"2+2?","answers":[],"selectedCategory":"math"}`
	req := httptest.NewRequest(http.MethodPost, "/create-question", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newHandlerContext(req)

	err := h.CreateQuestion(c)
	require.Error(t, err)
}

func TestQuestionHandler_GetQuestions_PassesCategory(t *testing.T) {
	uc := &stubQuestionUsecase{
		randomFn: func(_ context.Context, category string) (*usecase.RandomQuestionsOutput, error) {
			assert.Equal(t, "math", category)

			return &usecase.RandomQuestionsOutput{Questions: []*entity.Question{
				{ID: uuid.New(), Category: "math", Prompt: "2+2?"},
			}}, nil
		},
	}
	h := NewQuestionHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/get-question?category=math", nil)
	c, rec := newHandlerContext(req)

	require.NoError(t, h.GetQuestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"question":"2+2?"`)
}
