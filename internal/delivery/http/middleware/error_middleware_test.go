package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "quizdeck/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Errors     *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"errors"`
}

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, errorEnvelope) {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	m.HandleHTTPError(err, c)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec, envelope := handleError(t, domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, http.StatusConflict, envelope.StatusCode)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Errors)
	assert.Equal(t, "USER_ALREADY_EXISTS", envelope.Errors.Code)
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec, envelope := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Errors)
	assert.Equal(t, "HTTP_ERROR", envelope.Errors.Code)
}

func TestErrorMiddleware_UnknownErrorIsGeneric500(t *testing.T) {
	rec, envelope := handleError(t, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Internal server error", envelope.Message)
	require.NotNil(t, envelope.Errors)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Errors.Code)
	// The raw error text is not leaked to clients.
	assert.NotContains(t, rec.Body.String(), "database exploded")
}
