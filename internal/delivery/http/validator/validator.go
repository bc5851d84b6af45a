// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "quizdeck/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a validator instance for echo.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator with struct tag validation enabled.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Failures are reported as the
// application's validation error so the error handler renders a 400 envelope.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
