package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, err error) *Error { return New(http.StatusBadRequest, code, err) }

// From classifies err into an *Error. Already-classified errors pass through.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrConsistency):
		return New(http.StatusConflict, "consistency_violation", err)
	case errors.Is(err, apperrors.ErrValidation):
		return New(http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, apperrors.ErrExecution):
		return New(http.StatusInternalServerError, "execution_failed", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
