package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
)

func TestFromMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("algorithm %s: %w", "x", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("in use: %w", apperrors.ErrConsistency), http.StatusConflict, "consistency_violation"},
		{fmt.Errorf("bad: %w", apperrors.ErrValidation), http.StatusBadRequest, "validation_failed"},
		{fmt.Errorf("upload: %w", apperrors.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{fmt.Errorf("analyzer: %w", apperrors.ErrExecution), http.StatusInternalServerError, "execution_failed"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		got := From(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Fatalf("From(%v) = %d/%s, want %d/%s", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("From(%v) lost the wrapped error", tc.err)
		}
	}
}

func TestFromPassesThroughClassified(t *testing.T) {
	orig := BadRequest("id_forbidden", errors.New("id must not be set"))
	wrapped := fmt.Errorf("create: %w", orig)
	if got := From(wrapped); got != orig {
		t.Fatalf("expected the original *Error, got %+v", got)
	}
	if From(nil) != nil {
		t.Fatal("From(nil) should be nil")
	}
}
