package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/platform/apierr"
)

func Test_HTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", apierr.Invalid("x"), http.StatusBadRequest},
		{"not available", apierr.NotAvailable("x"), http.StatusBadRequest},
		{"inactive member", apierr.InactiveMember("x"), http.StatusBadRequest},
		{"not found", apierr.NotFound("x"), http.StatusNotFound},
		{"already returned", apierr.AlreadyReturned("x"), http.StatusConflict},
		{"conflict", apierr.Conflict("x"), http.StatusConflict},
		{"wrapped", fmt.Errorf("store: %w", apierr.NotFound("x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apierr.HTTPStatus(tc.err))
		})
	}
}

func Test_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", apierr.AlreadyReturned("borrowing already returned"))

	assert.True(t, apierr.Is(err, apierr.CodeAlreadyReturned))
	assert.False(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Equal(t, apierr.CodeUnexpected, apierr.CodeOf(errors.New("boom")))
}
