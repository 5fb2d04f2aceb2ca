package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("find workout: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"invalid input", fmt.Errorf("log meal: %w", ErrInvalidInput), http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"ai", fmt.Errorf("analyze wod: %w", ErrAIUnavailable), http.StatusBadGateway},
		{"app error code wins", New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "calories must be >= 0", Message(Invalid("calories must be >= 0")))
	assert.Equal(t, ErrInternal.Error(), Message(errors.New("pq: connection refused")))
	assert.Equal(t, ErrNotFound.Error(), Message(ErrNotFound))
}
