package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unsupported", fmt.Errorf("%w: X", ErrUnsupportedIntent), http.StatusBadRequest, "Unsupported intent type"},
		{"list", fmt.Errorf("%w: L", domain.ErrListNotFound), http.StatusNotFound, "List not found"},
		{"board", domain.ErrBoardNotFound, http.StatusNotFound, "Board not found"},
		{"card", domain.ErrCardNotFound, http.StatusNotFound, "Card not found"},
		{"bus closed", fmt.Errorf("%w: dropping", bus.ErrClosed), http.StatusServiceUnavailable, "Service is shutting down"},
		{"runner stopped", fmt.Errorf("start: %w", task.ErrRunnerStopped), http.StatusServiceUnavailable, "Service is shutting down"},
		{"unknown", errors.New("db password=hunter2"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
