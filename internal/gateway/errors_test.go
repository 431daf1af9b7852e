package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message wins", NewError("createCard", 400, "List is archived", ErrRejected), "List is archived"},
		{"falls back to cause", NewError("removeCard", 404, "", ErrNotFound), "not found"},
		{"falls back to op", NewError("moveCard", 0, "", nil), "moveCard failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewError("fetchCard", 404, "Not found", ErrNotFound))

	assert.ErrorIs(t, err, ErrNotFound)
	var gwErr *Error
	assert.True(t, errors.As(err, &gwErr))
	assert.Equal(t, 404, gwErr.Status)
}
