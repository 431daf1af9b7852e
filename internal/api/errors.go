package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/domain"
	"github.com/phrazzld/cardflow/internal/task"
)

// ErrUnsupportedIntent is returned for intents producers may not submit.
var ErrUnsupportedIntent = errors.New("unsupported intent type")

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never reach clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedIntent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrBoardNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, bus.ErrClosed),
		errors.Is(err, task.ErrRunnerStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, ErrUnsupportedIntent):
		return "Unsupported intent type"
	case errors.Is(err, domain.ErrListNotFound):
		return "List not found"
	case errors.Is(err, domain.ErrBoardNotFound):
		return "Board not found"
	case errors.Is(err, domain.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, bus.ErrClosed),
		errors.Is(err, task.ErrRunnerStopped):
		return "Service is shutting down"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
