package gateway

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by Error.
var (
	ErrNotFound    = errors.New("not found")
	ErrRejected    = errors.New("request rejected")
	ErrUnavailable = errors.New("service unavailable")
)

// Error describes a failed remote operation. Error() returns only Message, the
// human-readable text that ends up in failure intents; Op, Status and the
// wrapped cause are for logs and errors.Is checks.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error for op.
func NewError(op string, status int, message string, cause error) *Error {
	return &Error{Op: op, Status: status, Message: message, Err: cause}
}
