package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrShortSecret indicates the signing secret is too short to be safe.
	ErrShortSecret = errors.New("jwt secret must be at least 32 characters")

	// ErrEmptySubject indicates a token was requested without a producer name.
	ErrEmptySubject = errors.New("token subject cannot be empty")
)
