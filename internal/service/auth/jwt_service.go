// Package auth issues and validates the bearer tokens that producers present
// to the intent intake API.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing producer tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the named producer.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// It returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a producer token.
type Claims struct {
	// Subject names the producer, e.g. "web" or "cardctl".
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
