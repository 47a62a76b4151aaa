package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims holds the verified identity claims extracted from a bearer token.
type Claims struct {
	// UserID is the authenticated user's unique identifier.
	UserID uuid.UUID

	// Subject mirrors the token's sub claim.
	Subject string

	// IssuedAt is when the token was issued.
	IssuedAt time.Time

	// ExpiresAt is when the token expires.
	ExpiresAt time.Time

	// ID is the unique token identifier (jti claim).
	ID string
}

// TokenVerifier checks bearer tokens issued by the identity provider that
// fronts this API. This service only verifies; it never mints tokens.
type TokenVerifier interface {
	// Verify parses and validates tokenString and returns its claims.
	// Returns ErrInvalidToken, ErrExpiredToken, or ErrTokenNotYetValid
	// depending on what failed.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}
