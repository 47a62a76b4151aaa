package auth

import "errors"

// Common authentication error types
var (
	// ErrMissingToken indicates no bearer token was supplied with the request.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidToken indicates the token is malformed, tampered with, or
	// signed with an unexpected key or method.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token's expiry claim has passed.
	ErrExpiredToken = errors.New("expired token")

	// ErrTokenNotYetValid indicates the token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")
)
