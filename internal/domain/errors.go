package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyText is returned when generation is requested with no source text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidCount is returned when the requested card count is not
	// positive. Wraps ErrValidation so callers can treat it as bad input.
	ErrInvalidCount = fmt.Errorf("%w: card count must be positive", ErrValidation)

	// ErrInvalidDifficulty is returned when a difficulty value is not
	// recognized. Wraps ErrValidation so callers can treat it as bad input.
	ErrInvalidDifficulty = fmt.Errorf("%w: invalid difficulty", ErrValidation)

	// ErrInvalidDraft is returned when a flashcard draft does not satisfy the
	// field contract of its question mode.
	ErrInvalidDraft = errors.New("invalid flashcard draft")
)
