package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/extractor"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/service"
	"github.com/flashai/flashai-api/internal/service/auth"
	"github.com/flashai/flashai-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Not found errors: the service-level sentinel plus every
	// entity-specific store variant.
	case errors.Is(err, service.ErrDeckNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Upload format errors
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType

	// A file that parsed fine but yielded no text, or did not parse at all,
	// is not a malformed request, so it maps to unprocessable rather than
	// bad request.
	case errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, extractor.ErrExtractionFailure):
		return http.StatusUnprocessableEntity

	// Input exceeded the provider's context window even after truncation
	case errors.Is(err, generation.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge

	// Provider returned something we could not parse
	case errors.Is(err, generation.ErrInvalidResponseFormat),
		errors.Is(err, generation.ErrMissingCardsField):
		return http.StatusBadGateway

	// Provider unreachable or erroring
	case errors.Is(err, generation.ErrProviderUnavailable):
		return http.StatusServiceUnavailable

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return "Unsupported file format: only PDF, DOCX, TXT, and MD files are accepted"

	case errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, domain.ErrEmptyText):
		return "The document contains no extractable text"

	case errors.Is(err, extractor.ErrExtractionFailure):
		return "Could not read the uploaded file"

	case errors.Is(err, generation.ErrInputTooLarge):
		return "The input text is too large for the model"

	case errors.Is(err, generation.ErrInvalidResponseFormat),
		errors.Is(err, generation.ErrMissingCardsField):
		return "The AI service returned an unexpected response, please try again"

	case errors.Is(err, generation.ErrProviderUnavailable):
		return "The AI service is temporarily unavailable, please try again later"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrInvalidCount):
		return "Count must be a positive integer"

	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Difficulty must be easy, intermediate, or advanced"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Count' Error:Field validation
	// for 'Count' failed on the 'min' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
