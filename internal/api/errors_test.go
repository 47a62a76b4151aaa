package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/extractor"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/service"
	"github.com/flashai/flashai-api/internal/service/auth"
	"github.com/flashai/flashai-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{service.ErrDeckNotFound, http.StatusNotFound},
		{store.ErrDeckNotFound, http.StatusNotFound},
		{extractor.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
		{extractor.ErrExtractionFailure, http.StatusUnprocessableEntity},
		{service.ErrEmptyDocument, http.StatusUnprocessableEntity},
		{domain.ErrEmptyText, http.StatusUnprocessableEntity},
		{generation.ErrInputTooLarge, http.StatusRequestEntityTooLarge},
		{generation.ErrInvalidResponseFormat, http.StatusBadGateway},
		{generation.ErrMissingCardsField, http.StatusBadGateway},
		{generation.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{store.ErrDuplicate, http.StatusConflict},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{domain.ErrInvalidCount, http.StatusBadRequest},
		{domain.ErrInvalidDifficulty, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), "error: %v", tc.err)
	}
}

func TestMapErrorToStatusCodeUnwrapsChains(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("calling provider: %w", generation.ErrProviderUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, MapErrorToStatusCode(wrapped))

	invalid := &generation.InvalidResponseError{Reason: "bad JSON"}
	assert.Equal(t, http.StatusBadGateway, MapErrorToStatusCode(invalid))
}

func TestGetSafeErrorMessageNeverLeaksDetails(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection refused host=db.internal user=admin")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "db.internal")

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessageBadParameters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Count must be a positive integer",
		GetSafeErrorMessage(fmt.Errorf("building request: %w", domain.ErrInvalidCount)))
	assert.Equal(t, "Difficulty must be easy, intermediate, or advanced",
		GetSafeErrorMessage(domain.ErrInvalidDifficulty))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	raw := errors.New(
		"Key: 'GenerateRequest.Count' Error:Field validation for 'Count' failed on the 'max' tag")
	assert.Equal(t, "Invalid Count: too large", SanitizeValidationError(raw))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("random failure")))
}
