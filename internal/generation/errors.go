package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package and its provider clients.
var (
	// ErrInvalidResponseFormat is returned when the model response cannot be
	// parsed into the expected card structure. The full raw text travels in
	// an InvalidResponseError for diagnostics; partial data is never returned.
	ErrInvalidResponseFormat = errors.New("invalid response format from language model")

	// ErrMissingCardsField is returned when the model response is valid JSON
	// but lacks the top-level "cards" array.
	ErrMissingCardsField = errors.New("language model response missing cards field")

	// ErrInputTooLarge is returned when the provider reports that the input
	// exceeded its context length. Distinct from ErrProviderUnavailable so
	// callers know to shrink the input further.
	ErrInputTooLarge = errors.New("input exceeds language model context length")

	// ErrProviderUnavailable is returned for any other transport or provider
	// failure.
	ErrProviderUnavailable = errors.New("language model provider unavailable")

	// ErrInvalidConfig is returned when a generator is constructed with an
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// InvalidResponseError carries the raw model output alongside the parse
// failure so the response can be inspected. It unwraps to
// ErrInvalidResponseFormat.
type InvalidResponseError struct {
	// Raw is the unmodified response text from the provider.
	Raw string

	// Reason describes what made the response unusable.
	Reason string

	// Err is the underlying error, if any (e.g. the JSON decode error).
	Err error
}

func (e *InvalidResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid model response: %s", e.Reason)
}

func (e *InvalidResponseError) Unwrap() error {
	return ErrInvalidResponseFormat
}
