// Package generation provides the interface and shared machinery for
// turning source text into flashcards via an external language model:
// the Generator boundary interface, prompt construction, input truncation,
// and defensive parsing of the model's free-form response into typed
// drafts. Provider-specific clients live in internal/platform.
package generation
