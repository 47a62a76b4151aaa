package generation

import (
	"context"

	"github.com/flashai/flashai-api/internal/domain"
)

// Generator defines the interface for generating flashcards from text.
// This interface serves as a boundary between the application core and
// external AI/LLM services; implementations make exactly one provider
// call per invocation and perform no retries, so callers see provider
// latency and failures directly instead of behind hidden retry loops.
type Generator interface {
	// GenerateCards creates flashcard drafts from the request's source text.
	// The request's truncation policy is applied before prompt construction.
	//
	// Returns a GenerationResult whose Cards slice is never nil, or one of
	// the sentinel errors in errors.go describing why generation failed.
	GenerateCards(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}
