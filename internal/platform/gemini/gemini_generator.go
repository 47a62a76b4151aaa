// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It is the alternative backend to the default
// OpenAI-compatible client, selected with llm.provider = "gemini".
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/flashai/flashai-api/internal/config"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/redact"
)

// Generator calls the Gemini API to produce flashcards. Like the default
// backend it makes exactly one provider call per invocation and never
// retries.
type Generator struct {
	logger *slog.Logger
	cfg    config.LLMConfig
	client *genai.Client
}

// Ensure Generator implements the generation.Generator interface.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed Generator from the LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		cfg:    cfg,
		client: client,
	}, nil
}

// GenerateCards implements generation.Generator.
func (g *Generator) GenerateCards(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	text := generation.TruncateInput(req.Text, g.cfg.MaxInputChars)
	prompt := generation.BuildPrompt(text, req.Count, req.Mode, req.Difficulty, req.IncludeSummary)

	log.Debug("calling Gemini API",
		slog.String("model", g.cfg.ModelName),
		slog.String("mode", string(req.Mode)),
		slog.Int("prompt_chars", len(prompt)))

	temperature := g.cfg.Temperature
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.ModelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
			SystemInstruction: genai.NewContentFromText(
				generation.SystemInstruction, genai.RoleUser),
		})
	if err != nil {
		log.Warn("Gemini API call failed", slog.String("error", err.Error()))
		return nil, classifyError(err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, &generation.InvalidResponseError{
			Reason: "Gemini response contains no text",
		}
	}

	result, err := generation.ParseResult(raw, req.Mode)
	if err != nil {
		log.Warn("failed to parse Gemini response",
			slog.String("error", err.Error()),
			slog.Int("response_chars", len(raw)),
			slog.String("response_snippet", redact.Snippet(raw)))
		return nil, err
	}

	log.Info("generated flashcard drafts",
		slog.Int("card_count", len(result.Cards)),
		slog.Bool("has_summary", result.Summary != ""))
	return result, nil
}

// classifyError maps Gemini transport errors onto the generation error
// taxonomy. Token-limit failures surface as ErrInputTooLarge so callers
// know to shrink the input; everything else is a provider failure.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "token count") ||
		strings.Contains(msg, "exceeds the maximum") ||
		strings.Contains(msg, "context length") {
		return fmt.Errorf("%w: %v", generation.ErrInputTooLarge, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrProviderUnavailable, err)
}
