// Package groq implements the generation.Generator interface against the
// Groq API, which exposes an OpenAI-compatible /chat/completions endpoint.
// It also works against any other OpenAI-compatible provider by overriding
// the base URL in configuration.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flashai/flashai-api/internal/config"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/redact"
)

// DefaultBaseURL is the Groq OpenAI-compatible API root, used when the
// configuration does not override it.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Generator calls a chat-completions endpoint to produce flashcards.
// It makes exactly one provider call per invocation and never retries.
type Generator struct {
	logger     *slog.Logger
	cfg        config.LLMConfig
	baseURL    string
	httpClient *http.Client
}

// Ensure Generator implements the generation.Generator interface.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator from the LLM configuration.
// The http.Client carries no timeout of its own: the single call per
// request is bounded by the caller's context deadline.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "groq_generator")),
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}, nil
}

// GenerateCards implements generation.Generator. It applies the truncation
// policy, builds the prompt, issues one chat-completion call, and parses
// the response into drafts for the request's mode.
func (g *Generator) GenerateCards(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	text := generation.TruncateInput(req.Text, g.cfg.MaxInputChars)
	prompt := generation.BuildPrompt(text, req.Count, req.Mode, req.Difficulty, req.IncludeSummary)

	log.Debug("calling chat completions API",
		slog.String("model", g.cfg.ModelName),
		slog.String("mode", string(req.Mode)),
		slog.Int("input_chars", len(text)),
		slog.Int("prompt_chars", len(prompt)))

	content, err := g.complete(ctx, prompt)
	if err != nil {
		log.Warn("chat completion call failed", slog.String("error", err.Error()))
		return nil, err
	}

	result, err := generation.ParseResult(content, req.Mode)
	if err != nil {
		log.Warn("failed to parse model response",
			slog.String("error", err.Error()),
			slog.Int("response_chars", len(content)),
			slog.String("response_snippet", redact.Snippet(content)))
		return nil, err
	}

	log.Info("generated flashcard drafts",
		slog.Int("card_count", len(result.Cards)),
		slog.Bool("has_summary", result.Summary != ""))
	return result, nil
}

// complete sends one chat-completion request and returns the assistant
// message content. Provider failures are classified: context-length errors
// map to ErrInputTooLarge, everything else to ErrProviderUnavailable.
func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: g.cfg.ModelName,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxOutputTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := g.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		if isContextLengthError(errResp, resp.StatusCode) {
			return "", fmt.Errorf("%w: %s", generation.ErrInputTooLarge, errResp.Error.Message)
		}
		if errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: %s (status %d)",
				generation.ErrProviderUnavailable, errResp.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", generation.ErrProviderUnavailable, resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &generation.InvalidResponseError{
			Reason: "provider response body is not valid JSON",
			Err:    err,
		}
	}
	if len(chatResp.Choices) == 0 {
		return "", &generation.InvalidResponseError{
			Reason: "provider response contains no choices",
		}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// isContextLengthError recognizes the OpenAI-style signals that the input
// exceeded the model's context window.
func isContextLengthError(errResp errorResponse, status int) bool {
	if errResp.Error.Code == "context_length_exceeded" {
		return true
	}
	msg := strings.ToLower(errResp.Error.Message)
	if strings.Contains(msg, "context length") || strings.Contains(msg, "context window") {
		return true
	}
	// 413 from an OpenAI-compatible gateway means the payload itself was too big.
	return status == http.StatusRequestEntityTooLarge
}

// OpenAI-compatible request/response types.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
