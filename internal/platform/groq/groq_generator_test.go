package groq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashai/flashai-api/internal/config"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:        "groq",
		APIKey:          "test-key",
		ModelName:       "llama-3.1-8b-instant",
		BaseURL:         baseURL,
		MaxInputChars:   15000,
		MaxOutputTokens: 2000,
		Temperature:     0.7,
	}
}

func testRequest(t *testing.T) *domain.GenerationRequest {
	t.Helper()
	req, err := domain.NewGenerationRequest(
		"Photosynthesis converts light energy into chemical energy.",
		2, domain.ModeOpenEnded, domain.DifficultyIntermediate, false, nil)
	require.NoError(t, err)
	return req
}

// completionBody wraps content in an OpenAI-style chat completion response.
func completionBody(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestNewGeneratorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(nil, testConfig(""))
	assert.Error(t, err)

	cfg := testConfig("")
	cfg.APIKey = ""
	_, err = NewGenerator(testLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig("")
	cfg.ModelName = ""
	_, err = NewGenerator(testLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewGeneratorDefaultBaseURL(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testLogger(), testConfig(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, g.baseURL)

	g, err = NewGenerator(testLogger(), testConfig("http://localhost:9999/v1/"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1", g.baseURL)
}

func TestGenerateCardsHappyPath(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(
			`{"cards": [{"question": "What is photosynthesis?", "answer": "Energy conversion."}]}`)))
	}))
	defer server.Close()

	g, err := NewGenerator(testLogger(), testConfig(server.URL))
	require.NoError(t, err)

	result, err := g.GenerateCards(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Len(t, result.Cards, 1)
	assert.Equal(t, "What is photosynthesis?", result.Cards[0].Question)

	// Exactly one provider call, bearer auth, system + user messages
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, generation.SystemInstruction, gotReq.Messages[0].Content)
	assert.Equal(t, "llama-3.1-8b-instant", gotReq.Model)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	assert.Equal(t, 2000, gotReq.MaxTokens)
}

func TestGenerateCardsContextLengthError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "this model's maximum context length is exceeded, reduce context length", "code": "context_length_exceeded"}}`))
	}))
	defer server.Close()

	g, err := NewGenerator(testLogger(), testConfig(server.URL))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, generation.ErrInputTooLarge)
}

func TestGenerateCardsServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "internal error"}}`))
	}))
	defer server.Close()

	g, err := NewGenerator(testLogger(), testConfig(server.URL))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)

	// One call, no retries
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateCardsUnreachableProvider(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testLogger(), testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, generation.ErrProviderUnavailable)
}

func TestGenerateCardsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	g, err := NewGenerator(testLogger(), testConfig(server.URL))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, generation.ErrInvalidResponseFormat)
}

func TestGenerateCardsUnparseableModelOutput(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("I cannot produce JSON today.")))
	}))
	defer server.Close()

	g, err := NewGenerator(testLogger(), testConfig(server.URL))
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, generation.ErrInvalidResponseFormat)
}

func TestGenerateCardsTruncatesLongInput(t *testing.T) {
	t.Parallel()

	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(completionBody(`{"cards": [{"question": "q", "answer": "a"}]}`)))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxInputChars = 50

	g, err := NewGenerator(testLogger(), cfg)
	require.NoError(t, err)

	longText := make([]byte, 200)
	for i := range longText {
		longText[i] = 'x'
	}
	req, err := domain.NewGenerationRequest(string(longText), 2,
		domain.ModeOpenEnded, domain.DifficultyIntermediate, false, nil)
	require.NoError(t, err)

	_, err = g.GenerateCards(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[1].Content, generation.TruncationMarker)
	assert.NotContains(t, gotReq.Messages[1].Content, string(longText))
}
