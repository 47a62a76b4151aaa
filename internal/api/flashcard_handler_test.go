package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashai/flashai-api/internal/api/shared"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/generation"
	"github.com/flashai/flashai-api/internal/service"
)

var assertAnError = errors.New("unclassified failure")

// stubGenerationService returns a canned outcome or error and records the
// request it was called with.
type stubGenerationService struct {
	outcome *service.GenerationOutcome
	err     error
	gotReq  *domain.GenerationRequest
}

func (s *stubGenerationService) GenerateAndStore(
	ctx context.Context,
	userID uuid.UUID,
	req *domain.GenerationRequest,
) (*service.GenerationOutcome, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func stubOutcome(t *testing.T) *service.GenerationOutcome {
	t.Helper()
	deck, err := domain.NewGeneratedDeck(uuid.New(), "Summary.")
	require.NoError(t, err)
	return &service.GenerationOutcome{Deck: deck, CardsStored: 3, Summary: "Summary."}
}

func authenticated(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

func TestGenerateHappyPath(t *testing.T) {
	t.Parallel()

	svc := &stubGenerationService{outcome: stubOutcome(t)}
	handler := NewFlashcardHandler(svc, 10<<20)

	body := `{"text": "photosynthesis notes", "count": 5, "mode": "multiple_choice", "include_summary": true}`
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/generate", strings.NewReader(body)),
		uuid.New())
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.CardsStored)
	assert.Equal(t, "Summary.", resp.Summary)
	assert.NotEmpty(t, resp.DeckName)

	require.NotNil(t, svc.gotReq)
	assert.Equal(t, 5, svc.gotReq.Count)
	assert.Equal(t, domain.ModeMultipleChoice, svc.gotReq.Mode)
	assert.True(t, svc.gotReq.IncludeSummary)
}

func TestGenerateRequiresAuthContext(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/flashcards/generate",
		strings.NewReader(`{"text": "x"}`))
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateBadJSON(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/generate", strings.NewReader("{not json")),
		uuid.New())
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateValidationFailure(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	// Missing required text
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/generate",
			strings.NewReader(`{"count": 5}`)),
		uuid.New())
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateWhitespaceTextUnprocessable(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/generate",
			strings.NewReader(`{"text": "   \n  "}`)),
		uuid.New())
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGenerateServiceErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"provider unavailable", generation.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"invalid response", generation.ErrInvalidResponseFormat, http.StatusBadGateway},
		{"missing cards", generation.ErrMissingCardsField, http.StatusBadGateway},
		{"input too large", generation.ErrInputTooLarge, http.StatusRequestEntityTooLarge},
		{"deck not found", service.ErrDeckNotFound, http.StatusNotFound},
		{"unexpected", assertAnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewFlashcardHandler(&stubGenerationService{err: tc.err}, 10<<20)
			req := authenticated(
				httptest.NewRequest(http.MethodPost, "/api/flashcards/generate",
					strings.NewReader(`{"text": "notes"}`)),
				uuid.New())
			rec := httptest.NewRecorder()

			handler.Generate(rec, req)
			assert.Equal(t, tc.want, rec.Code)

			// Error responses never leak internals, only the safe message
			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, GetSafeErrorMessage(tc.err), resp.Error)
		})
	}
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadHappyPath(t *testing.T) {
	t.Parallel()

	svc := &stubGenerationService{outcome: stubOutcome(t)}
	handler := NewFlashcardHandler(svc, 10<<20)

	body, contentType := multipartBody(t, "notes.txt", "photosynthesis converts light",
		map[string]string{"count": "4", "mode": "true_false"})
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
		uuid.New())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "photosynthesis converts light", svc.gotReq.Text)
	assert.Equal(t, 4, svc.gotReq.Count)
	assert.Equal(t, domain.ModeTrueFalse, svc.gotReq.Mode)
}

func TestUploadUnsupportedFormat(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	body, contentType := multipartBody(t, "sheet.xlsx", "binarydata", nil)
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
		uuid.New())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUploadBlankDocumentUnprocessable(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	body, contentType := multipartBody(t, "empty.txt", "   \n\t  ", nil)
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
		uuid.New())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

	body, contentType := multipartBody(t, "", "", map[string]string{"count": "3"})
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
		uuid.New())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFileTooLarge(t *testing.T) {
	t.Parallel()

	handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 64)

	body, contentType := multipartBody(t, "big.txt", strings.Repeat("a", 4096), nil)
	req := authenticated(
		httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
		uuid.New())
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadBadParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"non-integer count", map[string]string{"count": "many"}},
		{"negative count", map[string]string{"count": "-5"}},
		{"unknown difficulty", map[string]string{"difficulty": "impossible"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewFlashcardHandler(&stubGenerationService{outcome: stubOutcome(t)}, 10<<20)

			body, contentType := multipartBody(t, "notes.txt", "content", tc.fields)
			req := authenticated(
				httptest.NewRequest(http.MethodPost, "/api/flashcards/upload", body),
				uuid.New())
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.Upload(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
