package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/api/shared"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/extractor"
	"github.com/flashai/flashai-api/internal/platform/logger"
	"github.com/flashai/flashai-api/internal/service"
)

// FlashcardHandler handles flashcard generation HTTP requests.
type FlashcardHandler struct {
	generationService service.GenerationService
	maxUploadBytes    int64
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(
	generationService service.GenerationService,
	maxUploadBytes int64,
) *FlashcardHandler {
	return &FlashcardHandler{
		generationService: generationService,
		maxUploadBytes:    maxUploadBytes,
	}
}

// Generate handles POST /api/flashcards/generate requests: raw text in,
// a stored deck of generated cards out.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.generateAndRespond(w, r, userID, req.Text, req)
}

// Upload handles POST /api/flashcards/upload requests: a multipart document
// upload whose extracted text feeds the same generation flow as Generate.
func (h *FlashcardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn("failed to close uploaded file", "error", err)
		}
	}()

	data, err := h.stageUpload(file)
	if err != nil {
		log.Error("failed to stage uploaded file",
			"error", err,
			"filename", header.Filename)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	extension := filepath.Ext(header.Filename)
	text, err := extractor.Extract(data, extension)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if text == "" {
		err := service.ErrEmptyDocument
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	params, err := parseUploadParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.generateAndRespond(w, r, userID, text, params)
}

// generateAndRespond runs the shared tail of both endpoints: build the
// domain request, invoke the generation service, translate the outcome.
func (h *FlashcardHandler) generateAndRespond(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	text string,
	params GenerateRequest,
) {
	genReq, err := domain.NewGenerationRequest(
		text,
		params.Count,
		domain.QuestionMode(params.Mode),
		domain.Difficulty(params.Difficulty),
		params.IncludeSummary,
		params.DeckID,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	outcome, err := h.generationService.GenerateAndStore(r.Context(), userID, genReq)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := GenerateResponse{
		DeckID:      outcome.Deck.ID,
		DeckName:    outcome.Deck.Name,
		CardsStored: outcome.CardsStored,
		Summary:     outcome.Summary,
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// stageUpload spools the uploaded file through a temp file before reading it
// back. The temp file is removed on every path, success or failure.
func (h *FlashcardHandler) stageUpload(file io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp("", "flashai-upload-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			slog.Warn("failed to remove staged upload", "error", err)
		}
	}()
	defer func() {
		if err := tmp.Close(); err != nil {
			slog.Warn("failed to close staged upload", "error", err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(tmp)
}

// parseUploadParams reads the generation parameters that accompany a
// multipart upload. Absent fields keep their zero values, which the domain
// layer resolves to defaults.
func parseUploadParams(r *http.Request) (GenerateRequest, error) {
	params := GenerateRequest{
		Mode:       r.FormValue("mode"),
		Difficulty: r.FormValue("difficulty"),
	}

	if raw := r.FormValue("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return params, errors.New("Invalid count: must be an integer")
		}
		params.Count = count
	}

	if raw := r.FormValue("include_summary"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return params, errors.New("Invalid include_summary: must be a boolean")
		}
		params.IncludeSummary = include
	}

	if raw := r.FormValue("deck_id"); raw != "" {
		deckID, err := uuid.Parse(raw)
		if err != nil {
			return params, errors.New("Invalid deck_id: must be a UUID")
		}
		params.DeckID = &deckID
	}

	return params, nil
}
