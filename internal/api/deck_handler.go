package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashai/flashai-api/internal/api/shared"
	"github.com/flashai/flashai-api/internal/domain"
	"github.com/flashai/flashai-api/internal/service"
)

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService service.DeckService
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
	}
}

// ListDecks handles GET /api/decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		response = append(response, deckToDTOResponse(d.Deck, d.CardCount))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetDeck handles GET /api/decks/{deckID} requests, returning the deck
// together with all of its flashcards.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	result, err := h.deckService.GetDeckWithCards(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	cards := make([]FlashcardResponse, 0, len(result.Cards))
	for _, card := range result.Cards {
		cards = append(cards, flashcardToDTOResponse(card))
	}

	response := DeckWithCardsResponse{
		DeckResponse: deckToDTOResponse(result.Deck, len(result.Cards)),
		Cards:        cards,
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ShareDeck handles POST /api/decks/{deckID}/share requests.
func (h *DeckHandler) ShareDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	deck, err := h.deckService.ShareDeck(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ShareDeckResponse{
		ID:         deck.ID,
		IsShared:   deck.IsShared,
		SharedLink: deck.SharedLink,
	})
}

// deckToDTOResponse converts a domain.Deck to a DeckResponse.
func deckToDTOResponse(deck *domain.Deck, cardCount int) DeckResponse {
	return DeckResponse{
		ID:          deck.ID,
		Name:        deck.Name,
		Description: deck.Description,
		Summary:     deck.Summary,
		IsShared:    deck.IsShared,
		SharedLink:  deck.SharedLink,
		CardCount:   cardCount,
		CreatedAt:   deck.CreatedAt,
		UpdatedAt:   deck.UpdatedAt,
	}
}

// flashcardToDTOResponse converts a domain.Flashcard to a FlashcardResponse.
func flashcardToDTOResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID,
		Question:  card.Question,
		Answer:    card.Answer,
		Options:   card.Options,
		Source:    card.Source,
		CreatedAt: card.CreatedAt,
	}
}
