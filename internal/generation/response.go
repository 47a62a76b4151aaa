package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flashai/flashai-api/internal/domain"
)

// cardEntry mirrors one element of the model's "cards" array before draft
// validation. Answer stays raw because the model occasionally returns an
// object there instead of a string (see normalizeEnvelope).
type cardEntry struct {
	Question      string            `json:"question"`
	Answer        json.RawMessage   `json:"answer"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
}

// StripFences removes a single leading and trailing fenced-code-block
// delimiter from the response if present, including the ```json language
// variant. The model is instructed not to emit markdown, but it sometimes
// does anyway. Responses without fences pass through unchanged, so this
// never corrupts well-behaved output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
		// Drop an optional language tag, whether or not a newline follows
		// the opening fence.
		s = strings.TrimLeft(s, " \t")
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}

// ParseResult turns the raw model response into a GenerationResult for the
// requested mode. Processing order: trim, strip fences, parse JSON, check
// for the cards array, normalize the double-wrapped envelope quirk, then
// validate every card against the mode's field contract. Any card failing
// its contract rejects the whole response, since partial silent data loss is
// worse than an explicit failure.
func ParseResult(raw string, mode domain.QuestionMode) (*domain.GenerationResult, error) {
	cleaned := StripFences(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, &InvalidResponseError{
			Raw:    raw,
			Reason: "response is not valid JSON",
			Err:    err,
		}
	}

	cardsRaw, ok := top["cards"]
	if !ok {
		return nil, ErrMissingCardsField
	}

	var entries []cardEntry
	if err := json.Unmarshal(cardsRaw, &entries); err != nil {
		return nil, &InvalidResponseError{
			Raw:    raw,
			Reason: "cards field is not an array of card objects",
			Err:    err,
		}
	}

	entries = normalizeEnvelope(entries)

	cards := make([]domain.FlashcardDraft, 0, len(entries))
	for i, entry := range entries {
		draft := domain.FlashcardDraft{
			Question:      entry.Question,
			Options:       entry.Options,
			CorrectAnswer: entry.CorrectAnswer,
		}

		if len(entry.Answer) > 0 {
			var answer string
			if err := json.Unmarshal(entry.Answer, &answer); err != nil {
				return nil, &InvalidResponseError{
					Raw:    raw,
					Reason: fmt.Sprintf("card %d has a non-string answer", i),
					Err:    err,
				}
			}
			draft.Answer = answer
		}

		if err := draft.ValidateForMode(mode); err != nil {
			return nil, &InvalidResponseError{
				Raw:    raw,
				Reason: fmt.Sprintf("card %d violates the %s field contract", i, mode),
				Err:    err,
			}
		}

		cards = append(cards, draft)
	}

	result := &domain.GenerationResult{Cards: cards}

	if summaryRaw, ok := top["summary"]; ok {
		// A malformed summary is not worth failing a usable card set over.
		_ = json.Unmarshal(summaryRaw, &result.Summary)
	}

	return result, nil
}

// normalizeEnvelope handles a known model misbehavior: instead of
// {"cards": [...]} the response arrives as a single card whose "answer"
// field is itself an object containing the real cards array
// ({"cards":[{"question":..., "answer":{"cards":[...]}}]}). When that exact
// shape is detected the nested array replaces the outer one; anything else
// passes through untouched.
func normalizeEnvelope(entries []cardEntry) []cardEntry {
	if len(entries) != 1 || len(entries[0].Answer) == 0 {
		return entries
	}

	var nested struct {
		Cards []cardEntry `json:"cards"`
	}
	if err := json.Unmarshal(entries[0].Answer, &nested); err != nil {
		// The answer is not an object (the common case: a plain string).
		return entries
	}
	if nested.Cards == nil {
		return entries
	}

	return nested.Cards
}
