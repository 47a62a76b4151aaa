package domain

import (
	"strings"

	"github.com/google/uuid"
)

// QuestionMode is the flashcard question format requested for generation.
type QuestionMode string

const (
	// ModeOpenEnded produces question/answer pairs with free-text answers.
	// It is also the fallback for unrecognized mode values.
	ModeOpenEnded QuestionMode = "open_ended"

	// ModeMultipleChoice produces questions with four labeled options (A-D)
	// and a correct-answer label.
	ModeMultipleChoice QuestionMode = "multiple_choice"

	// ModeTrueFalse produces statements answered with "True" or "False".
	ModeTrueFalse QuestionMode = "true_false"
)

// Difficulty is the requested difficulty of generated flashcards.
type Difficulty string

const (
	DifficultyEasy         Difficulty = "easy"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// DefaultCardCount is used when a generation request does not specify a count.
const DefaultCardCount = 10

// OptionLabels are the four choice labels every multiple-choice card carries.
var OptionLabels = []string{"A", "B", "C", "D"}

// GenerationRequest describes one flashcard generation call.
// It is ephemeral: built per request, never persisted.
type GenerationRequest struct {
	// Text is the source material the cards are generated from.
	Text string

	// Count is the number of cards to request from the model.
	Count int

	// Mode selects the question format.
	Mode QuestionMode

	// Difficulty selects the difficulty embedded in the prompt.
	Difficulty Difficulty

	// IncludeSummary asks the model for a 2-3 sentence summary field.
	IncludeSummary bool

	// TargetDeckID, when set, stores the generated cards into an existing
	// deck instead of creating a new one.
	TargetDeckID *uuid.UUID
}

// NewGenerationRequest builds a GenerationRequest with defaults applied:
// count defaults to DefaultCardCount, difficulty to intermediate, and any
// unrecognized mode falls back to open-ended.
// Returns ErrEmptyText if the text is blank after trimming.
func NewGenerationRequest(
	text string,
	count int,
	mode QuestionMode,
	difficulty Difficulty,
	includeSummary bool,
	targetDeckID *uuid.UUID,
) (*GenerationRequest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if count == 0 {
		count = DefaultCardCount
	}
	if count < 0 {
		return nil, ErrInvalidCount
	}

	switch mode {
	case ModeMultipleChoice, ModeTrueFalse, ModeOpenEnded:
	default:
		mode = ModeOpenEnded
	}

	switch difficulty {
	case "":
		difficulty = DifficultyIntermediate
	case DifficultyEasy, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return nil, ErrInvalidDifficulty
	}

	return &GenerationRequest{
		Text:           text,
		Count:          count,
		Mode:           mode,
		Difficulty:     difficulty,
		IncludeSummary: includeSummary,
		TargetDeckID:   targetDeckID,
	}, nil
}

// FlashcardDraft is a flashcard candidate produced by generation, prior to
// persistence. Exactly one of {Answer} or {Options + CorrectAnswer} is
// populated, driven by the request's mode.
type FlashcardDraft struct {
	Question string `json:"question"`

	// Answer holds the free-text answer for open-ended cards, or the strings
	// "True"/"False" for true/false cards. Empty for multiple choice.
	Answer string `json:"answer,omitempty"`

	// Options maps the labels A-D to choice text. Nil unless multiple choice.
	Options map[string]string `json:"options,omitempty"`

	// CorrectAnswer is the label (A-D) of the correct option.
	// Empty unless multiple choice.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// ValidateForMode checks the draft against the field contract of the given
// question mode. Returns ErrInvalidDraft (wrapped with detail) on violation.
func (d *FlashcardDraft) ValidateForMode(mode QuestionMode) error {
	if strings.TrimSpace(d.Question) == "" {
		return wrapDraftErr("missing question")
	}

	switch mode {
	case ModeMultipleChoice:
		if len(d.Options) == 0 {
			return wrapDraftErr("missing options")
		}
		for _, label := range OptionLabels {
			if strings.TrimSpace(d.Options[label]) == "" {
				return wrapDraftErr("missing option " + label)
			}
		}
		switch d.CorrectAnswer {
		case "A", "B", "C", "D":
		default:
			return wrapDraftErr("correct_answer must be one of A-D")
		}
	case ModeTrueFalse:
		if d.Answer != "True" && d.Answer != "False" {
			return wrapDraftErr(`answer must be "True" or "False"`)
		}
	default:
		if strings.TrimSpace(d.Answer) == "" {
			return wrapDraftErr("missing answer")
		}
	}

	return nil
}

// StoredAnswer derives the answer value persisted for this draft: the
// correct-answer label for multiple choice (only the letter is stored,
// never the option text), otherwise the answer field verbatim.
func (d *FlashcardDraft) StoredAnswer() string {
	if len(d.Options) > 0 && d.CorrectAnswer != "" {
		return d.CorrectAnswer
	}
	return d.Answer
}

func wrapDraftErr(detail string) error {
	return &DraftValidationError{Detail: detail}
}

// DraftValidationError reports which field contract a draft violated.
// It unwraps to ErrInvalidDraft.
type DraftValidationError struct {
	Detail string
}

func (e *DraftValidationError) Error() string {
	return "invalid flashcard draft: " + e.Detail
}

func (e *DraftValidationError) Unwrap() error {
	return ErrInvalidDraft
}

// GenerationResult is the parsed output of one generation call.
// Cards is always non-nil, possibly empty. The result itself is never
// persisted; only its contents are.
type GenerationResult struct {
	Cards   []FlashcardDraft
	Summary string
}
