package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/flashai/flashai-api/internal/domain"
)

// SystemInstruction is sent as the system message on every provider call.
const SystemInstruction = "You are a flashcard generator. Always respond with valid JSON only."

// TruncationMarker is appended to input text cut off by TruncateInput.
// Keeping the marker visible in the prompt tells the model (and anyone
// reading logged prompts) that the source was shortened.
const TruncationMarker = "\n\n[Input truncated due to length limit.]"

// TruncateInput enforces the input-size limit: text longer than maxChars
// bytes is cut at the limit and the truncation marker is appended. The cut
// backs up to the nearest rune boundary so a multi-byte character is never
// split into an invalid byte sequence. This is a lossy, documented
// degradation, not an error. Text within the limit is returned unchanged.
func TruncateInput(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + TruncationMarker
}

// BuildPrompt constructs the instruction text sent to the language model.
// It is a deterministic, pure string construction embedding the count,
// difficulty, and source text verbatim, followed by a mode-specific
// instruction block and, optionally, a summary instruction. Callers apply
// TruncateInput first.
func BuildPrompt(
	text string,
	count int,
	mode domain.QuestionMode,
	difficulty domain.Difficulty,
	includeSummary bool,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an intelligent flashcard generator.

Generate exactly %d %s flashcards from the following text:

%s

The question mode is: %s.
Return only a JSON object with no explanations, no markdown, and no code fences.
`, count, difficulty, text, mode)

	switch mode {
	case domain.ModeMultipleChoice:
		b.WriteString(`
For each flashcard, generate:
- "question": the question text
- "options": an object with four options labeled A, B, C, and D
- "correct_answer": the correct option (A, B, C, or D)

Example:
{
    "cards": [
        {
            "question": "What is the capital of France?",
            "options": {
                "A": "Paris",
                "B": "Rome",
                "C": "Berlin",
                "D": "Madrid"
            },
            "correct_answer": "A"
        }
    ]
}
`)
	case domain.ModeTrueFalse:
		b.WriteString(`
For each flashcard, generate:
- "question": the question text
- "answer": "True" or "False"

Example:
{
    "cards": [
        {"question": "The Earth orbits the Sun.", "answer": "True"}
    ]
}
`)
	default: // open_ended
		b.WriteString(`
For each flashcard, generate:
- "question": a short open-ended question
- "answer": a brief answer (1-3 sentences)
`)
	}

	if includeSummary {
		b.WriteString(`
After generating all flashcards, include a "summary" field that gives a short
(2-3 sentence) summary of the text or what the flashcards cover.

Example:
{
    "cards": [...],
    "summary": "This set of flashcards covers key facts about..."
}
`)
	}

	return b.String()
}
