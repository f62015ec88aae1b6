package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"studycards/internal/models"
)

const (
	// chunkSize and maxChunks bound the generative request: the source
	// text is windowed into fixed-size chunks and only a prefix of them
	// is sent. Later chunks are dropped, not summarized.
	chunkSize = 4000
	maxChunks = 6

	// primaryMinimum is the extraction count below which the primary
	// path is abandoned wholesale in favor of the fallback generator.
	primaryMinimum = 15

	// padThreshold pads answers whose word count falls under this
	// fraction of the mark's minimum.
	padThreshold = 0.8
)

// ErrNoCards indicates that neither the generative service nor the
// fallback generator produced a single card, which only happens for
// documents with no usable sentences.
var ErrNoCards = errors.New("could not generate flashcards")

// Completer produces raw text for a single prompt. Implemented by the
// Groq-backed AI service; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Pipeline turns extracted document text into a normalized set of
// exactly TotalCards flashcards with the fixed mark distribution.
type Pipeline struct {
	completer Completer
}

func New(completer Completer) *Pipeline {
	return &Pipeline{completer: completer}
}

// Generate runs the full pipeline: chunk, request, extract with the
// repair ladder, validate and pad, backfill from the fallback
// generator, and normalize. A failing generative service is non-fatal;
// only a document yielding zero cards surfaces as an error.
func (p *Pipeline) Generate(ctx context.Context, text string) ([]models.Flashcard, error) {
	var cards []models.Flashcard

	raw, err := p.requestCards(ctx, text)
	if err != nil {
		logrus.WithError(err).Warn("generative request failed, falling back to extractive generator")
	} else {
		cards = validateCards(ExtractCards(raw))
	}

	if len(cards) < primaryMinimum {
		if len(cards) > 0 {
			logrus.WithField("extracted", len(cards)).Warn("insufficient cards from primary path, using fallback generator")
		}
		cards = GenerateFallback(text)
	} else if len(cards) < TotalCards {
		topUp := GenerateFallback(text)
		need := TotalCards - len(cards)
		if len(topUp) > need {
			topUp = topUp[:need]
		}
		cards = append(cards, topUp...)
	}

	if len(cards) > TotalCards {
		cards = cards[:TotalCards]
	}
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return normalizeCards(cards), nil
}

func (p *Pipeline) requestCards(ctx context.Context, text string) (string, error) {
	if p.completer == nil {
		return "", errors.New("no completion service configured")
	}
	selected := chunkPrefix(text, chunkSize, maxChunks)
	raw, err := p.completer.Complete(ctx, buildPrompt(selected))
	if err != nil {
		return "", fmt.Errorf("request flashcards: %w", err)
	}
	return raw, nil
}

// chunkPrefix windows text into size-character chunks and joins the
// first max of them. The tail of long documents is dropped as a
// deliberate recall/cost trade-off.
func chunkPrefix(text string, size, max int) string {
	runes := []rune(text)
	var chunks []string
	for i := 0; i < len(runes) && len(chunks) < max; i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return strings.Join(chunks, "\n")
}

// buildPrompt derives the generation instruction from the shared mark
// table so the prompt, validation, and fallback can never disagree on
// the distribution.
func buildPrompt(content string) string {
	var b strings.Builder
	b.WriteString("You are an expert educational content creator. Generate EXACTLY ")
	b.WriteString(fmt.Sprintf("%d flashcards with complete, untruncated answers.\n\n", TotalCards))
	b.WriteString("CRITICAL REQUIREMENTS:\n")
	b.WriteString("1. NEVER truncate answers - provide COMPLETE responses\n")
	b.WriteString("2. Maintain the exact distribution: ")
	for i, spec := range Specs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%dx%d-mark", spec.Count, spec.Marks))
	}
	b.WriteString("\n3. Ensure answers match the word count for each mark level\n\n")
	b.WriteString("ANSWER LENGTH REQUIREMENTS:\n")
	for _, spec := range Specs() {
		b.WriteString(fmt.Sprintf("- %d mark(s): %d-%d words\n", spec.Marks, spec.MinWords, spec.MaxWords))
	}
	b.WriteString("\nEach flashcard is a JSON object {\"question\": \"\", \"answer\": \"\", \"marks\": 0}.\n")
	b.WriteString("Generate flashcards from this content with COMPLETE untruncated answers:\n\n")
	b.WriteString(content)
	b.WriteString(fmt.Sprintf("\n\nReturn only a valid JSON array with exactly %d complete flashcards:", TotalCards))
	return b.String()
}

// validateCards converts extracted records to flashcards, padding
// answers that fall short of the mark's expected word count with
// length-appropriate boilerplate. Padding is a heuristic approximation,
// not content generation; it keeps otherwise good cards instead of
// rejecting them.
func validateCards(raw []RawCard) []models.Flashcard {
	cards := make([]models.Flashcard, 0, len(raw))
	for _, rc := range raw {
		marks := rc.Marks
		spec, ok := SpecFor(marks)
		if !ok {
			marks = 1
			spec, _ = SpecFor(1)
		}

		answer := rc.Answer
		words := len(strings.Fields(answer))
		if float64(words) < padThreshold*float64(spec.MinWords) {
			answer += spec.PadText
		}

		var difficulty models.Difficulty
		if models.ValidDifficulty(rc.Difficulty) {
			difficulty = models.Difficulty(rc.Difficulty)
		}

		cards = append(cards, models.Flashcard{
			Question:   rc.Question,
			Answer:     answer,
			Marks:      marks,
			Difficulty: difficulty,
		})
	}
	return cards
}

// normalizeCards applies the final pass: strip trailing truncation
// markers, guarantee terminal punctuation, and default missing fields.
func normalizeCards(cards []models.Flashcard) []models.Flashcard {
	for i := range cards {
		card := &cards[i]

		answer := strings.TrimSpace(card.Answer)
		if answer == "" {
			answer = "No answer provided"
		}
		answer = strings.TrimSpace(strings.TrimSuffix(answer, "..."))
		if !strings.HasSuffix(answer, ".") && !strings.HasSuffix(answer, "!") && !strings.HasSuffix(answer, "?") {
			answer += "."
		}
		card.Answer = answer

		if strings.TrimSpace(card.Question) == "" {
			card.Question = fmt.Sprintf("Question %d", i+1)
		}
		if _, ok := SpecFor(card.Marks); !ok {
			card.Marks = 1
		}
		if !models.ValidDifficulty(string(card.Difficulty)) {
			card.Difficulty = Classify(card.Question, card.Answer)
		}
	}
	return cards
}

// Statistics counts cards per mark value, mirroring the distribution
// summary returned by the upload endpoint.
func Statistics(cards []models.Flashcard) map[int]int {
	return lo.CountValuesBy(cards, func(c models.Flashcard) int { return c.Marks })
}
