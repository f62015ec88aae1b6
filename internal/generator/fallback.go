package generator

import (
	"fmt"
	"regexp"
	"strings"

	"studycards/internal/models"
)

var sentenceDelim = regexp.MustCompile(`[.!?]+`)

// minSentenceChars is the usable-sentence floor for fallback cards;
// shorter fragments are walked past without consuming a card slot.
const minSentenceChars = 30

// SplitSentences splits source text on sentence terminators and keeps
// sentences whose trimmed length exceeds 20 characters.
func SplitSentences(text string) []string {
	parts := sentenceDelim.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) > 20 {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// GenerateFallback synthesizes a full flashcard set from raw sentences
// without any external service. It walks the mark distribution in
// order, consuming one source sentence per card and wrapping around
// when sentences run out. Output is deterministic for identical input.
// Returns nil when the text has no usable sentences.
func GenerateFallback(text string) []models.Flashcard {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	usable := false
	for _, s := range sentences {
		if len(s) >= minSentenceChars {
			usable = true
			break
		}
	}
	if !usable {
		return nil
	}

	var cards []models.Flashcard
	idx := 0
	for _, spec := range Specs() {
		for i := 0; i < spec.Count; i++ {
			for len(sentences[idx%len(sentences)]) < minSentenceChars {
				idx++
			}
			pos := idx % len(sentences)
			sentence := sentences[pos]

			// following returns the k-th sentence after the current
			// one, or "" past the end of the document.
			following := func(k int) string {
				if pos+k < len(sentences) {
					return sentences[pos+k]
				}
				return ""
			}

			question, answer := buildFallbackCard(spec, sentence, following)
			cards = append(cards, models.Flashcard{
				Question:   question,
				Answer:     answer,
				Marks:      spec.Marks,
				Difficulty: Classify(question, answer),
			})
			idx++
		}
	}
	return cards
}

func buildFallbackCard(spec MarkSpec, sentence string, following func(int) string) (string, string) {
	words := strings.Fields(sentence)

	var question, answer string
	switch spec.Marks {
	case 1:
		question = fmt.Sprintf("What is %s?", joinWords(words, 1, 4))
		answer = truncate(sentence, spec.MaxChars) + "."
	case 2:
		question = "Explain " + joinWords(words, 0, 5)
		answer = truncate(sentence, spec.MaxChars) + ". " + truncate(following(1), 80) + "."
	case 5:
		question = "Describe in detail: " + joinWords(words, 0, 6)
		combined := strings.TrimSpace(sentence + " " + following(1) + " " + following(2))
		answer = truncate(combined, spec.MaxChars) + "."
	case 10:
		question = fmt.Sprintf("Provide a comprehensive analysis of %s including examples and applications", joinWords(words, 1, 7))
		parts := []string{sentence}
		for k := 1; k <= 5; k++ {
			parts = append(parts, following(k))
		}
		combined := strings.TrimSpace(strings.Join(parts, " "))
		answer = truncate(combined, spec.MaxChars) + "."
	}
	return question, answer
}

// joinWords joins the half-open word range [from, to), clamped to the
// slice bounds.
func joinWords(words []string, from, to int) string {
	if from > len(words) {
		from = len(words)
	}
	if to > len(words) {
		to = len(words)
	}
	return strings.Join(words[from:to], " ")
}

// truncate caps s at limit characters and trims surrounding space.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		s = string(runes[:limit])
	}
	return strings.TrimSpace(s)
}
