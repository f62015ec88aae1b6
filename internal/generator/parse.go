package generator

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// RawCard is a flashcard record as emitted by the generative service,
// before validation and normalization.
type RawCard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Marks      int    `json:"marks"`
	Difficulty string `json:"difficulty"`
}

// ParseStrategy attempts to extract flashcard records from raw model
// output. Strategies are pure and independently testable; a strategy
// that finds no records returns an error so the next one is tried.
type ParseStrategy func(raw string) ([]RawCard, error)

var (
	objectPattern       = regexp.MustCompile(`\{[^{}]*"question"[^{}]*\}`)
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
	errNoArrayBrackets  = errors.New("no array brackets in response")
	errNoObjectsFound   = errors.New("no flashcard objects in response")
)

// Strategies returns the repair ladder in priority order: whole-array
// slice, per-object scan, then lenient trailing-comma repair.
func Strategies() []ParseStrategy {
	return []ParseStrategy{parseArraySlice, parseObjectScan, parseRepairedArray}
}

// ExtractCards runs the repair ladder against raw model output and
// returns the first successful extraction, or nil when every strategy
// fails.
func ExtractCards(raw string) []RawCard {
	for _, strategy := range Strategies() {
		cards, err := strategy(raw)
		if err == nil && len(cards) > 0 {
			return cards
		}
	}
	return nil
}

// parseArraySlice slices the text between the first '[' and the last
// ']' and parses it as a JSON array.
func parseArraySlice(raw string) ([]RawCard, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, errNoArrayBrackets
	}

	var cards []RawCard
	if err := json.Unmarshal([]byte(raw[start:end+1]), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// parseObjectScan collects individual brace-delimited objects that
// carry a "question" key, parsing each independently and keeping the
// successes. Nested braces are deliberately not matched; the model's
// flat card objects never contain them.
func parseObjectScan(raw string) ([]RawCard, error) {
	matches := objectPattern.FindAllString(raw, -1)
	if len(matches) == 0 {
		return nil, errNoObjectsFound
	}

	var cards []RawCard
	for _, match := range matches {
		var card RawCard
		if err := json.Unmarshal([]byte(match), &card); err != nil {
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, errNoObjectsFound
	}
	return cards, nil
}

// parseRepairedArray retries the array slice after stripping trailing
// commas before '}' and ']', the most common malformation in model
// output.
func parseRepairedArray(raw string) ([]RawCard, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, errNoArrayBrackets
	}

	repaired := raw[start : end+1]
	repaired = trailingCommaObject.ReplaceAllString(repaired, "}")
	repaired = trailingCommaArray.ReplaceAllString(repaired, "]")

	var cards []RawCard
	if err := json.Unmarshal([]byte(repaired), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
