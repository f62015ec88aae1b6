package generator

import (
	"strings"

	"studycards/internal/models"
)

// Classify derives a difficulty bucket from question and answer text.
// It is a pure function: the combined lowercased text is split on
// spaces, tokens longer than 8 characters count as complex, and the
// complexity ratio together with the combined length picks the bucket.
// The thresholds are load-bearing; stored difficulties and progress
// buckets depend on them.
func Classify(question, answer string) models.Difficulty {
	text := strings.ToLower(question + " " + answer)
	tokens := strings.Split(text, " ")

	complex := 0
	for _, token := range tokens {
		if len(token) > 8 {
			complex++
		}
	}
	ratio := float64(complex) / float64(len(tokens))

	if len(text) < 80 && ratio < 0.1 {
		return models.DifficultyEasy
	}
	if len(text) < 200 && ratio < 0.2 {
		return models.DifficultyMedium
	}
	return models.DifficultyHard
}
