package generator

import (
	"studycards/internal/models"
)

// MarkSpec describes the expectations attached to one mark value: how
// many cards of that weight a full set carries, the word band an answer
// should cover, the character cap the fallback generator applies, and
// the boilerplate appended to answers that come back too short.
//
// This table is the single source of truth shared by the prompt
// builder, the validation pass, and the fallback generator.
type MarkSpec struct {
	Marks    int
	Count    int
	MinWords int
	MaxWords int
	MaxChars int
	PadText  string
}

var markSpecs = []MarkSpec{
	{
		Marks: 1, Count: 6, MinWords: 20, MaxWords: 40, MaxChars: 60,
		PadText: " This is a fundamental concept covered in the source material.",
	},
	{
		Marks: 2, Count: 8, MinWords: 50, MaxWords: 80, MaxChars: 120,
		PadText: " This is an important concept that requires proper understanding for effective application.",
	},
	{
		Marks: 5, Count: 4, MinWords: 100, MaxWords: 200, MaxChars: 300,
		PadText: " This involves several key aspects that must be considered for effective implementation and optimal results.",
	},
	{
		Marks: 10, Count: 2, MinWords: 250, MaxWords: 500, MaxChars: 600,
		PadText: " This concept involves multiple interconnected components that work together to achieve the desired outcome. Understanding these relationships is crucial for practical implementation and successful application in real-world scenarios. The methodology encompasses various techniques and approaches that have been developed and refined through extensive research and practical experience.",
	},
}

// TotalCards is the fixed size of a generated flashcard set.
const TotalCards = 20

// Specs returns the distribution table in mark order.
func Specs() []MarkSpec {
	return markSpecs
}

// SpecFor looks up the spec for a mark value.
func SpecFor(marks int) (MarkSpec, bool) {
	for _, spec := range markSpecs {
		if spec.Marks == marks {
			return spec, true
		}
	}
	return MarkSpec{}, false
}

// MarkDifficulty maps a mark weight to its conventional difficulty
// bucket. Unknown marks fall back to easy.
func MarkDifficulty(marks int) models.Difficulty {
	switch marks {
	case 1, 2:
		return models.DifficultyEasy
	case 5:
		return models.DifficultyMedium
	case 10:
		return models.DifficultyHard
	default:
		return models.DifficultyEasy
	}
}
