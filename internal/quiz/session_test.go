package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studycards/internal/models"
)

func makeCards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{
			Question: fmt.Sprintf("Question %d?", i),
			Answer:   fmt.Sprintf("Unique answer %d.", i),
			Marks:    1,
		}
	}
	return cards
}

func TestBuildCapsLargeSets(t *testing.T) {
	session := Build(makeCards(30), rand.New(rand.NewSource(1)))
	assert.Equal(t, 15, session.Len())
}

func TestBuildKeepsSmallSets(t *testing.T) {
	session := Build(makeCards(10), rand.New(rand.NewSource(1)))
	assert.Equal(t, 10, session.Len())
}

func TestQuestionOptions(t *testing.T) {
	cards := makeCards(5)
	session := Build(cards, rand.New(rand.NewSource(42)))

	answers := make(map[string]bool, len(cards))
	for _, card := range cards {
		answers[card.Answer] = true
	}

	for i := 0; i < session.Len(); i++ {
		q := session.Current()
		require.Len(t, q.Options, 4)

		correctCount := 0
		for _, opt := range q.Options {
			if answers[opt] {
				correctCount++
			}
		}
		assert.Equal(t, 1, correctCount, "exactly one real answer among the options")
		assert.True(t, answers[q.Options[q.Correct]], "Correct index must point at the real answer")
		session.Next()
	}
}

func TestSelectionChangeableUntilCommit(t *testing.T) {
	session := Build(makeCards(1), rand.New(rand.NewSource(5)))

	correct := session.Current().Correct
	session.Answer((correct + 1) % 4)
	session.Answer(correct)
	session.Next()

	assert.Equal(t, 1, session.Score(), "the final selection before advancing is the one graded")
	records := session.Answers()
	require.Len(t, records, 1)
	assert.True(t, records[0].IsCorrect)
}

func TestAllCorrectScoresFull(t *testing.T) {
	session := Build(makeCards(8), rand.New(rand.NewSource(7)))
	for !session.Finished() {
		session.Answer(session.Current().Correct)
		session.Next()
	}
	assert.Equal(t, 8, session.Score())
	assert.Len(t, session.Answers(), 8)
}

func TestAnswerRecordFields(t *testing.T) {
	session := Build(makeCards(1), rand.New(rand.NewSource(7)))
	q := session.Current()

	wrong := (q.Correct + 1) % 4
	session.Answer(wrong)
	session.Next()

	records := session.Answers()
	require.Len(t, records, 1)
	assert.Equal(t, q.Prompt, records[0].Question)
	assert.Equal(t, q.Options[q.Correct], records[0].CorrectAnswer)
	assert.Equal(t, q.Options[wrong], records[0].UserAnswer)
	assert.False(t, records[0].IsCorrect)
	assert.Equal(t, 0, session.Score())
}

func TestScoreEqualsCorrectRecordCount(t *testing.T) {
	session := Build(makeCards(4), rand.New(rand.NewSource(11)))

	for i := 0; !session.Finished(); i++ {
		correct := session.Current().Correct
		if i%2 == 0 {
			session.Answer(correct)
		} else {
			session.Answer((correct + 1) % 4)
		}
		session.Next()
	}

	records := session.Answers()
	require.Len(t, records, 4)
	want := 0
	for _, r := range records {
		if r.IsCorrect {
			want++
		}
	}
	assert.Equal(t, want, session.Score())
	assert.Equal(t, 2, session.Score())
}

func TestRevisitNeverDuplicatesRecords(t *testing.T) {
	session := Build(makeCards(2), rand.New(rand.NewSource(3)))

	session.Answer(session.Current().Correct)
	session.Next()
	require.Len(t, session.Answers(), 1)

	session.Prev()
	assert.True(t, session.Answered())

	// Re-selecting a graded question must change nothing.
	session.Answer(session.Current().Correct)
	session.Answer((session.Current().Correct + 1) % 4)
	session.Next()
	assert.Len(t, session.Answers(), 1)
	assert.Equal(t, 1, session.Score())
}

func TestSkippedQuestionRecordsNothing(t *testing.T) {
	session := Build(makeCards(2), rand.New(rand.NewSource(9)))

	session.Next()
	session.Answer(session.Current().Correct)
	session.Next()

	assert.Len(t, session.Answers(), 1)
	assert.Equal(t, 1, session.Score())
}

func TestPrevDiscardsPendingSelection(t *testing.T) {
	session := Build(makeCards(2), rand.New(rand.NewSource(13)))

	session.Answer(session.Current().Correct)
	session.Prev()

	assert.False(t, session.Answered(), "backing off before committing grades nothing")
	assert.Empty(t, session.Answers())
}

func TestPrevStopsAtFirstQuestion(t *testing.T) {
	session := Build(makeCards(3), rand.New(rand.NewSource(3)))
	first := session.Current().Prompt
	session.Prev()
	assert.Equal(t, first, session.Current().Prompt)
}

func TestFinishCommitsPendingSelection(t *testing.T) {
	session := Build(makeCards(5), rand.New(rand.NewSource(9)))

	session.Answer(session.Current().Correct)
	session.Finish()
	require.True(t, session.Finished())
	assert.Equal(t, 1, session.Score())
	assert.Len(t, session.Answers(), 1)

	// A finished session ignores further input.
	session.Answer(session.Current().Correct)
	session.Next()
	assert.Len(t, session.Answers(), 1)
}

func TestNextPastEndFinishes(t *testing.T) {
	session := Build(makeCards(1), rand.New(rand.NewSource(2)))
	session.Next()
	assert.True(t, session.Finished())
}

func TestEmptySession(t *testing.T) {
	session := Build(nil, rand.New(rand.NewSource(1)))

	assert.Equal(t, 0, session.Len())
	assert.Equal(t, Question{}, session.Current())

	session.Answer(0)
	session.Next()
	assert.True(t, session.Finished())
	assert.Empty(t, session.Answers())
	assert.Equal(t, 0, session.Score())
}
