package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studycards/internal/models"
)

func cardsWithMarks(marks ...int) []models.Flashcard {
	cards := make([]models.Flashcard, len(marks))
	for i, m := range marks {
		cards[i] = models.Flashcard{Question: "q", Answer: "a.", Marks: m}
	}
	return cards
}

func TestTrackerBuckets(t *testing.T) {
	// Three light cards, one heavy: 1 and 2 marks share the easy bucket.
	tracker := NewTracker(cardsWithMarks(1, 2, 2, 10))

	tracker.Register(1)
	assert.Equal(t, 33, tracker.Percent(BucketEasy))
	tracker.Register(2)
	assert.Equal(t, 67, tracker.Percent(BucketEasy))
	tracker.Register(2)
	assert.Equal(t, 100, tracker.Percent(BucketEasy))

	assert.Equal(t, 0, tracker.Percent(BucketHard))
	tracker.Register(10)
	assert.Equal(t, 100, tracker.Percent(BucketHard))
}

func TestTrackerClampsOvershoot(t *testing.T) {
	tracker := NewTracker(cardsWithMarks(5))
	tracker.Register(5)
	tracker.Register(5)
	assert.Equal(t, 100, tracker.Percent(BucketMedium), "revisits never exceed 100")
}

func TestTrackerEmptyBucket(t *testing.T) {
	tracker := NewTracker(cardsWithMarks(1, 1))
	assert.Equal(t, 0, tracker.Percent(BucketMedium))
	assert.Equal(t, 0, tracker.Percent(BucketHard))
}

func TestTrackerUnknownMarksCountAsEasy(t *testing.T) {
	tracker := NewTracker(cardsWithMarks(3))
	tracker.Register(3)
	assert.Equal(t, 100, tracker.Percent(BucketEasy))
}

func TestUniformTracker(t *testing.T) {
	tracker := NewUniformTracker(3)
	assert.Equal(t, 0, tracker.Percent())

	tracker.Advance()
	assert.Equal(t, 33, tracker.Percent())
	tracker.Advance()
	assert.Equal(t, 67, tracker.Percent())
	tracker.Advance()
	assert.Equal(t, 100, tracker.Percent())

	tracker.Advance()
	assert.Equal(t, 100, tracker.Percent(), "capped at 100")
}

func TestUniformTrackerZeroTotal(t *testing.T) {
	tracker := NewUniformTracker(0)
	tracker.Advance()
	assert.Equal(t, 0, tracker.Percent())
}
