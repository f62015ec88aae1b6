// Package review drives the card review flow: walking a stored set,
// speaking answers aloud, and tracking study progress.
package review

import (
	"math"

	"studycards/internal/models"
)

// Bucket groups cards for progress display by their mark weight.
type Bucket string

const (
	BucketEasy   Bucket = "easy"
	BucketMedium Bucket = "medium"
	BucketHard   Bucket = "hard"
)

// bucketFor maps mark weights onto display buckets. Unknown marks fall
// into easy rather than being dropped.
func bucketFor(marks int) Bucket {
	switch marks {
	case 5:
		return BucketMedium
	case 10:
		return BucketHard
	default:
		return BucketEasy
	}
}

// Tracker reports per-bucket completion while reviewing a card set.
// Shown counts are clamped to their totals, so revisiting a card past
// full completion never pushes a bucket over 100%.
type Tracker struct {
	totals map[Bucket]int
	shown  map[Bucket]int
}

// NewTracker counts cards into buckets and starts with nothing shown.
func NewTracker(cards []models.Flashcard) *Tracker {
	t := &Tracker{
		totals: make(map[Bucket]int),
		shown:  make(map[Bucket]int),
	}
	for _, card := range cards {
		t.totals[bucketFor(card.Marks)]++
	}
	return t
}

// Register marks one card of the given weight as shown.
func (t *Tracker) Register(marks int) {
	t.shown[bucketFor(marks)]++
}

// Percent reports the bucket's completion, 0 to 100. Buckets with no
// cards report zero instead of dividing by it.
func (t *Tracker) Percent(b Bucket) int {
	total := t.totals[b]
	if total == 0 {
		return 0
	}
	shown := t.shown[b]
	if shown > total {
		shown = total
	}
	return int(math.Round(float64(shown) / float64(total) * 100))
}

// UniformTracker is the alternative single-bar display: every card
// advances overall progress by the same share regardless of weight.
type UniformTracker struct {
	total   int
	percent float64
}

func NewUniformTracker(total int) *UniformTracker {
	return &UniformTracker{total: total}
}

// Advance moves the bar by one card's share, capped at 100.
func (t *UniformTracker) Advance() {
	if t.total == 0 {
		return
	}
	t.percent += 100 / float64(t.total)
	if t.percent > 100 {
		t.percent = 100
	}
}

// Percent reports the rounded overall completion.
func (t *UniformTracker) Percent() int {
	return int(math.Round(t.percent))
}
