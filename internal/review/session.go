package review

import (
	"fmt"

	"studycards/internal/models"
)

const speechLang = "en-US"

// Session walks a loaded card set card by card, speaking answers on
// demand and feeding the progress tracker.
type Session struct {
	repo    FlashcardRepository
	speaker Speaker

	cards   []models.Flashcard
	current int
	tracker *Tracker
}

func NewSession(repo FlashcardRepository, speaker Speaker) *Session {
	return &Session{repo: repo, speaker: speaker}
}

// Load pulls the most recent stored set and resets progress. The first
// card counts as shown immediately.
func (s *Session) Load() error {
	set, err := s.repo.LoadLatest()
	if err != nil {
		return fmt.Errorf("load latest set: %w", err)
	}
	if len(set.Cards) == 0 {
		return ErrEmptyHistory
	}

	s.cards = set.Cards
	s.current = 0
	s.tracker = NewTracker(set.Cards)
	s.tracker.Register(s.cards[0].Marks)
	return nil
}

// Current returns the card under the cursor.
func (s *Session) Current() models.Flashcard {
	return s.cards[s.current]
}

// SpeakAnswer reads the current card's answer aloud, cutting off any
// utterance still playing.
func (s *Session) SpeakAnswer() error {
	s.speaker.Cancel()
	return s.speaker.Speak(s.cards[s.current].Answer, speechLang)
}

// Next silences speech and advances, wrapping to the first card after
// the last. The wrap does not re-register the first card.
func (s *Session) Next() {
	s.speaker.Cancel()
	if s.current+1 >= len(s.cards) {
		s.current = 0
		return
	}
	s.current++
	s.tracker.Register(s.cards[s.current].Marks)
}

// Progress reports the completion percentage for a bucket.
func (s *Session) Progress(b Bucket) int {
	return s.tracker.Percent(b)
}
