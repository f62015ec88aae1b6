// Package quiz turns a flashcard set into a multiple-choice session
// with deterministic scoring.
package quiz

import (
	"math/rand"

	"studycards/internal/models"
)

// maxQuestions caps a session; larger sets are sampled.
const maxQuestions = 15

// distractors are fixed wrong options mixed into every question. They
// are intentionally generic so they read plausibly next to any
// subject's correct answer.
var distractors = [3]string{
	"Backpropagation is an algorithm used to train a neural network by minimizing errors.",
	"CNNs understand image data by extracting features from small regions.",
	"A monitor is a higher-level synchronization construct with more functionality than semaphores.",
}

// Question is one rendered quiz item: the prompt, four shuffled
// options, and the index of the correct one.
type Question struct {
	Prompt  string
	Options [4]string
	Correct int
	Marks   int
}

// Answer is one graded response, recorded when its question is
// committed by Next or Finish.
type Answer struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
	IsCorrect     bool
}

// Session tracks progress through a quiz. A selection stays changeable
// until the cursor moves on; grading happens at commit time, and each
// question is graded at most once no matter how navigation revisits it.
type Session struct {
	questions []Question
	current   int
	selected  int
	answers   []Answer
	recorded  map[int]bool
	finished  bool
}

// Build renders cards into a session using rng for option and sample
// shuffling. Sets beyond maxQuestions are shuffled and truncated so
// the sample is unbiased.
func Build(cards []models.Flashcard, rng *rand.Rand) *Session {
	selected := make([]models.Flashcard, len(cards))
	copy(selected, cards)
	if len(selected) > maxQuestions {
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
		selected = selected[:maxQuestions]
	}

	questions := make([]Question, 0, len(selected))
	for _, card := range selected {
		questions = append(questions, renderQuestion(card, rng))
	}
	return &Session{
		questions: questions,
		selected:  -1,
		recorded:  make(map[int]bool),
	}
}

func renderQuestion(card models.Flashcard, rng *rand.Rand) Question {
	q := Question{Prompt: card.Question, Marks: card.Marks}
	q.Options = [4]string{card.Answer, distractors[0], distractors[1], distractors[2]}
	rng.Shuffle(len(q.Options), func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
	})
	for i, opt := range q.Options {
		if opt == card.Answer {
			q.Correct = i
			break
		}
	}
	return q
}

// Len reports the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the question under the cursor, or a zero Question
// for an empty session.
func (s *Session) Current() Question {
	if len(s.questions) == 0 {
		return Question{}
	}
	return s.questions[s.current]
}

// Score returns the number of correctly answered questions, always
// equal to the count of IsCorrect entries in Answers.
func (s *Session) Score() int {
	score := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			score++
		}
	}
	return score
}

// Answers returns the graded responses recorded so far, in commit
// order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool { return s.finished }

// Answer selects an option for the current question. The selection can
// be changed freely until Next or Finish commits it; once the question
// is graded, further selections are ignored.
func (s *Session) Answer(option int) {
	if s.finished || len(s.questions) == 0 || s.recorded[s.current] {
		return
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return
	}
	s.selected = option
}

// commit grades the pending selection, if any, and records it. A
// question already graded, or one with nothing selected, records
// nothing.
func (s *Session) commit() {
	if s.selected < 0 || len(s.questions) == 0 || s.recorded[s.current] {
		s.selected = -1
		return
	}
	q := s.questions[s.current]
	s.answers = append(s.answers, Answer{
		Question:      q.Prompt,
		CorrectAnswer: q.Options[q.Correct],
		UserAnswer:    q.Options[s.selected],
		IsCorrect:     s.selected == q.Correct,
	})
	s.recorded[s.current] = true
	s.selected = -1
}

// Next commits the pending selection and advances the cursor,
// finishing the session past the last question.
func (s *Session) Next() {
	if s.finished {
		return
	}
	s.commit()
	if s.current+1 >= len(s.questions) {
		s.finished = true
		return
	}
	s.current++
}

// Prev moves the cursor back one question without grading; it stops at
// the first. Any ungraded selection is discarded.
func (s *Session) Prev() {
	s.selected = -1
	if s.current > 0 {
		s.current--
	}
}

// Finish commits the pending selection and ends the session.
func (s *Session) Finish() {
	s.commit()
	s.finished = true
}

// Answered reports whether the current question has been graded.
func (s *Session) Answered() bool { return s.recorded[s.current] }
