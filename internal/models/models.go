package models

import (
	"time"
)

// Difficulty buckets a flashcard by text complexity.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulty reports whether s names one of the three buckets.
func ValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Flashcard is the atomic unit: a question/answer pair tagged with a
// mark weight and a derived difficulty. Cards belong to exactly one
// user and one source document; a re-upload replaces the whole set.
type Flashcard struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"userId"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Marks      int        `json:"marks"`
	Difficulty Difficulty `json:"difficulty"`
	Filename   string     `json:"filename"`
	UploadDate time.Time  `json:"uploadDate"`
}

type Upload struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Filename   string    `json:"filename"`
	StoredPath string    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type HistoryEntry struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}
