package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"studycards/internal/models"
)

// FlashcardService owns the persisted card sets. Each user has exactly
// one live set; a new upload replaces it atomically.
type FlashcardService struct {
	db *sql.DB

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewFlashcardService(db *sql.DB) *FlashcardService {
	return &FlashcardService{db: db, userLocks: make(map[string]*sync.Mutex)}
}

// lockFor returns the per-user mutex, creating it on first use.
// Concurrent uploads for the same user serialize here so the
// delete-then-insert below can never interleave.
func (s *FlashcardService) lockFor(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// ReplaceForUser swaps the user's card set for cards inside one
// transaction and returns the saved cards with their assigned IDs.
func (s *FlashcardService) ReplaceForUser(ctx context.Context, userID string, cards []models.Flashcard) ([]models.Flashcard, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("clear cards: %w", err)
	}

	saved := make([]models.Flashcard, 0, len(cards))
	for _, card := range cards {
		card.UserID = userID
		res, err := tx.ExecContext(ctx,
			`INSERT INTO flashcards (user_id, question, answer, marks, difficulty, filename, upload_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			card.UserID, card.Question, card.Answer, card.Marks, card.Difficulty, card.Filename, card.UploadDate)
		if err != nil {
			return nil, fmt.Errorf("insert card: %w", err)
		}
		card.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("card id: %w", err)
		}
		saved = append(saved, card)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return saved, nil
}

// ListFilter narrows a listing; zero values mean no filtering.
type ListFilter struct {
	Difficulty string
	Marks      int
}

// ListByUser returns the user's current set ordered by marks then
// difficulty, optionally filtered.
func (s *FlashcardService) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]models.Flashcard, error) {
	query := `SELECT id, user_id, question, answer, marks, difficulty, filename, upload_date
		FROM flashcards WHERE user_id = ?`
	args := []any{userID}

	if filter.Difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, filter.Difficulty)
	}
	if filter.Marks > 0 {
		query += ` AND marks = ?`
		args = append(args, filter.Marks)
	}
	query += ` ORDER BY marks, difficulty`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var card models.Flashcard
		if err := rows.Scan(&card.ID, &card.UserID, &card.Question, &card.Answer,
			&card.Marks, &card.Difficulty, &card.Filename, &card.UploadDate); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
