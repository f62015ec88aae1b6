package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studycards/internal/models"
)

// HistoryService keeps the per-user log of processed documents shown
// on the dashboard.
type HistoryService struct {
	db *sql.DB
}

func NewHistoryService(db *sql.DB) *HistoryService {
	return &HistoryService{db: db}
}

func (s *HistoryService) Append(ctx context.Context, userID, fileName string) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		UserID:     userID,
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO history (user_id, file_name, uploaded_at) VALUES (?, ?, ?)`,
		entry.UserID, entry.FileName, entry.UploadedAt)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("insert history: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("history id: %w", err)
	}
	return entry, nil
}

func (s *HistoryService) ListByUser(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, file_name, uploaded_at FROM history
		 WHERE user_id = ? ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.FileName, &e.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
