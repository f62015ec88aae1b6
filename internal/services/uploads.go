package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"studycards/internal/models"
)

// UploadService archives raw uploaded documents on disk and records
// them in the database. Stored names are UUIDs so user-supplied
// filenames never touch the filesystem.
type UploadService struct {
	db  *sql.DB
	dir string
}

func NewUploadService(db *sql.DB, dir string) *UploadService {
	return &UploadService{db: db, dir: dir}
}

// Record writes data to the upload directory under a generated name
// and inserts the metadata row.
func (s *UploadService) Record(ctx context.Context, userID, filename string, data []byte) (models.Upload, error) {
	id := uuid.NewString()
	stored := filepath.Join(s.dir, id+filepath.Ext(filename))

	if err := os.WriteFile(stored, data, 0o644); err != nil {
		return models.Upload{}, fmt.Errorf("store upload: %w", err)
	}

	upload := models.Upload{
		ID:         id,
		UserID:     userID,
		Filename:   filename,
		StoredPath: stored,
		UploadedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, user_id, filename, stored_path, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		upload.ID, upload.UserID, upload.Filename, upload.StoredPath, upload.UploadedAt)
	if err != nil {
		os.Remove(stored)
		return models.Upload{}, fmt.Errorf("insert upload: %w", err)
	}
	return upload, nil
}

// ListByUser returns the user's uploads, newest first.
func (s *UploadService) ListByUser(ctx context.Context, userID string) ([]models.Upload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, filename, stored_path, uploaded_at FROM uploads
		 WHERE user_id = ? ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []models.Upload
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.ID, &u.UserID, &u.Filename, &u.StoredPath, &u.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}
