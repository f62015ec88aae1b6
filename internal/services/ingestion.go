package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"studycards/internal/generator"
	"studycards/internal/models"
)

// TextExtractor pulls plain text out of a raw document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// CardGenerator produces the flashcard set for a document's text.
type CardGenerator interface {
	Generate(ctx context.Context, text string) ([]models.Flashcard, error)
}

// UploadResult is the payload the upload endpoint returns: the fresh
// card set plus a per-mark distribution summary.
type UploadResult struct {
	Flashcards []models.Flashcard `json:"flashcards"`
	Filename   string             `json:"filename"`
	UploadDate time.Time          `json:"uploadDate"`
	Statistics map[int]int        `json:"statistics"`
	Total      int                `json:"total"`
}

// IngestionService runs the whole upload flow: extract text, generate
// cards, replace the user's set, archive the file, and log history.
type IngestionService struct {
	extractor  TextExtractor
	generator  CardGenerator
	flashcards *FlashcardService
	uploads    *UploadService
	history    *HistoryService
}

func NewIngestionService(extractor TextExtractor, gen CardGenerator,
	flashcards *FlashcardService, uploads *UploadService, history *HistoryService) *IngestionService {
	return &IngestionService{
		extractor:  extractor,
		generator:  gen,
		flashcards: flashcards,
		uploads:    uploads,
		history:    history,
	}
}

// ProcessUpload is synchronous: the caller blocks until the new card
// set is committed and gets it back in one round trip.
func (s *IngestionService) ProcessUpload(ctx context.Context, userID, filename string, data []byte) (UploadResult, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return UploadResult{}, fmt.Errorf("extract text: %w", err)
	}

	cards, err := s.generator.Generate(ctx, text)
	if err != nil {
		return UploadResult{}, fmt.Errorf("generate flashcards: %w", err)
	}

	uploadDate := time.Now().UTC()
	for i := range cards {
		cards[i].UserID = userID
		cards[i].Filename = filename
		cards[i].UploadDate = uploadDate
	}

	saved, err := s.flashcards.ReplaceForUser(ctx, userID, cards)
	if err != nil {
		return UploadResult{}, fmt.Errorf("save flashcards: %w", err)
	}

	// Archival and history are best-effort: the card set is already
	// committed, so a full-disk error here must not fail the request.
	if _, err := s.uploads.Record(ctx, userID, filename, data); err != nil {
		logrus.WithError(err).Warn("archive upload failed")
	}
	if _, err := s.history.Append(ctx, userID, filename); err != nil {
		logrus.WithError(err).Warn("append history failed")
	}

	logrus.WithFields(logrus.Fields{
		"user":  userID,
		"file":  filename,
		"cards": len(saved),
	}).Info("processed upload")

	return UploadResult{
		Flashcards: saved,
		Filename:   filename,
		UploadDate: uploadDate,
		Statistics: generator.Statistics(saved),
		Total:      len(saved),
	}, nil
}
