package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studycards/internal/models"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText([]byte) (string, error) { return s.text, s.err }

type stubGenerator struct {
	cards []models.Flashcard
	err   error
}

func (s stubGenerator) Generate(context.Context, string) ([]models.Flashcard, error) {
	return s.cards, s.err
}

func newIngestion(t *testing.T, extractor TextExtractor, gen CardGenerator) (*IngestionService, *FlashcardService, *HistoryService, models.User) {
	t.Helper()
	conn := testDB(t)
	user := testUser(t, conn)
	flashcards := NewFlashcardService(conn)
	uploads := NewUploadService(conn, t.TempDir())
	history := NewHistoryService(conn)
	return NewIngestionService(extractor, gen, flashcards, uploads, history), flashcards, history, user
}

func TestProcessUpload(t *testing.T) {
	gen := stubGenerator{cards: makeCards(20, 1)}
	svc, flashcards, history, user := newIngestion(t, stubExtractor{text: "some text"}, gen)
	ctx := context.Background()

	result, err := svc.ProcessUpload(ctx, user.ID, "notes.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", result.Filename)
	assert.Equal(t, 20, result.Total)
	assert.Equal(t, map[int]int{1: 20}, result.Statistics)
	require.Len(t, result.Flashcards, 20)
	for _, card := range result.Flashcards {
		assert.NotZero(t, card.ID)
		assert.Equal(t, user.ID, card.UserID)
		assert.Equal(t, "notes.pdf", card.Filename)
		assert.WithinDuration(t, time.Now().UTC(), card.UploadDate, time.Minute)
	}

	listed, err := flashcards.ListByUser(ctx, user.ID, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 20)

	entries, err := history.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes.pdf", entries[0].FileName)
}

func TestProcessUploadExtractionFailure(t *testing.T) {
	svc, _, _, user := newIngestion(t, stubExtractor{err: errors.New("bad pdf")}, stubGenerator{})

	_, err := svc.ProcessUpload(context.Background(), user.ID, "broken.pdf", []byte("junk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract text")
}

func TestProcessUploadGenerationFailure(t *testing.T) {
	gen := stubGenerator{err: errors.New("no cards")}
	svc, flashcards, _, user := newIngestion(t, stubExtractor{text: "short"}, gen)
	ctx := context.Background()

	_, err := svc.ProcessUpload(ctx, user.ID, "empty.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)

	listed, err := flashcards.ListByUser(ctx, user.ID, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed, "a failed upload must not disturb existing cards")
}

func TestProcessUploadReplacesPreviousSet(t *testing.T) {
	gen := stubGenerator{cards: makeCards(20, 2)}
	svc, flashcards, _, user := newIngestion(t, stubExtractor{text: "text"}, gen)
	ctx := context.Background()

	_, err := svc.ProcessUpload(ctx, user.ID, "first.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	_, err = svc.ProcessUpload(ctx, user.ID, "second.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	listed, err := flashcards.ListByUser(ctx, user.ID, ListFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 20)
	for _, card := range listed {
		assert.Equal(t, "second.pdf", card.Filename)
	}
}
