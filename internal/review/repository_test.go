package review

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(filename string) StoredSet {
	return StoredSet{
		Filename: filename,
		Date:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Cards:    cardsWithMarks(1, 2, 5),
	}
}

func repositories(t *testing.T) map[string]FlashcardRepository {
	t.Helper()
	return map[string]FlashcardRepository{
		"memory": NewMemoryRepository(),
		"file":   NewFileRepository(filepath.Join(t.TempDir(), "history.json")),
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.LoadLatest()
			assert.ErrorIs(t, err, ErrEmptyHistory)

			require.NoError(t, repo.Save(sampleSet("first.pdf")))
			require.NoError(t, repo.Save(sampleSet("second.pdf")))

			latest, err := repo.LoadLatest()
			require.NoError(t, err)
			assert.Equal(t, "second.pdf", latest.Filename)
			assert.Len(t, latest.Cards, 3)

			history, err := repo.LoadHistory()
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, "second.pdf", history[0].Filename, "newest first")
			assert.Equal(t, "first.pdf", history[1].Filename)
		})
	}
}

func TestRepositoryDelete(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Save(sampleSet("keep.pdf")))
			require.NoError(t, repo.Save(sampleSet("drop.pdf")))

			require.NoError(t, repo.Delete("drop.pdf"))

			history, err := repo.LoadHistory()
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, "keep.pdf", history[0].Filename)
		})
	}
}

func TestFileRepositoryPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	first := NewFileRepository(path)
	require.NoError(t, first.Save(sampleSet("notes.pdf")))

	second := NewFileRepository(path)
	latest, err := second.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", latest.Filename)
	assert.Equal(t, sampleSet("notes.pdf").Date, latest.Date)
}
