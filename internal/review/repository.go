package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"studycards/internal/models"
)

// StoredSet is one saved flashcard set: the source document and the
// cards generated from it.
type StoredSet struct {
	Filename string             `json:"filename"`
	Date     time.Time          `json:"date"`
	Cards    []models.Flashcard `json:"cards"`
}

// ErrEmptyHistory is returned when no set has been saved yet.
var ErrEmptyHistory = errors.New("no stored flashcard sets")

// FlashcardRepository persists flashcard sets for offline review.
type FlashcardRepository interface {
	Save(set StoredSet) error
	LoadLatest() (StoredSet, error)
	LoadHistory() ([]StoredSet, error)
	Delete(filename string) error
}

// MemoryRepository keeps sets in memory, newest first. Used in tests
// and as the default before a storage path is configured.
type MemoryRepository struct {
	sets []StoredSet
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(set StoredSet) error {
	r.sets = append([]StoredSet{set}, r.sets...)
	return nil
}

func (r *MemoryRepository) LoadLatest() (StoredSet, error) {
	if len(r.sets) == 0 {
		return StoredSet{}, ErrEmptyHistory
	}
	return r.sets[0], nil
}

func (r *MemoryRepository) LoadHistory() ([]StoredSet, error) {
	out := make([]StoredSet, len(r.sets))
	copy(out, r.sets)
	return out, nil
}

func (r *MemoryRepository) Delete(filename string) error {
	kept := r.sets[:0]
	for _, set := range r.sets {
		if set.Filename != filename {
			kept = append(kept, set)
		}
	}
	r.sets = kept
	return nil
}

// FileRepository stores the whole history as one JSON file, newest
// first. Suitable for the single-user review flow; concurrent writers
// are not supported.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) load() ([]StoredSet, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	var sets []StoredSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("decode history file: %w", err)
	}
	return sets, nil
}

func (r *FileRepository) store(sets []StoredSet) error {
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

func (r *FileRepository) Save(set StoredSet) error {
	sets, err := r.load()
	if err != nil {
		return err
	}
	return r.store(append([]StoredSet{set}, sets...))
}

func (r *FileRepository) LoadLatest() (StoredSet, error) {
	sets, err := r.load()
	if err != nil {
		return StoredSet{}, err
	}
	if len(sets) == 0 {
		return StoredSet{}, ErrEmptyHistory
	}
	return sets[0], nil
}

func (r *FileRepository) LoadHistory() ([]StoredSet, error) {
	return r.load()
}

func (r *FileRepository) Delete(filename string) error {
	sets, err := r.load()
	if err != nil {
		return err
	}
	kept := sets[:0]
	for _, set := range sets {
		if set.Filename != filename {
			kept = append(kept, set)
		}
	}
	return r.store(kept)
}
