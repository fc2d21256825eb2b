package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/gamma-omg/linguaflow/internal/pkg/serr"
	"github.com/gamma-omg/linguaflow/internal/store"
)

type wordbookStore interface {
	Insert(w model.Word) (model.Word, error)
	Get(id string) (model.Word, error)
	Update(id string, p store.WordPatch) (model.Word, error)
	Delete(id string) error
	Query(f store.WordFilter) store.WordQueryResult
	Tags() []string
}

// WordbookService provides access to the learner's wordbook.
type WordbookService struct {
	store wordbookStore
}

func NewWordbookService(store wordbookStore) *WordbookService {
	return &WordbookService{store: store}
}

type AddWordRequest struct {
	Word         string
	Phonetic     string
	Definition   string
	DefinitionEn string
	PartOfSpeech string
	Examples     []string
	Tags         []string
	AudioURL     string
}

type AddWordResponse struct {
	Word model.Word
	// Created is false when the word was already present; the returned
	// entry is then the pre-existing one, unchanged.
	Created bool
}

// Add saves a word to the wordbook. Adding a word that is already present
// (compared case-insensitively) is not an error: the existing entry is
// returned with Created=false and the store stays unchanged.
func (s *WordbookService) Add(r AddWordRequest) (AddWordResponse, error) {
	if strings.TrimSpace(r.Word) == "" {
		return AddWordResponse{}, serr.NewServiceError(nil, http.StatusBadRequest, "word text is required")
	}

	w, err := s.store.Insert(model.Word{
		Word:         r.Word,
		Phonetic:     r.Phonetic,
		Definition:   r.Definition,
		DefinitionEn: r.DefinitionEn,
		PartOfSpeech: r.PartOfSpeech,
		Examples:     r.Examples,
		Tags:         r.Tags,
		AudioURL:     r.AudioURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return AddWordResponse{Word: w, Created: false}, nil
		}

		return AddWordResponse{}, fmt.Errorf("insert word: %w", err)
	}

	return AddWordResponse{Word: w, Created: true}, nil
}

// Update merges the given partial fields into the entry with the given id.
// If no entry has that id, it returns a ServiceError with status code 404.
func (s *WordbookService) Update(id string, p store.WordPatch) (model.Word, error) {
	w, err := s.store.Update(id, p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			se := serr.NewServiceError(err, http.StatusNotFound, "word not found")
			se.Env["word_id"] = id
			return model.Word{}, se
		}

		return model.Word{}, fmt.Errorf("update word: %w", err)
	}

	return w, nil
}

// Remove deletes a wordbook entry by id. If the entry is not found, it
// returns a ServiceError with status code 404.
func (s *WordbookService) Remove(id string) error {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			se := serr.NewServiceError(err, http.StatusNotFound, "word not found")
			se.Env["word_id"] = id
			return se
		}

		return fmt.Errorf("delete word: %w", err)
	}

	return nil
}

// Query returns the entries matching the filter, newest first, together
// with store-wide totals that ignore the filter.
func (s *WordbookService) Query(f store.WordFilter) store.WordQueryResult {
	return s.store.Query(f)
}

// Tags returns the sorted distinct tag set across the wordbook.
func (s *WordbookService) Tags() []string {
	return s.store.Tags()
}
