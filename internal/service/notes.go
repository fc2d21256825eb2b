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

type notesStore interface {
	Insert(n model.Note) (model.Note, error)
	ListByLesson(lessonID string) []model.Note
	Delete(id string) error
}

// NotesService manages free-text lesson annotations.
type NotesService struct {
	store notesStore
}

func NewNotesService(store notesStore) *NotesService {
	return &NotesService{store: store}
}

type AddNoteRequest struct {
	LessonID      string
	Content       string
	HighlightText string
	Position      *int
}

// Add creates a note. Content that is empty after trimming whitespace is a
// validation error; the note text itself is stored as given.
func (s *NotesService) Add(r AddNoteRequest) (model.Note, error) {
	if strings.TrimSpace(r.Content) == "" {
		return model.Note{}, serr.NewServiceError(nil, http.StatusBadRequest, "note content is required")
	}

	n, err := s.store.Insert(model.Note{
		LessonID:      r.LessonID,
		Content:       r.Content,
		HighlightText: r.HighlightText,
		Position:      r.Position,
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("insert note: %w", err)
	}

	return n, nil
}

// List returns the notes for a lesson, newest first. An empty lesson id
// returns all notes.
func (s *NotesService) List(lessonID string) []model.Note {
	return s.store.ListByLesson(lessonID)
}

// Remove deletes a note by id. If the note is not found, it returns a
// ServiceError with status code 404.
func (s *NotesService) Remove(id string) error {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			se := serr.NewServiceError(err, http.StatusNotFound, "note not found")
			se.Env["note_id"] = id
			return se
		}

		return fmt.Errorf("delete note: %w", err)
	}

	return nil
}
