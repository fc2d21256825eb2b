package store

import (
	"errors"

	"github.com/gamma-omg/linguaflow/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// WordFilter selects wordbook entries. All provided filters apply
// conjunctively; a zero-value field imposes no constraint.
type WordFilter struct {
	// Search is a case-insensitive substring matched against the word text
	// and both definitions.
	Search string
	// Tag must match one of the entry's tags exactly.
	Tag string
	// Mastered filters on the mastery flag when non-nil.
	Mastered *bool
}

// WordQueryResult carries the filtered entries plus store-wide stats that
// ignore the filter.
type WordQueryResult struct {
	Words         []model.Word
	Total         int
	MasteredCount int
	TotalCount    int
}

// WordPatch is a shallow partial update. Only non-nil fields overwrite.
type WordPatch struct {
	Mastered     *bool
	ReviewCount  *int
	Tags         *[]string
	Definition   *string
	DefinitionEn *string
	Examples     *[]string
	Phonetic     *string
}

// Wordbook is the learner's saved-word collection.
type Wordbook interface {
	// Insert stores a new entry unless one with the same word text already
	// exists (compared case-insensitively), in which case it returns the
	// existing entry together with ErrExists and leaves the store unchanged.
	Insert(w model.Word) (model.Word, error)
	Get(id string) (model.Word, error)
	Update(id string, p WordPatch) (model.Word, error)
	Delete(id string) error
	Query(f WordFilter) WordQueryResult
	// Tags returns the sorted distinct tag set across all entries.
	Tags() []string
}

// Notes holds free-text lesson annotations.
type Notes interface {
	Insert(n model.Note) (model.Note, error)
	ListByLesson(lessonID string) []model.Note
	Delete(id string) error
}
