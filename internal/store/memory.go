package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/google/uuid"
)

// MemoryWordbook is an in-memory Wordbook guarded by a RWMutex. The
// dedup-check-then-insert sequence runs under the write lock, so concurrent
// adds of the same word cannot both pass the duplicate check.
type MemoryWordbook struct {
	mu      sync.RWMutex
	entries []model.Word

	now   func() time.Time
	newID func() string
}

func NewMemoryWordbook() *MemoryWordbook {
	return &MemoryWordbook{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the timestamp source. Tests only.
func (s *MemoryWordbook) WithClock(now func() time.Time) *MemoryWordbook {
	s.now = now
	return s
}

// WithIDs overrides the identifier source. Tests only.
func (s *MemoryWordbook) WithIDs(newID func() string) *MemoryWordbook {
	s.newID = newID
	return s
}

func (s *MemoryWordbook) Insert(w model.Word) (model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if strings.EqualFold(e.Word, w.Word) {
			return cloneWord(e), ErrExists
		}
	}

	w.ID = s.newID()
	w.Mastered = false
	w.ReviewCount = 0
	w.AddedAt = s.now().UTC()
	if w.Examples == nil {
		w.Examples = []string{}
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}

	s.entries = append(s.entries, cloneWord(w))
	return w, nil
}

func (s *MemoryWordbook) Get(id string) (model.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return cloneWord(e), nil
		}
	}

	return model.Word{}, ErrNotFound
}

func (s *MemoryWordbook) Update(id string, p WordPatch) (model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}

		e := &s.entries[i]
		if p.Mastered != nil {
			e.Mastered = *p.Mastered
		}
		if p.ReviewCount != nil {
			e.ReviewCount = *p.ReviewCount
		}
		if p.Tags != nil {
			e.Tags = append([]string(nil), *p.Tags...)
		}
		if p.Definition != nil {
			e.Definition = *p.Definition
		}
		if p.DefinitionEn != nil {
			e.DefinitionEn = *p.DefinitionEn
		}
		if p.Examples != nil {
			e.Examples = append([]string(nil), *p.Examples...)
		}
		if p.Phonetic != nil {
			e.Phonetic = *p.Phonetic
		}

		return cloneWord(*e), nil
	}

	return model.Word{}, ErrNotFound
}

func (s *MemoryWordbook) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (s *MemoryWordbook) Query(f WordFilter) WordQueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mastered := 0
	for _, e := range s.entries {
		if e.Mastered {
			mastered++
		}
	}

	var matched []model.Word
	for _, e := range s.entries {
		if matches(e, f) {
			matched = append(matched, cloneWord(e))
		}
	}

	// Newest first; the stable sort keeps insertion order on equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].AddedAt.After(matched[j].AddedAt)
	})

	return WordQueryResult{
		Words:         matched,
		Total:         len(matched),
		MasteredCount: mastered,
		TotalCount:    len(s.entries),
	}
}

func (s *MemoryWordbook) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, e := range s.entries {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return tags
}

func matches(w model.Word, f WordFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.Word), needle) &&
			!strings.Contains(strings.ToLower(w.Definition), needle) &&
			!strings.Contains(strings.ToLower(w.DefinitionEn), needle) {
			return false
		}
	}
	if f.Tag != "" {
		found := false
		for _, t := range w.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Mastered != nil && w.Mastered != *f.Mastered {
		return false
	}

	return true
}

func cloneWord(w model.Word) model.Word {
	w.Examples = append([]string(nil), w.Examples...)
	w.Tags = append([]string(nil), w.Tags...)
	return w
}

// MemoryNotes is an in-memory Notes store guarded by a RWMutex.
type MemoryNotes struct {
	mu    sync.RWMutex
	notes []model.Note

	now   func() time.Time
	newID func() string
}

func NewMemoryNotes() *MemoryNotes {
	return &MemoryNotes{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the timestamp source. Tests only.
func (s *MemoryNotes) WithClock(now func() time.Time) *MemoryNotes {
	s.now = now
	return s
}

func (s *MemoryNotes) Insert(n model.Note) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.newID()
	n.CreatedAt = s.now().UTC()
	s.notes = append(s.notes, n)

	return n, nil
}

func (s *MemoryNotes) ListByLesson(lessonID string) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Note
	for _, n := range s.notes {
		if lessonID == "" || n.LessonID == lessonID {
			result = append(result, n)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result
}

func (s *MemoryNotes) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
