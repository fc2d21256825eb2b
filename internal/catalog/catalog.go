package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/gamma-omg/linguaflow/internal/pkg/fn"
	"gopkg.in/yaml.v3"
)

//go:embed lessons.yaml
var lessonsYAML []byte

var ErrNotFound = errors.New("lesson not found")

// Catalog holds the fixed lesson collection. It is read-only after Load.
type Catalog struct {
	lessons []model.Lesson
	byID    map[string]model.Lesson
}

// Load parses the embedded lesson catalog.
func Load() (*Catalog, error) {
	var lessons []model.Lesson
	if err := yaml.Unmarshal(lessonsYAML, &lessons); err != nil {
		return nil, fmt.Errorf("parse lesson catalog: %w", err)
	}

	return New(lessons), nil
}

// New builds a catalog from the given lessons.
func New(lessons []model.Lesson) *Catalog {
	byID := make(map[string]model.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}

	return &Catalog{lessons: lessons, byID: byID}
}

// Summaries returns the list-view projection of every lesson, in catalog order.
func (c *Catalog) Summaries() []model.LessonSummary {
	return fn.Map(c.lessons, func(l model.Lesson) model.LessonSummary {
		words := 0
		for _, p := range l.Paragraphs {
			words += len(strings.Fields(p.Text))
		}

		return model.LessonSummary{
			ID:            l.ID,
			Title:         l.Title,
			Subtitle:      l.Subtitle,
			Level:         l.Level,
			Category:      l.Category,
			CoverEmoji:    l.CoverEmoji,
			EstimatedTime: l.EstimatedTime,
			WordCount:     words,
			VocabCount:    len(l.Vocabulary),
		}
	})
}

// Lesson returns the full lesson with the given id.
func (c *Catalog) Lesson(id string) (model.Lesson, error) {
	l, ok := c.byID[id]
	if !ok {
		return model.Lesson{}, ErrNotFound
	}

	return l, nil
}

// Len reports the number of lessons in the catalog.
func (c *Catalog) Len() int {
	return len(c.lessons)
}
