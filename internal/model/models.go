package model

import "time"

// PartOfSpeech values used by lesson vocabulary and wordbook entries.
const (
	Noun      = "noun"
	Pronoun   = "pronoun"
	Verb      = "verb"
	Adjective = "adjective"
	Adverb    = "adverb"
)

// Lesson is a fixed reading article with paragraphs and associated vocabulary.
// Lessons are loaded once at startup and never mutated.
type Lesson struct {
	ID            string      `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	Subtitle      string      `json:"subtitle" yaml:"subtitle"`
	Level         string      `json:"level" yaml:"level"`
	Category      string      `json:"category" yaml:"category"`
	CoverEmoji    string      `json:"coverEmoji" yaml:"coverEmoji"`
	EstimatedTime string      `json:"estimatedTime" yaml:"estimatedTime"`
	Paragraphs    []Paragraph `json:"paragraphs" yaml:"paragraphs"`
	Vocabulary    []VocabItem `json:"vocabulary" yaml:"vocabulary"`
}

// LessonSummary is the list-view projection of a lesson. WordCount is the
// whitespace-separated token count over all paragraphs.
type LessonSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Level         string `json:"level"`
	Category      string `json:"category"`
	CoverEmoji    string `json:"coverEmoji"`
	EstimatedTime string `json:"estimatedTime"`
	WordCount     int    `json:"wordCount"`
	VocabCount    int    `json:"vocabCount"`
}

type Paragraph struct {
	Text        string `json:"text" yaml:"text"`
	Translation string `json:"translation,omitempty" yaml:"translation,omitempty"`
}

// VocabItem is one vocabulary entry of a lesson. The surface form is stored
// as authored; matching against lesson text is case-insensitive.
type VocabItem struct {
	Word         string   `json:"word" yaml:"word"`
	Phonetic     string   `json:"phonetic" yaml:"phonetic"`
	Definition   string   `json:"definition" yaml:"definition"`
	DefinitionEn string   `json:"definitionEn" yaml:"definitionEn"`
	PartOfSpeech string   `json:"partOfSpeech" yaml:"partOfSpeech"`
	Examples     []string `json:"examples" yaml:"examples"`
}

// Word is a learner-saved wordbook entry. At most one entry exists per
// distinct word value, compared case-insensitively.
type Word struct {
	ID           string    `json:"id" yaml:"id"`
	Word         string    `json:"word" yaml:"word"`
	Phonetic     string    `json:"phonetic" yaml:"phonetic"`
	Definition   string    `json:"definition" yaml:"definition"`
	DefinitionEn string    `json:"definitionEn" yaml:"definitionEn"`
	PartOfSpeech string    `json:"partOfSpeech" yaml:"partOfSpeech"`
	Examples     []string  `json:"examples" yaml:"examples"`
	Tags         []string  `json:"tags" yaml:"tags"`
	Mastered     bool      `json:"mastered" yaml:"mastered"`
	AddedAt      time.Time `json:"addedAt" yaml:"addedAt"`
	ReviewCount  int       `json:"reviewCount" yaml:"reviewCount"`
	AudioURL     string    `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
}

// Note is a free-text annotation attached to a lesson. Notes are immutable
// after creation except for deletion.
type Note struct {
	ID            string    `json:"id" yaml:"id"`
	LessonID      string    `json:"lessonId" yaml:"lessonId"`
	Content       string    `json:"content" yaml:"content"`
	HighlightText string    `json:"highlightText,omitempty" yaml:"highlightText,omitempty"`
	Position      *int      `json:"position,omitempty" yaml:"position,omitempty"`
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
}
