package annotate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gamma-omg/linguaflow/internal/model"
)

// span is a half-open byte range [start, end) claimed by one vocabulary word.
type span struct {
	start int
	end   int
	word  string
}

// Annotate wraps every whole-word, case-insensitive occurrence of each
// vocabulary surface form in a lookup span carrying the lowercased word as
// its lookup key. The displayed text keeps its original casing.
//
// Overlap policy: vocabulary is matched in descending surface-length order
// and text claimed by an earlier match is never re-matched, so the longest
// vocabulary word wins. Equal lengths fall back to vocabulary-list order.
// The input must be pristine source text; re-running Annotate on its own
// output would wrap matches twice.
func Annotate(text string, vocab []model.VocabItem) string {
	if text == "" || len(vocab) == 0 {
		return text
	}

	ordered := make([]model.VocabItem, len(vocab))
	copy(ordered, vocab)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Word) > len(ordered[j].Word)
	})

	var claimed []span
	for _, v := range ordered {
		if v.Word == "" {
			continue
		}

		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(v.Word) + `\b`)
		if err != nil {
			continue
		}

		for _, m := range re.FindAllStringIndex(text, -1) {
			if overlaps(claimed, m[0], m[1]) {
				continue
			}
			claimed = append(claimed, span{start: m[0], end: m[1], word: strings.ToLower(v.Word)})
		}
	}

	if len(claimed) == 0 {
		return text
	}

	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	var b strings.Builder
	last := 0
	for _, s := range claimed {
		b.WriteString(text[last:s.start])
		b.WriteString(`<span class="vocab-highlight" data-word="`)
		b.WriteString(s.word)
		b.WriteString(`">`)
		b.WriteString(text[s.start:s.end])
		b.WriteString(`</span>`)
		last = s.end
	}
	b.WriteString(text[last:])

	return b.String()
}

func overlaps(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// Annotator annotates lesson paragraphs with a cache in front. Lessons are
// immutable, so a cached paragraph never goes stale.
type Annotator struct {
	cache *ristretto.Cache[string, string]
}

type AnnotatorConfig struct {
	MaxKeys int64
	MaxCost int64
}

func NewAnnotator(cfg AnnotatorConfig) *Annotator {
	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: cfg.MaxKeys * 10,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create annotation cache: %v", err))
	}

	return &Annotator{cache: c}
}

// Paragraph returns the annotated text of one lesson paragraph, computing
// and caching it on first use.
func (a *Annotator) Paragraph(lessonID string, index int, text string, vocab []model.VocabItem) string {
	key := fmt.Sprintf("%s/%d", lessonID, index)
	if html, found := a.cache.Get(key); found {
		return html
	}

	html := Annotate(text, vocab)
	a.cache.Set(key, html, 1)
	return html
}

// Wait blocks until pending cache writes are applied. Tests only.
func (a *Annotator) Wait() {
	a.cache.Wait()
}
