package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/gamma-omg/linguaflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWordbook() (*store.MemoryWordbook, *time.Time) {
	now := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	wb := store.NewMemoryWordbook().WithClock(func() time.Time {
		return now
	})
	return wb, &now
}

func TestInsert(t *testing.T) {
	wb, _ := newTestWordbook()

	w, err := wb.Insert(model.Word{Word: "trajectory", PartOfSpeech: model.Noun})
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "trajectory", w.Word)
	assert.False(t, w.Mastered)
	assert.Equal(t, 0, w.ReviewCount)
	assert.Equal(t, []string{}, w.Examples)
	assert.Equal(t, []string{}, w.Tags)
	assert.False(t, w.AddedAt.IsZero())
}

func TestInsert_DuplicateReturnsExisting(t *testing.T) {
	wb, _ := newTestWordbook()

	first, err := wb.Insert(model.Word{Word: "trajectory"})
	require.NoError(t, err)

	second, err := wb.Insert(model.Word{Word: "Trajectory", Definition: "something else"})
	require.ErrorIs(t, err, store.ErrExists)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "trajectory", second.Word)

	res := wb.Query(store.WordFilter{})
	assert.Equal(t, 1, res.TotalCount)
}

func TestInsert_ConcurrentSameWord(t *testing.T) {
	wb := store.NewMemoryWordbook()

	var wg sync.WaitGroup
	created := make(chan model.Word, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := wb.Insert(model.Word{Word: "compelling"})
			if err == nil {
				created <- w
			}
		}()
	}
	wg.Wait()
	close(created)

	var wins int
	for range created {
		wins++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, wb.Query(store.WordFilter{}).TotalCount)
}

func TestUpdate_PartialFieldsPreserved(t *testing.T) {
	wb, _ := newTestWordbook()
	w, err := wb.Insert(model.Word{
		Word:         "trajectory",
		Definition:   "轨迹",
		DefinitionEn: "the path followed by a moving object",
		Tags:         []string{"noun"},
	})
	require.NoError(t, err)

	mastered := true
	updated, err := wb.Update(w.ID, store.WordPatch{Mastered: &mastered})
	require.NoError(t, err)

	assert.True(t, updated.Mastered)
	assert.Equal(t, "轨迹", updated.Definition)
	assert.Equal(t, "the path followed by a moving object", updated.DefinitionEn)
	assert.Equal(t, []string{"noun"}, updated.Tags)
	assert.Equal(t, 0, updated.ReviewCount)
}

func TestUpdate_NotFound(t *testing.T) {
	wb, _ := newTestWordbook()

	mastered := true
	_, err := wb.Update("missing", store.WordPatch{Mastered: &mastered})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	wb, _ := newTestWordbook()
	w, err := wb.Insert(model.Word{Word: "trajectory"})
	require.NoError(t, err)

	require.NoError(t, wb.Delete(w.ID))
	_, err = wb.Get(w.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_NotFoundLeavesStoreIntact(t *testing.T) {
	wb, _ := newTestWordbook()
	_, err := wb.Insert(model.Word{Word: "trajectory"})
	require.NoError(t, err)

	err = wb.Delete("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 1, wb.Query(store.WordFilter{}).TotalCount)
}

func TestQuery_FiltersAreConjunctive(t *testing.T) {
	now := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	wb := store.NewMemoryWordbook().WithClock(func() time.Time { return now })

	w1, err := wb.Insert(model.Word{Word: "advocate", Tags: []string{"verb"}})
	require.NoError(t, err)
	_, err = wb.Insert(model.Word{Word: "cultivate", Tags: []string{"verb"}})
	require.NoError(t, err)
	_, err = wb.Insert(model.Word{Word: "robust", Tags: []string{"adjective"}})
	require.NoError(t, err)

	mastered := true
	_, err = wb.Update(w1.ID, store.WordPatch{Mastered: &mastered})
	require.NoError(t, err)

	res := wb.Query(store.WordFilter{Tag: "verb", Mastered: &mastered})
	require.Len(t, res.Words, 1)
	assert.Equal(t, "advocate", res.Words[0].Word)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.MasteredCount)
}

func TestQuery_SearchMatchesDefinitions(t *testing.T) {
	wb, _ := newTestWordbook()
	_, err := wb.Insert(model.Word{Word: "robust", DefinitionEn: "strong and healthy"})
	require.NoError(t, err)
	_, err = wb.Insert(model.Word{Word: "efficacy", Definition: "功效"})
	require.NoError(t, err)

	res := wb.Query(store.WordFilter{Search: "STRONG"})
	require.Len(t, res.Words, 1)
	assert.Equal(t, "robust", res.Words[0].Word)

	res = wb.Query(store.WordFilter{Search: "功效"})
	require.Len(t, res.Words, 1)
	assert.Equal(t, "efficacy", res.Words[0].Word)
}

func TestQuery_NewestFirstStableOrder(t *testing.T) {
	now := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	wb := store.NewMemoryWordbook().WithClock(func() time.Time { return now })

	// Two entries share a timestamp; a third is newer.
	_, err := wb.Insert(model.Word{Word: "first"})
	require.NoError(t, err)
	_, err = wb.Insert(model.Word{Word: "second"})
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = wb.Insert(model.Word{Word: "third"})
	require.NoError(t, err)

	res := wb.Query(store.WordFilter{})
	require.Len(t, res.Words, 3)
	assert.Equal(t, "third", res.Words[0].Word)
	assert.Equal(t, "first", res.Words[1].Word)
	assert.Equal(t, "second", res.Words[2].Word)
}

func TestTags(t *testing.T) {
	wb, _ := newTestWordbook()
	_, err := wb.Insert(model.Word{Word: "advocate", Tags: []string{"verb", "lesson-2"}})
	require.NoError(t, err)
	_, err = wb.Insert(model.Word{Word: "robust", Tags: []string{"adjective", "lesson-2"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"adjective", "lesson-2", "verb"}, wb.Tags())
}

func TestTags_Empty(t *testing.T) {
	wb, _ := newTestWordbook()
	assert.Empty(t, wb.Tags())
}

func TestNotesInsertAndList(t *testing.T) {
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	ns := store.NewMemoryNotes().WithClock(func() time.Time { return now })

	first, err := ns.Insert(model.Note{LessonID: "lesson-1", Content: "first"})
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = ns.Insert(model.Note{LessonID: "lesson-1", Content: "second"})
	require.NoError(t, err)
	_, err = ns.Insert(model.Note{LessonID: "lesson-2", Content: "other lesson"})
	require.NoError(t, err)

	notes := ns.ListByLesson("lesson-1")
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Content)
	assert.Equal(t, "first", notes[1].Content)
	assert.NotEmpty(t, first.ID)
}

func TestNotesListAll(t *testing.T) {
	ns := store.NewMemoryNotes()
	_, err := ns.Insert(model.Note{LessonID: "lesson-1", Content: "a"})
	require.NoError(t, err)
	_, err = ns.Insert(model.Note{LessonID: "lesson-2", Content: "b"})
	require.NoError(t, err)

	assert.Len(t, ns.ListByLesson(""), 2)
}

func TestNotesDelete_NotFound(t *testing.T) {
	ns := store.NewMemoryNotes()
	assert.ErrorIs(t, ns.Delete("missing"), store.ErrNotFound)
}

func TestSeedDemoData(t *testing.T) {
	wb := store.NewMemoryWordbook()
	ns := store.NewMemoryNotes()

	require.NoError(t, store.SeedDemoData(wb, ns))

	res := wb.Query(store.WordFilter{})
	require.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.MasteredCount)

	// Newest first: w-3 (Feb 21), w-1 (Feb 20), w-2 (Feb 19).
	ids := make([]string, 0, len(res.Words))
	for _, w := range res.Words {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"w-3", "w-1", "w-2"}, ids)

	w, err := wb.Get("w-1")
	require.NoError(t, err)
	assert.Equal(t, "trajectory", w.Word)
	assert.Equal(t, 2, w.ReviewCount)

	notes := ns.ListByLesson("lesson-1")
	require.Len(t, notes, 1)
	assert.Equal(t, "n-1", notes[0].ID)
	require.NotNil(t, notes[0].Position)
	assert.Equal(t, 0, *notes[0].Position)
}
