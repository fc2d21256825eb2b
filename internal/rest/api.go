package rest

import (
	"net/http"
	"strconv"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/gamma-omg/linguaflow/internal/pkg/httpx"
	"github.com/gamma-omg/linguaflow/internal/pkg/serr"
	"github.com/gamma-omg/linguaflow/internal/service"
	"github.com/gamma-omg/linguaflow/internal/store"
)

type lessonCatalog interface {
	Summaries() []model.LessonSummary
	Lesson(id string) (model.Lesson, error)
}

type wordbookService interface {
	Add(r service.AddWordRequest) (service.AddWordResponse, error)
	Update(id string, p store.WordPatch) (model.Word, error)
	Remove(id string) error
	Query(f store.WordFilter) store.WordQueryResult
	Tags() []string
}

type notesService interface {
	Add(r service.AddNoteRequest) (model.Note, error)
	List(lessonID string) []model.Note
	Remove(id string) error
}

type reviewService interface {
	Start() (string, *service.Session, error)
	Session(id string) (*service.Session, error)
	Discard(id string) error
}

type annotator interface {
	Paragraph(lessonID string, index int, text string, vocab []model.VocabItem) string
}

type API struct {
	lessons   lessonCatalog
	words     wordbookService
	notes     notesService
	review    reviewService
	annotator annotator
	mux       http.ServeMux
}

func NewAPI(lessons lessonCatalog, words wordbookService, notes notesService, review reviewService, a annotator) *API {
	api := &API{
		lessons:   lessons,
		words:     words,
		notes:     notes,
		review:    review,
		annotator: a,
		mux:       *http.NewServeMux(),
	}

	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.mux.ServeHTTP(w, r)
}

func (api *API) mount() {
	api.mux.HandleFunc("GET /lessons", api.handleListLessons)
	api.mux.HandleFunc("GET /lessons/{lesson_id}", api.handleGetLesson)
	api.mux.HandleFunc("GET /wordbook", api.handleQueryWordbook)
	api.mux.HandleFunc("POST /wordbook", api.handleAddWord)
	api.mux.HandleFunc("PATCH /wordbook/{word_id}", api.handleUpdateWord)
	api.mux.HandleFunc("DELETE /wordbook/{word_id}", api.handleDeleteWord)
	api.mux.HandleFunc("GET /notes", api.handleListNotes)
	api.mux.HandleFunc("POST /notes", api.handleAddNote)
	api.mux.HandleFunc("DELETE /notes/{note_id}", api.handleDeleteNote)
	api.mux.HandleFunc("GET /tags", api.handleListTags)
	api.mux.HandleFunc("POST /review", api.handleStartReview)
	api.mux.HandleFunc("GET /review/{session_id}", api.handleGetReview)
	api.mux.HandleFunc("POST /review/{session_id}/reveal", api.handleRevealCard)
	api.mux.HandleFunc("POST /review/{session_id}/answer", api.handleAnswerCard)
	api.mux.HandleFunc("POST /review/{session_id}/restart", api.handleRestartReview)
	api.mux.HandleFunc("DELETE /review/{session_id}", api.handleDiscardReview)
}

func (api *API) handleListLessons(w http.ResponseWriter, r *http.Request) {
	if err := httpx.WriteJSON(w, http.StatusOK, api.lessons.Summaries()); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type paragraphResponse struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	HTML        string `json:"html"`
}

type lessonResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Subtitle      string              `json:"subtitle"`
	Level         string              `json:"level"`
	Category      string              `json:"category"`
	CoverEmoji    string              `json:"coverEmoji"`
	EstimatedTime string              `json:"estimatedTime"`
	Paragraphs    []paragraphResponse `json:"paragraphs"`
	Vocabulary    []model.VocabItem   `json:"vocabulary"`
}

func (api *API) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("lesson_id")

	lesson, err := api.lessons.Lesson(id)
	if err != nil {
		se := serr.NewServiceError(err, http.StatusNotFound, "lesson not found")
		se.Env["lesson_id"] = id
		httpx.HandleErr(w, r, se)
		return
	}

	paragraphs := make([]paragraphResponse, 0, len(lesson.Paragraphs))
	for i, p := range lesson.Paragraphs {
		paragraphs = append(paragraphs, paragraphResponse{
			Text:        p.Text,
			Translation: p.Translation,
			HTML:        api.annotator.Paragraph(lesson.ID, i, p.Text, lesson.Vocabulary),
		})
	}

	err = httpx.WriteJSON(w, http.StatusOK, lessonResponse{
		ID:            lesson.ID,
		Title:         lesson.Title,
		Subtitle:      lesson.Subtitle,
		Level:         lesson.Level,
		Category:      lesson.Category,
		CoverEmoji:    lesson.CoverEmoji,
		EstimatedTime: lesson.EstimatedTime,
		Paragraphs:    paragraphs,
		Vocabulary:    lesson.Vocabulary,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type wordbookResponse struct {
	Words         []model.Word `json:"words"`
	Total         int          `json:"total"`
	MasteredCount int          `json:"masteredCount"`
	TotalCount    int          `json:"totalCount"`
}

func (api *API) handleQueryWordbook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.WordFilter{
		Search: q.Get("search"),
		Tag:    q.Get("tag"),
	}

	if v := q.Get("mastered"); v != "" {
		mastered, err := strconv.ParseBool(v)
		if err != nil {
			httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid mastered parameter"))
			return
		}
		filter.Mastered = &mastered
	}

	res := api.words.Query(filter)
	if res.Words == nil {
		res.Words = []model.Word{}
	}

	err := httpx.WriteJSON(w, http.StatusOK, wordbookResponse{
		Words:         res.Words,
		Total:         res.Total,
		MasteredCount: res.MasteredCount,
		TotalCount:    res.TotalCount,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type addWordRequest struct {
	Word         string   `json:"word"`
	Phonetic     string   `json:"phonetic"`
	Definition   string   `json:"definition"`
	DefinitionEn string   `json:"definitionEn"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Examples     []string `json:"examples"`
	Tags         []string `json:"tags"`
	AudioURL     string   `json:"audioUrl"`
}

type existingWordResponse struct {
	Message string     `json:"message"`
	Word    model.Word `json:"word"`
}

func (api *API) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	resp, err := api.words.Add(service.AddWordRequest{
		Word:         req.Word,
		Phonetic:     req.Phonetic,
		Definition:   req.Definition,
		DefinitionEn: req.DefinitionEn,
		PartOfSpeech: req.PartOfSpeech,
		Examples:     req.Examples,
		Tags:         req.Tags,
		AudioURL:     req.AudioURL,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if !resp.Created {
		err = httpx.WriteJSON(w, http.StatusOK, existingWordResponse{
			Message: "Word already in wordbook",
			Word:    resp.Word,
		})
		if err != nil {
			httpx.HandleErr(w, r, err)
		}
		return
	}

	if err := httpx.WriteJSON(w, http.StatusCreated, resp.Word); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type updateWordRequest struct {
	Mastered     *bool     `json:"mastered"`
	ReviewCount  *int      `json:"reviewCount"`
	Tags         *[]string `json:"tags"`
	Definition   *string   `json:"definition"`
	DefinitionEn *string   `json:"definitionEn"`
	Examples     *[]string `json:"examples"`
	Phonetic     *string   `json:"phonetic"`
}

func (api *API) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	var req updateWordRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	word, err := api.words.Update(r.PathValue("word_id"), store.WordPatch{
		Mastered:     req.Mastered,
		ReviewCount:  req.ReviewCount,
		Tags:         req.Tags,
		Definition:   req.Definition,
		DefinitionEn: req.DefinitionEn,
		Examples:     req.Examples,
		Phonetic:     req.Phonetic,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, word); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

func (api *API) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := api.words.Remove(r.PathValue("word_id")); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true}); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes := api.notes.List(r.URL.Query().Get("lessonId"))
	if notes == nil {
		notes = []model.Note{}
	}

	if err := httpx.WriteJSON(w, http.StatusOK, notes); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type addNoteRequest struct {
	LessonID      string `json:"lessonId"`
	Content       string `json:"content"`
	HighlightText string `json:"highlightText"`
	Position      *int   `json:"position"`
}

func (api *API) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	note, err := api.notes.Add(service.AddNoteRequest{
		LessonID:      req.LessonID,
		Content:       req.Content,
		HighlightText: req.HighlightText,
		Position:      req.Position,
	})
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusCreated, note); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := api.notes.Remove(r.PathValue("note_id")); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true}); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags := api.words.Tags()
	if tags == nil {
		tags = []string{}
	}

	if err := httpx.WriteJSON(w, http.StatusOK, tags); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type reviewCardResponse struct {
	Word         string `json:"word"`
	Phonetic     string `json:"phonetic"`
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition,omitempty"`
	DefinitionEn string `json:"definitionEn,omitempty"`
	Example      string `json:"example,omitempty"`
}

type reviewStateResponse struct {
	SessionID string              `json:"sessionId"`
	State     string              `json:"state"`
	Current   int                 `json:"current"`
	Total     int                 `json:"total"`
	Revealed  bool                `json:"revealed"`
	Card      *reviewCardResponse `json:"card,omitempty"`
}

func reviewState(id string, s *service.Session) reviewStateResponse {
	current, total := s.Progress()
	resp := reviewStateResponse{
		SessionID: id,
		State:     string(s.State()),
		Current:   current,
		Total:     total,
		Revealed:  s.Revealed(),
	}

	if card, ok := s.Current(); ok {
		c := &reviewCardResponse{
			Word:         card.Word,
			Phonetic:     card.Phonetic,
			PartOfSpeech: card.PartOfSpeech,
		}
		// Definitions stay hidden until the card is revealed.
		if resp.Revealed {
			c.Definition = card.Definition
			c.DefinitionEn = card.DefinitionEn
			if len(card.Examples) > 0 {
				c.Example = card.Examples[0]
			}
		}
		resp.Card = c
	}

	return resp
}

func (api *API) handleStartReview(w http.ResponseWriter, r *http.Request) {
	id, session, err := api.review.Start()
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusCreated, reviewState(id, session)); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")
	session, err := api.review.Session(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, reviewState(id, session)); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleRevealCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")
	session, err := api.review.Session(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := session.Reveal(); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, reviewState(id, session)); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

type answerCardRequest struct {
	GotIt bool `json:"gotIt"`
}

func (api *API) handleAnswerCard(w http.ResponseWriter, r *http.Request) {
	var req answerCardRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.HandleErr(w, r, serr.NewServiceError(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	id := r.PathValue("session_id")
	session, err := api.review.Session(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := session.Answer(req.GotIt); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, reviewState(id, session)); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleRestartReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("session_id")
	session, err := api.review.Session(id)
	if err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := session.Restart(); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, reviewState(id, session)); err != nil {
		httpx.HandleErr(w, r, err)
	}
}

func (api *API) handleDiscardReview(w http.ResponseWriter, r *http.Request) {
	if err := api.review.Discard(r.PathValue("session_id")); err != nil {
		httpx.HandleErr(w, r, err)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true}); err != nil {
		httpx.HandleErr(w, r, err)
	}
}
