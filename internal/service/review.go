package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/gamma-omg/linguaflow/internal/model"
	"github.com/gamma-omg/linguaflow/internal/pkg/serr"
	"github.com/gamma-omg/linguaflow/internal/store"
	"github.com/google/uuid"
)

type reviewWordbook interface {
	Get(id string) (model.Word, error)
	Update(id string, p store.WordPatch) (model.Word, error)
	Query(f store.WordFilter) store.WordQueryResult
}

// SessionState is the flashcard state machine phase.
type SessionState string

const (
	StateActive   SessionState = "active"
	StateComplete SessionState = "complete"
)

type shuffleFunc func(n int, swap func(i, j int))

// Session is one learner's flashcard pass over a sampled subset of the
// wordbook. The sampled order, cursor and reveal flag live here and nowhere
// else; the wordbook only sees review outcomes.
type Session struct {
	mu       sync.Mutex
	wordbook reviewWordbook
	shuffle  shuffleFunc

	words    []model.Word
	index    int
	revealed bool
	state    SessionState
}

// StartSession samples the unmastered words, falling back to the whole
// wordbook when every word is mastered. An empty wordbook cannot start a
// session. The sample is put in uniformly random order.
func StartSession(wordbook reviewWordbook, shuffle shuffleFunc) (*Session, error) {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	s := &Session{wordbook: wordbook, shuffle: shuffle}
	if err := s.resample(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Session) resample() error {
	unmastered := false
	sample := s.wordbook.Query(store.WordFilter{Mastered: &unmastered}).Words
	if len(sample) == 0 {
		sample = s.wordbook.Query(store.WordFilter{}).Words
	}
	if len(sample) == 0 {
		return serr.NewServiceError(nil, http.StatusUnprocessableEntity, "nothing to review")
	}

	s.shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	s.words = sample
	s.index = 0
	s.revealed = false
	s.state = StateActive

	return nil
}

// Current returns the card under the cursor. The second return is false
// once the session is complete.
func (s *Session) Current() (model.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return model.Word{}, false
	}

	return s.words[s.index], true
}

// Reveal flips the current card. Revealing an already revealed card is a
// no-op; revealing after completion is rejected.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return serr.NewServiceError(nil, http.StatusConflict, "review session is complete")
	}

	s.revealed = true
	return nil
}

// Answer records the outcome for the revealed card: the word's review
// counter is incremented by one, and a correct answer marks it mastered.
// A wrong answer never un-masters a word. The cursor then advances; when
// the sample is exhausted the session completes.
func (s *Session) Answer(gotIt bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return serr.NewServiceError(nil, http.StatusConflict, "review session is complete")
	}
	if !s.revealed {
		return serr.NewServiceError(nil, http.StatusConflict, "card is not revealed")
	}

	word := s.words[s.index]
	if err := s.recordOutcome(word.ID, gotIt); err != nil {
		return err
	}

	s.index++
	s.revealed = false
	if s.index == len(s.words) {
		s.state = StateComplete
	}

	return nil
}

func (s *Session) recordOutcome(id string, gotIt bool) error {
	fresh, err := s.wordbook.Get(id)
	if err != nil {
		// The word was deleted mid-session; there is no entry left to
		// record the outcome on.
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load word for review: %w", err)
	}

	count := fresh.ReviewCount + 1
	patch := store.WordPatch{ReviewCount: &count}
	if gotIt {
		mastered := true
		patch.Mastered = &mastered
	}

	if _, err := s.wordbook.Update(id, patch); err != nil {
		return fmt.Errorf("record review outcome: %w", err)
	}

	return nil
}

// Restart draws a fresh sample from the current wordbook state.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resample()
}

// Progress reports the cursor position and sample size.
func (s *Session) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.index, len(s.words)
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revealed
}

// ReviewService hosts flashcard sessions keyed by opaque session ids, one
// per learner interaction. Session state is never shared across sessions.
type ReviewService struct {
	mu       sync.Mutex
	sessions map[string]*Session

	wordbook reviewWordbook
	shuffle  shuffleFunc
	newID    func() string
}

func NewReviewService(wordbook reviewWordbook) *ReviewService {
	return &ReviewService{
		sessions: make(map[string]*Session),
		wordbook: wordbook,
		newID:    uuid.NewString,
	}
}

// WithShuffle overrides the sample shuffle. Tests only.
func (s *ReviewService) WithShuffle(shuffle shuffleFunc) *ReviewService {
	s.shuffle = shuffle
	return s
}

// Start opens a new session and returns its id.
func (s *ReviewService) Start() (string, *Session, error) {
	session, err := StartSession(s.wordbook, s.shuffle)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.sessions[id] = session

	return id, session, nil
}

// Session looks up an open session by id. If the session does not exist,
// it returns a ServiceError with status code 404.
func (s *ReviewService) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		se := serr.NewServiceError(nil, http.StatusNotFound, "review session not found")
		se.Env["session_id"] = id
		return nil, se
	}

	return session, nil
}

// Discard drops a session. If the session does not exist, it returns a
// ServiceError with status code 404.
func (s *ReviewService) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		se := serr.NewServiceError(nil, http.StatusNotFound, "review session not found")
		se.Env["session_id"] = id
		return se
	}

	delete(s.sessions, id)
	return nil
}
