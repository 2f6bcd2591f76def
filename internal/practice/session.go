package practice

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
)

// Session is one practice run. Its fields change only through its
// methods; each method is a no-op in phases where the action does not
// apply.
type Session struct {
	id       string
	level    challenge.Level
	phase    Phase
	batch    challenge.Batch
	index    int
	language challenge.Language
	code     string
	err      error

	startedAt time.Time
	elapsed   time.Duration

	solved     map[int]bool
	lastResult *judge.Result
	judging    bool
}

// NewSession creates a session in the loading phase.
func NewSession(id string, level challenge.Level, lang challenge.Language) *Session {
	if lang == "" {
		lang = challenge.DefaultLanguage
	}
	return &Session{
		id:       id,
		level:    level,
		phase:    PhaseLoading,
		language: lang,
		solved:   make(map[int]bool),
	}
}

func (s *Session) ID() string { return s.id }
func (s *Session) Level() challenge.Level { return s.level }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Batch() challenge.Batch { return s.batch }
func (s *Session) CurrentIndex() int { return s.index }
func (s *Session) Language() challenge.Language { return s.language }
func (s *Session) Code() string { return s.code }
func (s *Session) Err() error { return s.err }
func (s *Session) Elapsed() time.Duration { return s.elapsed }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) LastResult() *judge.Result { return s.lastResult }
func (s *Session) Judging() bool { return s.judging }
func (s *Session) Provenance() challenge.Provenance { return s.batch.Provenance() }

// SolvedCount is the number of distinct challenges solved.
func (s *Session) SolvedCount() int { return len(s.solved) }

// Solved reports whether challenge i has been solved.
func (s *Session) Solved(i int) bool { return s.solved[i] }

// Current returns the challenge at the current index.
func (s *Session) Current() (challenge.Challenge, bool) {
	if s.batch.Len() == 0 {
		return challenge.Challenge{}, false
	}
	return s.batch.At(s.index), true
}

// HasNext reports whether a challenge follows the current one.
func (s *Session) HasNext() bool {
	return s.index < s.batch.Len()-1
}

// CanAdvance reports whether Next would move to the next challenge.
func (s *Session) CanAdvance() bool {
	return s.phase == PhaseActive && s.lastResult != nil && s.lastResult.Passed && s.HasNext()
}

// Deliver moves a loading session to ready with batch b.
func (s *Session) Deliver(b challenge.Batch) bool {
	if s.phase != PhaseLoading {
		return false
	}
	if b.Len() == 0 {
		return s.Fail(ErrEmptyBatch)
	}
	s.batch = b
	s.index = 0
	s.phase = PhaseReady
	s.loadStub()
	return true
}

// Fail moves a loading session to the error phase.
func (s *Session) Fail(err error) bool {
	if s.phase != PhaseLoading {
		return false
	}
	s.err = err
	s.phase = PhaseError
	return true
}

// Start begins the timer.
func (s *Session) Start(now time.Time) bool {
	if s.phase != PhaseReady {
		return false
	}
	s.phase = PhaseActive
	s.startedAt = now
	s.elapsed = 0
	s.solved = make(map[int]bool)
	return true
}

// Tick recomputes elapsed time while active.
func (s *Session) Tick(now time.Time) bool {
	if s.phase != PhaseActive {
		return false
	}
	s.elapsed = now.Sub(s.startedAt)
	return true
}

// SetLanguage switches the target language and resets the editor to
// that language's stub for the current challenge.
func (s *Session) SetLanguage(lang challenge.Language) bool {
	switch s.phase {
	case PhaseEnded:
		return false
	case PhaseReady, PhaseActive:
		s.language = lang
		s.loadStub()
	default:
		s.language = lang
	}
	return true
}

// Edit replaces the editor content.
func (s *Session) Edit(code string) bool {
	if s.phase != PhaseActive {
		return false
	}
	s.code = code
	return true
}

// Submit packages the editor content for the judge. The session state
// is unchanged apart from the judging flag.
func (s *Session) Submit() (judge.Submission, error) {
	if s.phase != PhaseActive {
		return judge.Submission{}, ErrNotActive
	}
	if strings.TrimSpace(s.code) == "" {
		return judge.Submission{}, ErrEmptyCode
	}
	c, _ := s.Current()
	s.judging = true
	return judge.Submission{
		ID:             uuid.NewString(),
		SessionID:      s.id,
		ChallengeIndex: s.index,
		ChallengeID:    c.ID,
		Language:       s.language,
		Code:           s.code,
	}, nil
}

// ApplyResult records a judge verdict for sub. Verdicts for another
// session, for a challenge the session has moved past, or arriving
// outside the active phase are ignored.
func (s *Session) ApplyResult(sub judge.Submission, res *judge.Result) bool {
	if s.phase != PhaseActive || sub.SessionID != s.id || sub.ChallengeIndex != s.index || res == nil {
		return false
	}
	s.lastResult = res
	s.judging = false
	if res.Passed && res.Error == "" {
		s.solved[sub.ChallengeIndex] = true
	}
	return true
}

// Next advances to the following challenge once the current one has
// passed.
func (s *Session) Next() bool {
	if !s.CanAdvance() {
		return false
	}
	s.index++
	s.lastResult = nil
	s.judging = false
	s.loadStub()
	return true
}

// End freezes the timer.
func (s *Session) End(now time.Time) bool {
	if s.phase != PhaseActive {
		return false
	}
	s.elapsed = now.Sub(s.startedAt)
	s.phase = PhaseEnded
	s.judging = false
	return true
}

// Summary reports the outcome so far.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID:   s.id,
		Level:       s.level,
		Provenance:  s.batch.Provenance(),
		SolvedCount: s.SolvedCount(),
		Total:       s.batch.Len(),
		Elapsed:     s.elapsed,
	}
}

func (s *Session) loadStub() {
	c, ok := s.Current()
	if !ok {
		s.code = ""
		return
	}
	s.code = c.Stub(s.language)
}
