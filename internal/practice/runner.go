package practice

import (
	"time"

	"github.com/google/uuid"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
)

// Runner owns the current session. Completions are keyed by session ID;
// anything addressed to a session other than the current one is dropped.
// In-flight calls are never cancelled, only ignored when they land.
type Runner struct {
	current  *Session
	language challenge.Language
	newID    func() string
}

// NewRunner creates a Runner with no session.
func NewRunner() *Runner {
	return &Runner{language: challenge.DefaultLanguage, newID: uuid.NewString}
}

// Session returns the current session, or nil.
func (r *Runner) Session() *Session { return r.current }

// Begin replaces any current session with a new loading one. The caller
// requests a batch tagged with the returned session's ID.
func (r *Runner) Begin(level challenge.Level) *Session {
	if r.current != nil {
		r.language = r.current.Language()
	}
	r.current = NewSession(r.newID(), level, r.language)
	return r.current
}

// Retry starts over at the same level from the loading or error phase.
// It returns nil when there is nothing to retry.
func (r *Runner) Retry() *Session {
	if r.current == nil {
		return nil
	}
	switch r.current.Phase() {
	case PhaseLoading, PhaseError:
		return r.Begin(r.current.Level())
	}
	return nil
}

// Exit drops the current session.
func (r *Runner) Exit() {
	if r.current != nil {
		r.language = r.current.Language()
	}
	r.current = nil
}

func (r *Runner) owns(id string) bool {
	return r.current != nil && r.current.ID() == id
}

// DeliverBatch applies a provisioning outcome to session id.
func (r *Runner) DeliverBatch(id string, b challenge.Batch, err error) bool {
	if !r.owns(id) {
		return false
	}
	if err != nil {
		return r.current.Fail(err)
	}
	return r.current.Deliver(b)
}

// DeliverResult applies a judge outcome. A judge call that failed
// outright is recorded as a result carrying the error.
func (r *Runner) DeliverResult(sub judge.Submission, res *judge.Result, err error) bool {
	if !r.owns(sub.SessionID) {
		return false
	}
	if err != nil {
		res = &judge.Result{Error: err.Error()}
	}
	return r.current.ApplyResult(sub, res)
}

// Tick advances the timer of session id. It returns false once the
// session is gone or no longer active, which stops the tick loop.
func (r *Runner) Tick(id string, now time.Time) bool {
	if !r.owns(id) {
		return false
	}
	return r.current.Tick(now)
}

// Timeout fails session id if it is still loading.
func (r *Runner) Timeout(id string) bool {
	if !r.owns(id) {
		return false
	}
	return r.current.Fail(ErrLoadTimeout)
}
