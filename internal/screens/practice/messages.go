package practice

import (
	"time"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
)

// batchLoadedMsg carries a provisioning outcome for one session.
type batchLoadedMsg struct {
	SessionID string
	Batch     challenge.Batch
	Err       error
}

// loadTimeoutMsg fires when a session has waited too long for its batch.
type loadTimeoutMsg struct {
	SessionID string
}

// timerTickMsg is sent every second while a session is active.
type timerTickMsg struct {
	SessionID string
	Time      time.Time
}

// judgedMsg carries a judge verdict for one submission.
type judgedMsg struct {
	Submission judge.Submission
	Result     *judge.Result
	Err        error
}
