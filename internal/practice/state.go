// Package practice tracks a timed practice run over a challenge batch.
// It holds no I/O; provisioning and judging happen elsewhere and report
// back through Runner.
package practice

import (
	"errors"
	"time"

	"github.com/codearena/arena/internal/challenge"
)

// Phase is the position of a session in its lifecycle.
type Phase int

const (
	PhaseLoading Phase = iota // batch requested, not yet available
	PhaseReady                // batch available, timer not running
	PhaseActive               // timer running, submissions accepted
	PhaseEnded                // timer frozen, summary available
	PhaseError                // provisioning failed; retry re-enters loading
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

var (
	// ErrEmptyCode is returned by Submit when the editor is blank.
	ErrEmptyCode = errors.New("write some code before submitting")

	// ErrNotActive is returned by Submit outside the active phase.
	ErrNotActive = errors.New("session is not active")

	// ErrLoadTimeout is the failure recorded when no batch arrives in time.
	ErrLoadTimeout = errors.New("timed out waiting for challenges")

	// ErrEmptyBatch is the failure recorded when a delivered batch holds
	// no challenges.
	ErrEmptyBatch = errors.New("received an empty challenge set")
)

// Summary is what the ended phase shows.
type Summary struct {
	SessionID   string
	Level       challenge.Level
	Provenance  challenge.Provenance
	SolvedCount int
	Total       int
	Elapsed     time.Duration
}
