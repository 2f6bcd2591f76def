package practice

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
)

func testRunner() *Runner {
	r := NewRunner()
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	return r
}

func TestRunner_BeginAndDeliver(t *testing.T) {
	r := testRunner()
	assert.Nil(t, r.Session())

	s := r.Begin(challenge.Advanced)
	assert.Equal(t, "session-1", s.ID())
	assert.Equal(t, PhaseLoading, s.Phase())

	require.True(t, r.DeliverBatch(s.ID(), testBatch(2, challenge.ProvenanceModel), nil))
	assert.Equal(t, PhaseReady, r.Session().Phase())
}

func TestRunner_DeliverFailure(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)

	require.True(t, r.DeliverBatch(s.ID(), challenge.Batch{}, errors.New("no fallback challenges available")))
	assert.Equal(t, PhaseError, s.Phase())
}

func TestRunner_SupersededRequestIsDiscarded(t *testing.T) {
	r := testRunner()
	stale := r.Begin(challenge.Beginner)

	fresh := r.Retry()
	require.NotNil(t, fresh)
	assert.NotEqual(t, stale.ID(), fresh.ID())
	assert.Equal(t, challenge.Beginner, fresh.Level())

	// The superseded request resolves late.
	assert.False(t, r.DeliverBatch(stale.ID(), testBatch(3, challenge.ProvenanceModel), nil))
	assert.False(t, r.Timeout(stale.ID()))
	assert.Equal(t, PhaseLoading, fresh.Phase())
	assert.Equal(t, 0, fresh.Batch().Len())

	require.True(t, r.DeliverBatch(fresh.ID(), testBatch(1, challenge.ProvenanceFallback), nil))
	assert.Equal(t, challenge.ProvenanceFallback, r.Session().Provenance())
}

func TestRunner_Timeout(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)

	require.True(t, r.Timeout(s.ID()))
	assert.Equal(t, PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), ErrLoadTimeout)

	// The batch arriving after the timeout is dropped.
	assert.False(t, r.DeliverBatch(s.ID(), testBatch(1, challenge.ProvenanceModel), nil))
	assert.Equal(t, PhaseError, s.Phase())

	retry := r.Retry()
	require.NotNil(t, retry)
	assert.Equal(t, PhaseLoading, retry.Phase())
}

func TestRunner_TimeoutAfterReadyIsNoop(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)
	r.DeliverBatch(s.ID(), testBatch(1, challenge.ProvenanceModel), nil)

	assert.False(t, r.Timeout(s.ID()))
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestRunner_RetryOnlyFromLoadingOrError(t *testing.T) {
	r := testRunner()
	assert.Nil(t, r.Retry())

	s := r.Begin(challenge.Beginner)
	r.DeliverBatch(s.ID(), testBatch(1, challenge.ProvenanceModel), nil)
	assert.Nil(t, r.Retry())
	assert.Same(t, s, r.Session())
}

func TestRunner_ExitDropsCompletions(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)
	r.DeliverBatch(s.ID(), testBatch(2, challenge.ProvenanceModel), nil)
	s.Start(t0)
	s.Edit("print(1)")
	sub, err := s.Submit()
	require.NoError(t, err)

	r.Exit()
	assert.Nil(t, r.Session())
	assert.False(t, r.DeliverResult(sub, &judge.Result{Passed: true}, nil))
	assert.False(t, r.Tick(s.ID(), t0.Add(time.Second)))
	assert.Equal(t, 0, s.SolvedCount())
}

func TestRunner_ResultForOldSessionIgnored(t *testing.T) {
	r := testRunner()
	old := r.Begin(challenge.Beginner)
	r.DeliverBatch(old.ID(), testBatch(2, challenge.ProvenanceModel), nil)
	old.Start(t0)
	old.Edit("print(1)")
	sub, _ := old.Submit()

	cur := r.Begin(challenge.Beginner)
	r.DeliverBatch(cur.ID(), testBatch(2, challenge.ProvenanceModel), nil)
	cur.Start(t0)

	assert.False(t, r.DeliverResult(sub, &judge.Result{Passed: true}, nil))
	assert.Equal(t, 0, cur.SolvedCount())
	assert.Nil(t, cur.LastResult())
}

func TestRunner_JudgeErrorBecomesResult(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)
	r.DeliverBatch(s.ID(), testBatch(1, challenge.ProvenanceModel), nil)
	s.Start(t0)
	s.Edit("print(1)")
	sub, _ := s.Submit()

	require.True(t, r.DeliverResult(sub, nil, errors.New("Python toolchain not found on PATH")))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.False(t, s.LastResult().Passed)
	assert.Contains(t, s.LastResult().Error, "toolchain")
}

func TestRunner_TickStopsWhenNotActive(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)
	assert.False(t, r.Tick(s.ID(), t0))

	r.DeliverBatch(s.ID(), testBatch(1, challenge.ProvenanceModel), nil)
	s.Start(t0)
	assert.True(t, r.Tick(s.ID(), t0.Add(2*time.Second)))
	assert.Equal(t, 2*time.Second, s.Elapsed())

	s.End(t0.Add(3 * time.Second))
	assert.False(t, r.Tick(s.ID(), t0.Add(4*time.Second)))
	assert.Equal(t, 3*time.Second, s.Elapsed())
}

func TestRunner_LanguageCarriesAcrossSessions(t *testing.T) {
	r := testRunner()
	s := r.Begin(challenge.Beginner)
	s.SetLanguage(challenge.CPP)

	next := r.Begin(challenge.Beginner)
	assert.Equal(t, challenge.CPP, next.Language())
}
