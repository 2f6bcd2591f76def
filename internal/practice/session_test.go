package practice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
)

var t0 = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

func testBatch(n int, prov challenge.Provenance) challenge.Batch {
	cs := make([]challenge.Challenge, n)
	for i := range cs {
		cs[i] = challenge.Challenge{
			ID:          string(rune('a' + i)),
			Title:       "Challenge " + string(rune('A'+i)),
			Difficulty:  challenge.Easy,
			Boilerplate: challenge.CanonicalBoilerplate(),
		}
	}
	return challenge.NewBatch(cs, prov)
}

func activeSession(t *testing.T, n int) *Session {
	t.Helper()
	s := NewSession("s1", challenge.Beginner, "")
	require.True(t, s.Deliver(testBatch(n, challenge.ProvenanceModel)))
	require.True(t, s.Start(t0))
	return s
}

func submitAndPass(t *testing.T, s *Session, passed bool) judge.Submission {
	t.Helper()
	require.True(t, s.Edit("print(42)"))
	sub, err := s.Submit()
	require.NoError(t, err)
	require.True(t, s.ApplyResult(sub, &judge.Result{Passed: passed}))
	return sub
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestDeliver_ReadyWithStub(t *testing.T) {
	s := NewSession("s1", challenge.Intermediate, challenge.Java)
	assert.Equal(t, PhaseLoading, s.Phase())

	require.True(t, s.Deliver(testBatch(3, challenge.ProvenanceFallback)))
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, challenge.ProvenanceFallback, s.Provenance())
	assert.Equal(t, challenge.CanonicalStub(challenge.Java), s.Code())
	assert.Equal(t, time.Duration(0), s.Elapsed())

	// A second delivery is ignored.
	assert.False(t, s.Deliver(testBatch(1, challenge.ProvenanceModel)))
	assert.Equal(t, 3, s.Batch().Len())
}

func TestDeliver_EmptyBatchFails(t *testing.T) {
	s := NewSession("s1", challenge.Beginner, "")
	s.Deliver(challenge.NewBatch(nil, challenge.ProvenanceModel))
	assert.Equal(t, PhaseError, s.Phase())
	assert.ErrorIs(t, s.Err(), ErrEmptyBatch)
}

func TestFail_OnlyFromLoading(t *testing.T) {
	s := NewSession("s1", challenge.Beginner, "")
	require.True(t, s.Fail(errors.New("boom")))
	assert.Equal(t, PhaseError, s.Phase())

	s2 := activeSession(t, 2)
	assert.False(t, s2.Fail(errors.New("late")))
	assert.Equal(t, PhaseActive, s2.Phase())
}

func TestStartAndTick(t *testing.T) {
	s := NewSession("s1", challenge.Beginner, "")
	assert.False(t, s.Start(t0), "cannot start while loading")

	s.Deliver(testBatch(2, challenge.ProvenanceModel))
	assert.False(t, s.Tick(t0.Add(time.Second)), "timer does not run while ready")

	require.True(t, s.Start(t0))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 0, s.SolvedCount())

	s.Tick(t0.Add(3 * time.Second))
	assert.Equal(t, 3*time.Second, s.Elapsed())
	s.Tick(t0.Add(90 * time.Second))
	assert.Equal(t, 90*time.Second, s.Elapsed())
}

func TestSetLanguageResetsEditor(t *testing.T) {
	s := activeSession(t, 2)
	require.True(t, s.Edit("print('draft')"))

	require.True(t, s.SetLanguage(challenge.CPP))
	assert.Equal(t, challenge.CPP, s.Language())
	assert.Equal(t, challenge.CanonicalStub(challenge.CPP), s.Code())
}

func TestSetLanguageWhileLoadingCarriesToReady(t *testing.T) {
	s := NewSession("s1", challenge.Beginner, "")
	s.SetLanguage(challenge.Java)
	s.Deliver(testBatch(1, challenge.ProvenanceModel))
	assert.Equal(t, challenge.CanonicalStub(challenge.Java), s.Code())
}

func TestEditOnlyWhileActive(t *testing.T) {
	s := NewSession("s1", challenge.Beginner, "")
	s.Deliver(testBatch(1, challenge.ProvenanceModel))
	assert.False(t, s.Edit("x"))
	assert.Equal(t, challenge.CanonicalStub(challenge.Python), s.Code())
}

func TestSubmit(t *testing.T) {
	s := activeSession(t, 2)
	require.True(t, s.Edit("print(1)"))

	sub, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "s1", sub.SessionID)
	assert.Equal(t, 0, sub.ChallengeIndex)
	assert.Equal(t, "a", sub.ChallengeID)
	assert.Equal(t, challenge.Python, sub.Language)
	assert.Equal(t, "print(1)", sub.Code)
	assert.NotEmpty(t, sub.ID)
	assert.True(t, s.Judging())

	// Submitting leaves the phase and index alone.
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestSubmitGuards(t *testing.T) {
	s := activeSession(t, 1)
	s.Edit("   \n\t")
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrEmptyCode)

	ready := NewSession("s2", challenge.Beginner, "")
	ready.Deliver(testBatch(1, challenge.ProvenanceModel))
	_, err = ready.Submit()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestApplyResult_SolvedCountIdempotent(t *testing.T) {
	s := activeSession(t, 3)

	submitAndPass(t, s, false)
	assert.Equal(t, 0, s.SolvedCount())
	assert.False(t, s.LastResult().Passed)

	sub := submitAndPass(t, s, true)
	assert.Equal(t, 1, s.SolvedCount())

	// The same verdict delivered again, and a fresh passing resubmission,
	// do not count twice.
	s.ApplyResult(sub, &judge.Result{Passed: true})
	submitAndPass(t, s, true)
	assert.Equal(t, 1, s.SolvedCount())
	assert.True(t, s.Solved(0))
}

func TestApplyResult_JudgeErrorKeepsPhase(t *testing.T) {
	s := activeSession(t, 2)
	s.Edit("x")
	sub, _ := s.Submit()

	require.True(t, s.ApplyResult(sub, &judge.Result{Error: "compilation failed"}))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, "compilation failed", s.LastResult().Error)
	assert.Equal(t, 0, s.SolvedCount())
	assert.False(t, s.CanAdvance())
}

func TestApplyResult_Ignored(t *testing.T) {
	s := activeSession(t, 2)
	s.Edit("x")
	sub, _ := s.Submit()

	other := sub
	other.SessionID = "someone-else"
	assert.False(t, s.ApplyResult(other, &judge.Result{Passed: true}))

	wrongIndex := sub
	wrongIndex.ChallengeIndex = 1
	assert.False(t, s.ApplyResult(wrongIndex, &judge.Result{Passed: true}))

	assert.False(t, s.ApplyResult(sub, nil))
	assert.Nil(t, s.LastResult())

	s.End(t0.Add(time.Minute))
	assert.False(t, s.ApplyResult(sub, &judge.Result{Passed: true}))
	assert.Equal(t, 0, s.SolvedCount())
}

func TestNext(t *testing.T) {
	s := activeSession(t, 2)

	assert.False(t, s.Next(), "no result yet")

	submitAndPass(t, s, false)
	assert.False(t, s.Next(), "last result failed")
	assert.Equal(t, 0, s.CurrentIndex())

	submitAndPass(t, s, true)
	require.True(t, s.Next())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Nil(t, s.LastResult())
	assert.Equal(t, challenge.CanonicalStub(challenge.Python), s.Code())

	submitAndPass(t, s, true)
	assert.False(t, s.Next(), "no challenge past the last index")
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, 2, s.SolvedCount())
}

func TestNextKeepsLanguage(t *testing.T) {
	s := activeSession(t, 2)
	s.SetLanguage(challenge.Java)
	submitAndPass(t, s, true)
	require.True(t, s.Next())
	assert.Equal(t, challenge.CanonicalStub(challenge.Java), s.Code())
}

func TestStaleResultAfterNext(t *testing.T) {
	s := activeSession(t, 3)
	first := submitAndPass(t, s, true)
	require.True(t, s.Next())

	// A late duplicate verdict for challenge 0 must not touch challenge 1.
	assert.False(t, s.ApplyResult(first, &judge.Result{Passed: true}))
	assert.Nil(t, s.LastResult())
}

func TestEndAndSummary(t *testing.T) {
	s := activeSession(t, 4)
	submitAndPass(t, s, true)
	s.Next()

	require.True(t, s.End(t0.Add(125*time.Second)))
	assert.Equal(t, PhaseEnded, s.Phase())

	// The timer is frozen.
	assert.False(t, s.Tick(t0.Add(time.Hour)))
	assert.False(t, s.SetLanguage(challenge.CPP))
	assert.False(t, s.End(t0.Add(time.Hour)))

	sum := s.Summary()
	assert.Equal(t, Summary{
		SessionID:   "s1",
		Level:       challenge.Beginner,
		Provenance:  challenge.ProvenanceModel,
		SolvedCount: 1,
		Total:       4,
		Elapsed:     125 * time.Second,
	}, sum)
}
