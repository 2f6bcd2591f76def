package practice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
	sess "github.com/codearena/arena/internal/practice"
	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/store"
)

type fakeBatches struct {
	batch challenge.Batch
	err   error
	calls int
}

func (f *fakeBatches) RequestBatch(context.Context, challenge.Level) (challenge.Batch, error) {
	f.calls++
	return f.batch, f.err
}

type mockEventRepo struct {
	store.EventRepo
	practice []store.PracticeEventData
}

func (m *mockEventRepo) AppendPracticeEvent(_ context.Context, data store.PracticeEventData) error {
	m.practice = append(m.practice, data)
	return nil
}

func testBatch() challenge.Batch {
	return challenge.NewBatch([]challenge.Challenge{
		{ID: "one", Title: "One", Difficulty: challenge.Easy, Boilerplate: challenge.CanonicalBoilerplate(),
			TestCases: []challenge.TestCase{{Input: "1", Output: "1"}}},
		{ID: "two", Title: "Two", Difficulty: challenge.Easy, Boilerplate: challenge.CanonicalBoilerplate()},
	}, challenge.ProvenanceModel)
}

func passingJudge() judge.Judge {
	return judge.Func(func(_ context.Context, c challenge.Challenge, _ judge.Submission) (*judge.Result, error) {
		return &judge.Result{Passed: true, Results: []judge.CaseResult{{Input: "1", Expected: "1", Actual: "1", Passed: true}}}, nil
	})
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: []rune(rest)[0], Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// runCmd executes cmd and flattens batches. Only use it on commands that
// do not sleep.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestScreen(t *testing.T, src *fakeBatches, repo *mockEventRepo) *PracticeScreen {
	t.Helper()
	deps := Deps{Batches: src, Judge: passingJudge()}
	if repo != nil {
		deps.EventRepo = repo
	}
	s := New(deps, challenge.Beginner)
	s.now = func() time.Time { return time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC) }
	s.Init()
	return s
}

func deliver(s *PracticeScreen) {
	b, err := s.deps.Batches.RequestBatch(context.Background(), s.level)
	s.Update(batchLoadedMsg{SessionID: s.Session().ID(), Batch: b, Err: err})
}

func TestLoadingToReady(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	if s.Session().Phase() != sess.PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.Session().Phase())
	}

	deliver(s)
	if s.Session().Phase() != sess.PhaseReady {
		t.Fatalf("phase = %v, want ready", s.Session().Phase())
	}
	if s.editor.Value() != challenge.CanonicalStub(challenge.Python) {
		t.Fatalf("editor = %q, want python stub", s.editor.Value())
	}
	if !strings.Contains(s.View(100, 30), "Generated by AI") {
		t.Error("ready view should show provenance")
	}
}

func TestProvisioningErrorAndRetry(t *testing.T) {
	src := &fakeBatches{err: errors.New("no fallback challenges available")}
	s := newTestScreen(t, src, nil)
	deliver(s)

	if s.Session().Phase() != sess.PhaseError {
		t.Fatalf("phase = %v, want error", s.Session().Phase())
	}
	if !strings.Contains(s.View(100, 30), "no fallback challenges available") {
		t.Error("error view should show the cause")
	}

	old := s.Session().ID()
	_, cmd := s.Update(press("r"))
	if cmd == nil {
		t.Fatal("retry should issue a request")
	}
	if s.Session().ID() == old || s.Session().Phase() != sess.PhaseLoading {
		t.Fatalf("retry did not start a new loading session")
	}
}

func TestStaleBatchIsDiscarded(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	stale := s.Session().ID()

	s.Update(press("r"))
	s.Update(batchLoadedMsg{SessionID: stale, Batch: testBatch()})

	if s.Session().Phase() != sess.PhaseLoading || s.Session().Batch().Len() != 0 {
		t.Fatalf("stale batch was applied")
	}
}

func TestLoadTimeout(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	id := s.Session().ID()

	s.Update(loadTimeoutMsg{SessionID: id})
	if !errors.Is(s.Session().Err(), sess.ErrLoadTimeout) {
		t.Fatalf("err = %v, want load timeout", s.Session().Err())
	}

	// The batch landing afterwards is ignored.
	s.Update(batchLoadedMsg{SessionID: id, Batch: testBatch()})
	if s.Session().Phase() != sess.PhaseError {
		t.Fatalf("phase = %v, want error", s.Session().Phase())
	}
}

func TestLanguageSwitchInReady(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	deliver(s)

	s.Update(press("tab"))
	if s.Session().Language() != challenge.CPP {
		t.Fatalf("language = %v, want cpp", s.Session().Language())
	}
	if s.editor.Value() != challenge.CanonicalStub(challenge.CPP) {
		t.Fatalf("editor not reset to the C++ stub")
	}
}

func TestFullRun(t *testing.T) {
	repo := &mockEventRepo{}
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, repo)
	deliver(s)

	s.Update(press("enter"))
	cur := s.Session()
	if cur.Phase() != sess.PhaseActive {
		t.Fatalf("phase = %v, want active", cur.Phase())
	}

	s.Update(press("x"))
	if !strings.Contains(cur.Code(), "x") {
		t.Fatalf("typing did not reach the session: %q", cur.Code())
	}

	_, cmd := s.Update(press("ctrl+s"))
	if !cur.Judging() {
		t.Fatal("expected judging after submit")
	}
	for _, msg := range runCmd(cmd) {
		s.Update(msg)
	}
	if cur.LastResult() == nil || !cur.LastResult().Passed || cur.SolvedCount() != 1 {
		t.Fatalf("result not applied: %+v solved=%d", cur.LastResult(), cur.SolvedCount())
	}

	s.Update(press("ctrl+n"))
	if cur.CurrentIndex() != 1 || cur.LastResult() != nil {
		t.Fatalf("next did not advance")
	}
	if s.editor.Value() != challenge.CanonicalStub(challenge.Python) {
		t.Fatalf("editor not reloaded with the stub")
	}

	s.Update(timerTickMsg{SessionID: cur.ID(), Time: s.now().Add(42 * time.Second)})
	if cur.Elapsed() != 42*time.Second {
		t.Fatalf("elapsed = %v", cur.Elapsed())
	}

	s.Update(press("esc"))
	if cur.Phase() != sess.PhaseEnded {
		t.Fatalf("phase = %v, want ended", cur.Phase())
	}
	if !strings.Contains(s.View(100, 30), "Solved 1 of 2") {
		t.Error("summary should show the solved count")
	}

	var actions []string
	for _, e := range repo.practice {
		actions = append(actions, e.Action)
	}
	if strings.Join(actions, ",") != "start,submit,end" {
		t.Fatalf("recorded actions = %v", actions)
	}
	if last := repo.practice[2]; last.SolvedCount != 1 || last.Total != 2 {
		t.Errorf("unexpected end event: %+v", last)
	}

	_, cmd = s.Update(press("enter"))
	if cmd == nil || cmd() != (router.PopScreenMsg{}) {
		t.Fatal("enter on the summary should go home")
	}
	if s.Session() != nil {
		t.Fatal("session should be dropped on exit")
	}
}

func TestEmptySubmissionShowsNotice(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	deliver(s)
	s.Update(press("enter"))

	s.editor.SetValue("   ")
	_, cmd := s.Update(press("ctrl+s"))
	if cmd != nil {
		t.Fatal("blank code should not be judged")
	}
	if s.notice != sess.ErrEmptyCode.Error() {
		t.Fatalf("notice = %q", s.notice)
	}
}

func TestNextBlockedUntilSolved(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	deliver(s)
	s.Update(press("enter"))

	s.Update(press("ctrl+n"))
	if s.Session().CurrentIndex() != 0 {
		t.Fatal("advanced without a passing result")
	}
	if s.notice == "" {
		t.Error("expected a notice explaining why")
	}
}

func TestStaleJudgeResultIgnored(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	deliver(s)
	s.Update(press("enter"))

	stale := judge.Submission{SessionID: "gone", ChallengeIndex: 0}
	s.Update(judgedMsg{Submission: stale, Result: &judge.Result{Passed: true}})
	if s.Session().SolvedCount() != 0 {
		t.Fatal("result for another session was applied")
	}
}

func TestTickStopsAfterEnd(t *testing.T) {
	s := newTestScreen(t, &fakeBatches{batch: testBatch()}, nil)
	deliver(s)
	s.Update(press("enter"))
	s.Update(press("ctrl+e"))

	_, cmd := s.Update(timerTickMsg{SessionID: s.Session().ID(), Time: s.now().Add(time.Hour)})
	if cmd != nil {
		t.Fatal("tick loop should stop once the session ended")
	}
}
