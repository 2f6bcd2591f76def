package practice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
	sess "github.com/codearena/arena/internal/practice"
	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/screen"
	"github.com/codearena/arena/internal/store"
	"github.com/codearena/arena/internal/ui/components"
	"github.com/codearena/arena/internal/ui/layout"
)

const (
	// DefaultLoadTimeout is how long the screen waits for a batch.
	DefaultLoadTimeout = 20 * time.Second

	// DefaultJudgeTimeout bounds one judge run.
	DefaultJudgeTimeout = 60 * time.Second
)

// BatchSource provisions challenge batches. It resolves fallbacks itself;
// an error means nothing could be served.
type BatchSource interface {
	RequestBatch(ctx context.Context, level challenge.Level) (challenge.Batch, error)
}

// Deps are the collaborators of the practice screen.
type Deps struct {
	Batches      BatchSource
	Judge        judge.Judge
	EventRepo    store.EventRepo // optional
	LoadTimeout  time.Duration
	JudgeTimeout time.Duration
	Logger       *slog.Logger
}

// PracticeScreen drives one practice.Runner from key presses and async
// completions.
type PracticeScreen struct {
	deps   Deps
	level  challenge.Level
	runner *sess.Runner
	editor components.Editor
	spin   spinner.Model
	notice string
	now    func() time.Time
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)

// New creates a practice screen for level.
func New(deps Deps, level challenge.Level) *PracticeScreen {
	if deps.LoadTimeout <= 0 {
		deps.LoadTimeout = DefaultLoadTimeout
	}
	if deps.JudgeTimeout <= 0 {
		deps.JudgeTimeout = DefaultJudgeTimeout
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &PracticeScreen{
		deps:   deps,
		level:  level,
		runner: sess.NewRunner(),
		editor: components.NewEditor(),
		spin:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		now:    time.Now,
	}
}

// Session returns the current session, or nil after exit.
func (s *PracticeScreen) Session() *sess.Session {
	return s.runner.Session()
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.begin()
}

func (s *PracticeScreen) Title() string {
	return fmt.Sprintf("Practice · %s", s.level)
}

func (s *PracticeScreen) HandlesEscape() bool { return true }

func (s *PracticeScreen) Status() string {
	cur := s.Session()
	if cur == nil {
		return ""
	}
	switch cur.Phase() {
	case sess.PhaseActive, sess.PhaseEnded:
		return fmt.Sprintf("⏱ %s  ✓ %d/%d",
			layout.FormatElapsed(int(cur.Elapsed().Seconds())), cur.SolvedCount(), cur.Batch().Len())
	}
	return ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	cur := s.Session()
	if cur == nil {
		return nil
	}
	switch cur.Phase() {
	case sess.PhaseLoading:
		return []layout.KeyHint{
			{Key: "R", Description: "Restart request"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Tab", Description: "Language"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseActive:
		hints := []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+L", Description: "Language"},
		}
		if cur.CanAdvance() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Next"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
	case sess.PhaseEnded:
		return []layout.KeyHint{
			{Key: "N", Description: "New session"},
			{Key: "Enter", Description: "Home"},
		}
	}
	return nil
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		return s.handleBatch(msg)

	case loadTimeoutMsg:
		if s.runner.Timeout(msg.SessionID) {
			s.deps.Logger.Warn("challenge load timed out", "session", msg.SessionID, "after", s.deps.LoadTimeout)
		}
		return s, nil

	case timerTickMsg:
		if s.runner.Tick(msg.SessionID, msg.Time) {
			return s, tickCmd(msg.SessionID)
		}
		return s, nil

	case judgedMsg:
		return s.handleJudged(msg)

	case spinner.TickMsg:
		if !s.spinning() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if cur := s.Session(); cur != nil && cur.Phase() == sess.PhaseActive {
		return s.updateEditor(msg)
	}
	return s, nil
}

// begin replaces the current session and requests its batch.
func (s *PracticeScreen) begin() tea.Cmd {
	cur := s.runner.Begin(s.level)
	s.notice = ""
	s.editor.Blur()
	return tea.Batch(
		requestBatch(s.deps.Batches, cur.ID(), s.level),
		loadTimeoutCmd(cur.ID(), s.deps.LoadTimeout),
		s.spin.Tick,
	)
}

func (s *PracticeScreen) retry() tea.Cmd {
	cur := s.runner.Retry()
	if cur == nil {
		return nil
	}
	s.notice = ""
	return tea.Batch(
		requestBatch(s.deps.Batches, cur.ID(), s.level),
		loadTimeoutCmd(cur.ID(), s.deps.LoadTimeout),
		s.spin.Tick,
	)
}

func (s *PracticeScreen) exit() tea.Cmd {
	s.runner.Exit()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *PracticeScreen) handleBatch(msg batchLoadedMsg) (screen.Screen, tea.Cmd) {
	if !s.runner.DeliverBatch(msg.SessionID, msg.Batch, msg.Err) {
		return s, nil
	}
	cur := s.Session()
	if cur.Phase() == sess.PhaseReady {
		s.editor.SetValue(cur.Code())
		s.deps.Logger.Info("challenge batch ready",
			"session", cur.ID(), "level", s.level, "provenance", cur.Provenance(), "count", cur.Batch().Len())
	}
	return s, nil
}

func (s *PracticeScreen) handleJudged(msg judgedMsg) (screen.Screen, tea.Cmd) {
	if !s.runner.DeliverResult(msg.Submission, msg.Result, msg.Err) {
		return s, nil
	}
	cur := s.Session()
	res := cur.LastResult()
	c, _ := cur.Current()
	s.record(store.PracticeEventData{
		SessionID:      cur.ID(),
		Action:         store.PracticeActionSubmit,
		ChallengeIndex: msg.Submission.ChallengeIndex,
		ChallengeID:    c.ID,
		ChallengeTitle: c.Title,
		Language:       string(msg.Submission.Language),
		Passed:         res.Passed,
		SolvedCount:    cur.SolvedCount(),
		Total:          cur.Batch().Len(),
		Elapsed:        cur.Elapsed(),
	})
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	cur := s.Session()
	if cur == nil {
		return s, nil
	}
	key := msg.String()

	switch cur.Phase() {
	case sess.PhaseLoading:
		switch key {
		case "r", "R":
			return s, s.retry()
		case "esc":
			return s, s.exit()
		}

	case sess.PhaseError:
		switch key {
		case "r", "R":
			return s, s.retry()
		case "esc", "q":
			return s, s.exit()
		}

	case sess.PhaseReady:
		switch key {
		case "enter", "s":
			return s, s.start()
		case "tab", "ctrl+l":
			s.switchLanguage()
		case "esc", "q":
			return s, s.exit()
		}

	case sess.PhaseActive:
		switch key {
		case "ctrl+s":
			return s, s.submit()
		case "ctrl+n":
			s.next()
			return s, nil
		case "ctrl+l":
			s.switchLanguage()
			return s, nil
		case "esc", "ctrl+e":
			s.end()
			return s, nil
		}
		return s.updateEditor(msg)

	case sess.PhaseEnded:
		switch key {
		case "n", "N":
			return s, s.begin()
		case "enter", "esc", "q":
			return s, s.exit()
		}
	}
	return s, nil
}

func (s *PracticeScreen) start() tea.Cmd {
	cur := s.Session()
	if !cur.Start(s.now()) {
		return nil
	}
	s.record(store.PracticeEventData{
		SessionID:  cur.ID(),
		Action:     store.PracticeActionStart,
		Level:      string(cur.Level()),
		Provenance: string(cur.Provenance()),
		Total:      cur.Batch().Len(),
	})
	return tea.Batch(s.editor.Focus(), tickCmd(cur.ID()))
}

func (s *PracticeScreen) switchLanguage() {
	cur := s.Session()
	if cur.SetLanguage(cur.Language().Next()) {
		s.editor.SetValue(cur.Code())
		s.notice = ""
	}
}

func (s *PracticeScreen) submit() tea.Cmd {
	cur := s.Session()
	cur.Edit(s.editor.Value())

	sub, err := cur.Submit()
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	c, _ := cur.Current()
	return tea.Batch(runJudge(s.deps.Judge, s.deps.JudgeTimeout, c, sub), s.spin.Tick)
}

func (s *PracticeScreen) next() {
	cur := s.Session()
	if cur.Next() {
		s.editor.SetValue(cur.Code())
		s.notice = ""
		return
	}
	switch {
	case !cur.HasNext():
		s.notice = "That was the last challenge. Press Esc to finish."
	default:
		s.notice = "Solve this challenge to unlock the next one."
	}
}

func (s *PracticeScreen) end() {
	cur := s.Session()
	if !cur.End(s.now()) {
		return
	}
	s.editor.Blur()
	sum := cur.Summary()
	s.record(store.PracticeEventData{
		SessionID:   sum.SessionID,
		Action:      store.PracticeActionEnd,
		Level:       string(sum.Level),
		Provenance:  string(sum.Provenance),
		SolvedCount: sum.SolvedCount,
		Total:       sum.Total,
		Elapsed:     sum.Elapsed,
	})
}

func (s *PracticeScreen) updateEditor(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	s.Session().Edit(s.editor.Value())
	return s, cmd
}

func (s *PracticeScreen) spinning() bool {
	cur := s.Session()
	return cur != nil && (cur.Phase() == sess.PhaseLoading || cur.Judging())
}

func (s *PracticeScreen) record(data store.PracticeEventData) {
	if s.deps.EventRepo == nil {
		return
	}
	if err := s.deps.EventRepo.AppendPracticeEvent(context.Background(), data); err != nil {
		s.deps.Logger.Warn("failed to record practice event", "action", data.Action, "error", err)
	}
}

func requestBatch(src BatchSource, sessionID string, level challenge.Level) tea.Cmd {
	return func() tea.Msg {
		b, err := src.RequestBatch(context.Background(), level)
		return batchLoadedMsg{SessionID: sessionID, Batch: b, Err: err}
	}
}

func loadTimeoutCmd(sessionID string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return loadTimeoutMsg{SessionID: sessionID}
	})
}

func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{SessionID: sessionID, Time: t}
	})
}

func runJudge(j judge.Judge, timeout time.Duration, c challenge.Challenge, sub judge.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := j.Run(ctx, c, sub)
		return judgedMsg{Submission: sub, Result: res, Err: err}
	}
}
