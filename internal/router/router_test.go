package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/screen"
)

type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
	updates   int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type refreshingScreen struct {
	stubScreen
}

func (s *refreshingScreen) Refresh() tea.Cmd {
	s.refreshed++
	return nil
}

func TestPushAndPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	practice := &stubScreen{title: "practice"}
	r.Update(PushScreenMsg{Screen: practice})

	if r.Depth() != 2 || r.Active().Title() != "practice" {
		t.Fatalf("depth=%d active=%q after push", r.Depth(), r.Active().Title())
	}
	if !practice.initRan {
		t.Error("expected Init() on the pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Fatalf("depth=%d active=%q after pop", r.Depth(), r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestPopRefreshesUncoveredScreen(t *testing.T) {
	home := &refreshingScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "history"})
	r.Pop()

	if home.refreshed != 1 {
		t.Errorf("expected one refresh, got %d", home.refreshed)
	}

	// Nothing is uncovered when the pop is refused.
	r.Pop()
	if home.refreshed != 1 {
		t.Errorf("refresh ran on a no-op pop")
	}
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "practice"})

	next := &stubScreen{title: "history"}
	r.Update(ReplaceScreenMsg{Screen: next})

	if r.Depth() != 2 || r.Active().Title() != "history" {
		t.Fatalf("depth=%d active=%q after replace", r.Depth(), r.Active().Title())
	}
	if !next.initRan {
		t.Error("expected Init() on the replacement")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "top"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if top.updates != 1 || home.updates != 0 {
		t.Errorf("updates: top=%d home=%d", top.updates, home.updates)
	}
	if got := r.View(10, 10); got != "top" {
		t.Errorf("View() = %q", got)
	}
}
