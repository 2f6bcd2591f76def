package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/screens/history"
	practicescreen "github.com/codearena/arena/internal/screens/practice"
	"github.com/codearena/arena/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	sessions []store.PracticeSessionSummary
}

func (m *mockEventRepo) PracticeHistory(context.Context, int) ([]store.PracticeSessionSummary, error) {
	return m.sessions, nil
}

func TestMenuLabels(t *testing.T) {
	h := New(Options{})
	got := strings.Join(h.menu.Labels(), ",")
	if got != "BEGINNER,INTERMEDIATE,ADVANCED,HISTORY,EXIT" {
		t.Fatalf("labels = %s", got)
	}
	if !h.menu.DisabledSet()[3] {
		t.Error("history should be disabled without an event repo")
	}
}

func TestEnterPushesPracticeAtLevel(t *testing.T) {
	h := New(Options{})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	ps, ok := push.Screen.(*practicescreen.PracticeScreen)
	if !ok {
		t.Fatalf("pushed %T, want practice screen", push.Screen)
	}
	if ps.Title() != "Practice · Intermediate" {
		t.Errorf("title = %q", ps.Title())
	}
}

func TestHistoryPushed(t *testing.T) {
	h := New(Options{EventRepo: &mockEventRepo{}})
	_, cmd := h.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Fatalf("pushed %T, want history", push.Screen)
	}
}

func TestStatsAndMascot(t *testing.T) {
	repo := &mockEventRepo{sessions: []store.PracticeSessionSummary{
		{SolvedCount: 3, Total: 3},
		{SolvedCount: 1, Total: 5},
	}}
	h := New(Options{EventRepo: repo, ModelConfigured: true})
	h.Update(h.Init()())

	if h.stats != (Stats{Sessions: 2, Solved: 4, LastPerfect: true}) {
		t.Fatalf("stats = %+v", h.stats)
	}
	if h.mascot() != MascotCelebrating {
		t.Errorf("mascot = %v, want celebrating", h.mascot())
	}

	// A refresh after a weaker session drops the celebration.
	repo.sessions = append([]store.PracticeSessionSummary{{SolvedCount: 0, Total: 5}}, repo.sessions...)
	h.Update(h.Refresh()())
	if h.stats.Sessions != 3 || h.mascot() != MascotIdle {
		t.Errorf("after refresh: %+v mascot=%v", h.stats, h.mascot())
	}
}

func TestNoModelBanner(t *testing.T) {
	h := New(Options{})
	view := h.View(120, 40)
	if !strings.Contains(view, "sample set") {
		t.Error("expected the no-model banner")
	}
	if h.mascot() != MascotAlert {
		t.Error("expected the alert mascot")
	}
	if strings.Contains(New(Options{ModelConfigured: true}).View(120, 40), "sample set") {
		t.Error("banner shown with a model configured")
	}
}
