package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	sessions []store.PracticeSessionSummary
	err      error
	limit    int
}

func (m *mockEventRepo) PracticeHistory(_ context.Context, limit int) ([]store.PracticeSessionSummary, error) {
	m.limit = limit
	return m.sessions, m.err
}

func loaded(t *testing.T, repo *mockEventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryListsSessions(t *testing.T) {
	repo := &mockEventRepo{sessions: []store.PracticeSessionSummary{
		{SessionID: "s2", EndedAt: time.Now(), Level: "Advanced", Provenance: "fallback", SolvedCount: 0, Total: 5, Elapsed: 10 * time.Second},
		{SessionID: "s1", EndedAt: time.Now(), Level: "Beginner", Provenance: "model", SolvedCount: 2, Total: 3, Elapsed: 95 * time.Second, Submissions: 4},
	}}
	s := loaded(t, repo)

	if repo.limit != Limit {
		t.Errorf("limit = %d, want %d", repo.limit, Limit)
	}
	view := s.View(120, 40)
	for _, want := range []string{"Advanced", "0/5 solved", "Beginner", "2/3 solved", "1:35"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "submissions") {
		t.Error("details shown before expanding")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 40)
	if !strings.Contains(view, "submissions: 4") || !strings.Contains(view, "generated by AI") {
		t.Errorf("expanded details missing:\n%s", view)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	if !strings.Contains(s.View(100, 20), "No sessions yet") {
		t.Error("expected empty state")
	}

	s = loaded(t, &mockEventRepo{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 20), "disk gone") {
		t.Error("expected error message")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil || cmd() != (router.PopScreenMsg{}) {
		t.Fatal("esc should pop the screen")
	}
}
