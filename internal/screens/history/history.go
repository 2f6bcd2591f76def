package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/screen"
	"github.com/codearena/arena/internal/store"
	"github.com/codearena/arena/internal/ui/layout"
	"github.com/codearena/arena/internal/ui/theme"
)

// Limit is how many past sessions the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.PracticeSessionSummary
	Err      error
}

// HistoryScreen lists finished practice sessions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.PracticeSessionSummary
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by eventRepo.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.PracticeHistory(context.Background(), Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return centered.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.sessions) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo sessions yet. Pick a level and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sum := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summaryLine(sum))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range detailLines(sum) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(line)))
				b.WriteString("\n")
			}
		}
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}

func summaryLine(sum store.PracticeSessionSummary) string {
	return fmt.Sprintf("%s  %-12s  %d/%d solved  %s",
		sum.EndedAt.Local().Format("Jan 02 15:04"),
		sum.Level,
		sum.SolvedCount, sum.Total,
		layout.FormatElapsed(int(sum.Elapsed.Seconds())))
}

func detailLines(sum store.PracticeSessionSummary) []string {
	source := "sample set"
	if sum.Provenance == "model" {
		source = "generated by AI"
	}
	return []string{
		fmt.Sprintf("challenges: %s", source),
		fmt.Sprintf("submissions: %d", sum.Submissions),
		fmt.Sprintf("session: %s", sum.SessionID),
	}
}
