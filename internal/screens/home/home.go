package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/screen"
	"github.com/codearena/arena/internal/screens/history"
	practicescreen "github.com/codearena/arena/internal/screens/practice"
	"github.com/codearena/arena/internal/store"
	"github.com/codearena/arena/internal/ui/components"
	"github.com/codearena/arena/internal/ui/layout"
)

// statsWindow is how many recent sessions feed the dashboard.
const statsWindow = 100

// Options configure the home screen.
type Options struct {
	Practice        practicescreen.Deps
	EventRepo       store.EventRepo // optional; disables history when nil
	ModelConfigured bool
}

// Stats summarize recent practice for the dashboard.
type Stats struct {
	Sessions    int
	Solved      int
	LastPerfect bool
}

type statsLoadedMsg struct {
	Stats Stats
}

// HomeScreen is the level picker and dashboard.
type HomeScreen struct {
	opts  Options
	menu  components.Menu
	stats Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates the home screen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	var items []components.MenuItem
	for _, level := range challenge.Levels {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(string(level)),
			Hint:   levelHint(level),
			Action: h.practice(level),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Hint:     "Past sessions",
			Disabled: opts.EventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(opts.EventRepo)}
				}
			},
		},
		components.MenuItem{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) practice(level challenge.Level) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: practicescreen.New(h.opts.Practice, level)}
		}
	}
}

func levelHint(level challenge.Level) string {
	return "Challenges rated " + string(level.Difficulty())
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the dashboard after a practice session or history view.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.PracticeHistory(context.Background(), statsWindow)
		if err != nil {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Stats: computeStats(sessions)}
	}
}

func computeStats(sessions []store.PracticeSessionSummary) Stats {
	st := Stats{Sessions: len(sessions)}
	for _, s := range sessions {
		st.Solved += s.SolvedCount
	}
	if len(sessions) > 0 {
		last := sessions[0]
		st.LastPerfect = last.Total > 0 && last.SolvedCount == last.Total
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.Stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Header and footer take roughly eight rows of the terminal.
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width, 64)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	if !h.opts.ModelConfigured {
		sections = append(sections, renderNoModelBanner(cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, components.ArcadeMenu(h.menu, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case !h.opts.ModelConfigured:
		return MascotAlert
	case h.stats.LastPerfect:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) Title() string {
	return "Home"
}
