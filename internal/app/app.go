package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/router"
	"github.com/codearena/arena/internal/screen"
	"github.com/codearena/arena/internal/screens/home"
	practicescreen "github.com/codearena/arena/internal/screens/practice"
	"github.com/codearena/arena/internal/store"
	"github.com/codearena/arena/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Practice        practicescreen.Deps
	EventRepo       store.EventRepo
	ModelConfigured bool

	// StartLevel, when set, opens a practice session at that level on
	// top of the home screen.
	StartLevel challenge.Level

	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Options{
		Practice:        opts.Practice,
		EventRepo:       opts.EventRepo,
		ModelConfigured: opts.ModelConfigured,
	})
	m := AppModel{router: router.New(homeScreen)}

	cmds := []tea.Cmd{homeScreen.Init()}
	if opts.StartLevel != "" {
		cmds = append(cmds, m.router.Push(practicescreen.New(opts.Practice, opts.StartLevel)))
	}
	m.start = tea.Batch(cmds...)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Practice.Logger == nil {
		opts.Practice.Logger = opts.Logger
	}
	if opts.Practice.EventRepo == nil {
		opts.Practice.EventRepo = opts.EventRepo
	}

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		opts.Logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
