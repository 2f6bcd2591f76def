package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

// Editor wraps bubbles/textarea as a code editor. Keys it does not bind
// itself are left for the owning screen.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates an unfocused editor with line numbers.
func NewEditor() Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "Write your solution here..."
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(12)
	return Editor{Model: ta}
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.Model.Blur()
}

// Focused reports whether the editor has focus.
func (e Editor) Focused() bool {
	return e.Model.Focused()
}

// SetValue replaces the content.
func (e *Editor) SetValue(code string) {
	e.Model.SetValue(code)
}

// Value returns the content.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetSize resizes the editor.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Update forwards msg to the textarea.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor in a panel titled with label.
func (e Editor) View(label string) string {
	border := theme.Border
	if e.Focused() {
		border = theme.Primary
	}
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(head + "\n" + e.Model.View())
}
