package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

// ButtonWidth is the fixed width of menu buttons.
const ButtonWidth = 24

// ContentWidth returns the inner width shared by stacked boxes so they
// line up, capped at max.
func ContentWidth(frameWidth, max int) int {
	w := frameWidth - 6 // cabinet border + padding
	if w > max {
		w = max
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double border, centered in the area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded card with an optional heading.
func ArcadeCard(heading, content string, cw int) string {
	if heading != "" {
		content = theme.Heading.Render(heading) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeMenu renders the menu as a column of fixed-width buttons, or as
// plain lines when compact.
func ArcadeMenu(m Menu, cw int, compact bool) string {
	disabled := m.DisabledSet()
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if compact {
			lines = append(lines, compactButton(item.Label, i == m.Selected, disabled[i]))
		} else {
			lines = append(lines, ArcadeButton(item.Label, i == m.Selected, disabled[i]))
		}
	}
	block := strings.Join(lines, "\n")

	if item, ok := m.Current(); ok && item.Hint != "" {
		block += "\n\n" + theme.Hint.Render(item.Hint)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// ArcadeButton renders one bordered button.
func ArcadeButton(label string, selected, disabled bool) string {
	style := lipgloss.NewStyle().
		Width(ButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	case selected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	default:
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}

func compactButton(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
	}
}
