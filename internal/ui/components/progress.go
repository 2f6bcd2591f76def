package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

// Pips renders one marker per challenge: filled when solved, ringed for
// the current one.
func Pips(total, current int, solved func(i int) bool) string {
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		mark, style := "○", lipgloss.NewStyle().Foreground(theme.TextDim)
		if solved(i) {
			mark, style = "●", lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == current {
			style = style.Bold(true).Underline(true)
			if !solved(i) {
				style = style.Foreground(theme.ArcadeYellow)
			}
		}
		b.WriteString(style.Render(mark))
	}
	return b.String()
}

// ProgressBar renders a count against a total as a filled bar.
func ProgressBar(done, total, width int) string {
	label := fmt.Sprintf(" %d/%d", done, total)
	barWidth := width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if total > 0 {
		filled = barWidth * done / total
	}
	if filled > barWidth {
		filled = barWidth
	}

	return lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
