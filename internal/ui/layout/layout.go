package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

// Terminal sizes. Below the minimum nothing but a resize notice is drawn;
// below the compact thresholds screens drop decorative art.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidth  = 100
	CompactHeight = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a content area of this size should use the
// condensed screen variants.
func IsCompact(width, height int) bool {
	return width < CompactWidth || height < CompactHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)
}

// RenderHeader draws the top bar: the app name on the left, title centred
// and status (possibly empty) on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Code Arena")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	return bar(spread(left, center, right, width-4), width)
}

// RenderFooter draws the key hints. Hints that do not fit the width are
// dropped from the end, so screens list the important keys first.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	const sep = "   "
	content := " "
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := content + part
		if i > 0 {
			next = content + sep + part
		}
		if lipgloss.Width(next) > width-4 && i > 0 {
			break
		}
		content = next
	}
	return bar(content, width)
}

// RenderFrame stacks header, content and footer, giving the content all
// rows the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(rows).
		MaxHeight(rows).
		Render(content)
	return strings.Join([]string{header, body, footer}, "\n")
}

// FormatElapsed renders a duration as m:ss, or h:mm:ss past an hour.
func FormatElapsed(secs int) string {
	secs = max(secs, 0)
	h, m, s := secs/3600, (secs/60)%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// spread places center in the middle of inner columns, with left and right
// pinned to the edges and at least one space between neighbours.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((max(inner, 0)-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}
