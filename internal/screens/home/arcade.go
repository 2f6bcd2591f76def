package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

const arcadeTitleFull = ` ██████╗ ██████╗ ██████╗ ███████╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝
██║     ██║   ██║██║  ██║█████╗
██║     ██║   ██║██║  ██║██╔══╝
╚██████╗╚██████╔╝██████╔╝███████╗
 ╚═════╝ ╚═════╝ ╚═════╝ ╚══════╝
       A · R · E · N · A`

const arcadeTitleCompact = "C O D E   A R E N A"

func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}

func renderStatsBar(st Stats, cw int, compact bool) string {
	sessionStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	solvedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s",
			sessionStyle.Render(fmt.Sprintf("▶%d", st.Sessions)),
			solvedStyle.Render(fmt.Sprintf("✓%d", st.Solved)))
	} else {
		text = fmt.Sprintf("%s  %s",
			sessionStyle.Render(fmt.Sprintf("▶ %d SESSIONS", st.Sessions)),
			solvedStyle.Render(fmt.Sprintf("✓ %d SOLVED", st.Solved)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func renderNoModelBanner(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Warning).
		Render("No model configured: practicing with the built-in sample set.")
}
