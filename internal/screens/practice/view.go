package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/challenge"
	"github.com/codearena/arena/internal/judge"
	sess "github.com/codearena/arena/internal/practice"
	"github.com/codearena/arena/internal/ui/components"
	"github.com/codearena/arena/internal/ui/layout"
	"github.com/codearena/arena/internal/ui/theme"
)

// maxShownCases caps the rows of the results table.
const maxShownCases = 6

func (s *PracticeScreen) View(width, height int) string {
	cur := s.Session()
	if cur == nil {
		return ""
	}
	switch cur.Phase() {
	case sess.PhaseLoading:
		return s.renderLoading(width, height)
	case sess.PhaseError:
		return renderError(cur.Err(), width, height)
	case sess.PhaseReady:
		return s.renderReady(cur, width, height)
	case sess.PhaseActive:
		return s.renderActive(cur, width, height)
	case sess.PhaseEnded:
		return renderSummary(cur.Summary(), width, height)
	}
	return ""
}

func (s *PracticeScreen) renderLoading(width, height int) string {
	text := fmt.Sprintf("%s Preparing %s challenges...", s.spin.View(), strings.ToLower(string(s.level)))
	body := lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderError(err error, width, height int) string {
	msg := "Something went wrong."
	if err != nil {
		msg = err.Error()
	}
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not load challenges") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(msg) +
		"\n\n" + theme.Hint.Render("Press R to try again.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard("", body, components.ContentWidth(width, 64)))
}

func (s *PracticeScreen) renderReady(cur *sess.Session, width, height int) string {
	cw := components.ContentWidth(width, 64)

	var b strings.Builder
	b.WriteString(provenanceChip(cur.Provenance()))
	b.WriteString("\n\n")
	for i, c := range cur.Batch().Challenges() {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, c.Title,
			lipgloss.NewStyle().Foreground(theme.DifficultyColor(string(c.Difficulty))).Render(string(c.Difficulty)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Language: %s\n\n", theme.Heading.Render(cur.Language().Label()))
	b.WriteString(theme.Hint.Render("Press Enter to start the clock."))

	card := components.ArcadeCard(fmt.Sprintf("%s · %d challenges", cur.Level(), cur.Batch().Len()), b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PracticeScreen) renderActive(cur *sess.Session, width, height int) string {
	c, _ := cur.Current()

	leftWidth := width * 2 / 5
	if leftWidth < 30 {
		leftWidth = 30
	}
	rightWidth := width - leftWidth - 1

	resultsHeight := 0
	results := ""
	if res := cur.LastResult(); res != nil || cur.Judging() || s.notice != "" {
		results = s.renderResults(cur, rightWidth-2)
		resultsHeight = lipgloss.Height(results)
	}

	editorHeight := height - resultsHeight - 4
	if editorHeight < 5 {
		editorHeight = 5
	}
	s.editor.SetSize(rightWidth-4, editorHeight)

	progress := components.Pips(cur.Batch().Len(), cur.CurrentIndex(), cur.Solved)
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(height).
		MaxHeight(height).
		Padding(0, 1).
		Render(progress + "\n\n" + renderChallenge(c, cur.Provenance(), leftWidth-2))

	right := s.editor.View(fmt.Sprintf("%s · challenge %d of %d", cur.Language().Label(), cur.CurrentIndex()+1, cur.Batch().Len()))
	if results != "" {
		right += "\n" + results
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func renderChallenge(c challenge.Challenge, prov challenge.Provenance, width int) string {
	wrap := lipgloss.NewStyle().Width(width).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(theme.Chip(strings.ToUpper(string(c.Difficulty)), theme.DifficultyColor(string(c.Difficulty))))
	b.WriteString(" ")
	b.WriteString(provenanceChip(prov))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(c.Description))

	section := func(title, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render(title))
		b.WriteString("\n")
		b.WriteString(wrap.Render(text))
	}
	section("Input", c.InputFormat)
	section("Output", c.OutputFormat)
	if len(c.Constraints) > 0 {
		section("Constraints", "• "+strings.Join(c.Constraints, "\n• "))
	}
	for i, ex := range c.Examples {
		text := "in:\n" + ex.Input + "\nout:\n" + ex.Output
		if ex.Explanation != "" {
			text += "\n" + ex.Explanation
		}
		section(fmt.Sprintf("Example %d", i+1), text)
	}
	return b.String()
}

func (s *PracticeScreen) renderResults(cur *sess.Session, width int) string {
	var b strings.Builder

	res := cur.LastResult()
	switch {
	case cur.Judging():
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.spin.View() + " Judging..."))
	case res != nil && res.Error != "":
		b.WriteString(theme.Incorrect.Render("✗ " + firstLine(res.Error)))
	case res != nil && res.Passed:
		b.WriteString(theme.Correct.Render(fmt.Sprintf("✓ All %d tests passed", len(res.Results))))
		if cur.HasNext() {
			b.WriteString(theme.Hint.Render("  Ctrl+N for the next challenge"))
		}
	case res != nil:
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ %d of %d tests passed", res.PassedCount(), len(res.Results))))
	}

	if res != nil && !cur.Judging() {
		for i, cr := range res.Results {
			if i == maxShownCases {
				fmt.Fprintf(&b, "\n  … %d more", len(res.Results)-maxShownCases)
				break
			}
			b.WriteString("\n")
			b.WriteString(renderCase(i, cr, width))
		}
	}

	if s.notice != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice))
	}

	return theme.Panel.Width(width).Render(b.String())
}

func renderCase(i int, cr judge.CaseResult, width int) string {
	mark := theme.Correct.Render("✓")
	if !cr.Passed {
		mark = theme.Incorrect.Render("✗")
	}
	line := fmt.Sprintf("%s #%d  in %s  want %s  got %s", mark, i+1,
		oneLine(cr.Input), oneLine(cr.Expected), oneLine(cr.Actual))
	if cr.TimeMs > 0 {
		line += fmt.Sprintf("  %dms", cr.TimeMs)
	}
	if cr.Error != "" {
		line += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render(firstLine(cr.Error))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func renderSummary(sum sess.Summary, width, height int) string {
	cw := components.ContentWidth(width, 56)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", theme.Heading.Render(fmt.Sprintf("Solved %d of %d", sum.SolvedCount, sum.Total)))
	b.WriteString(components.ProgressBar(sum.SolvedCount, sum.Total, cw-8))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Time  %s\n", layout.FormatElapsed(int(sum.Elapsed.Seconds())))
	fmt.Fprintf(&b, "Level %s\n\n", sum.Level)
	b.WriteString(provenanceChip(sum.Provenance))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("N for a new session · Enter for home"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard("Session complete", b.String(), cw))
}

func provenanceChip(p challenge.Provenance) string {
	if p == challenge.ProvenanceModel {
		return theme.Chip(p.Label(), theme.ArcadeCyan)
	}
	return theme.Chip(p.Label(), theme.Warning)
}

func oneLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "∅"
	}
	s = strings.ReplaceAll(s, "\n", "⏎")
	if len([]rune(s)) > 24 {
		s = string([]rune(s)[:23]) + "…"
	}
	return s
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
