package home

import (
	"charm.land/lipgloss/v2"

	"github.com/codearena/arena/internal/ui/theme"
)

// MascotVariant selects the mascot art.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // last session fully solved
	MascotAlert                     // no model configured
)

const mascotIdle = `┌──────┐
│ ◉  ◉ │
│  ‿   │
│ </>  │
└──────┘`

const mascotCelebrating = `┌──────┐
│ ★  ★ │
│  ▿   │
│ </>  │
└─╥══╥─┘
  ╚══╝`

const mascotAlert = `┌──────┐
│ ◉  ◉ │ ?
│  ─   │
│ </>  │
└──────┘`

// RenderMascot returns the mascot art for variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Warning
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
