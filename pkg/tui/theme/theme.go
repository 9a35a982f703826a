package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mercury/pkg/palette"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Week   WeekTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// WeekTheme styles the weekly task grid.
type WeekTheme struct {
	DayHeader   lipgloss.Style
	Today       lipgloss.Style
	TaskDone    lipgloss.Style
	TaskPending lipgloss.Style
	Selected    lipgloss.Style
	Empty       lipgloss.Style
	Offline     lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered modal overlays (e.g., the goal wizard).
type ModalTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Accent lipgloss.Style
	Faint  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color(palette.Default().Hex)

	return Theme{
		Week: WeekTheme{
			DayHeader:   lipgloss.NewStyle().Bold(true),
			Today:       lipgloss.NewStyle().Bold(true).Foreground(accent),
			TaskDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
			TaskPending: lipgloss.NewStyle(),
			Selected:    lipgloss.NewStyle().Reverse(true),
			Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
			Offline:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Accent: lipgloss.NewStyle().Foreground(accent),
			Faint:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
