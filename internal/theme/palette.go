package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours one mode renders with.
type Palette struct {
	Mode Mode

	Background lipgloss.Color
	Text       lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color

	Primary lipgloss.Color // buttons, titles
	Success lipgloss.Color // add actions
	Danger  lipgloss.Color // delete, cancel, errors
	Link    lipgloss.Color // row edit action

	TableHeaderFg lipgloss.Color
	TableHeaderBg lipgloss.Color
	RowEvenBg     lipgloss.Color
	RowOddBg      lipgloss.Color
	SelectedBg    lipgloss.Color
}

// Light palette
var lightPalette = Palette{
	Mode:       Light,
	Background: lipgloss.Color("#F3F4F6"), // Gray 100
	Text:       lipgloss.Color("#000000"),
	Subtle:     lipgloss.Color("#6B7280"),
	Border:     lipgloss.Color("#3B82F6"), // Blue

	Primary: lipgloss.Color("#3B82F6"),
	Success: lipgloss.Color("#22C55E"),
	Danger:  lipgloss.Color("#EF4444"),
	Link:    lipgloss.Color("#5B21B6"), // Violet

	TableHeaderFg: lipgloss.Color("#FFFFFF"),
	TableHeaderBg: lipgloss.Color("#3B82F6"),
	RowEvenBg:     lipgloss.Color("#16A085"), // Teal
	RowOddBg:      lipgloss.Color("#FFFFFF"),
	SelectedBg:    lipgloss.Color("#0EA5E9"), // Sky
}

// Dark palette
var darkPalette = Palette{
	Mode:       Dark,
	Background: lipgloss.Color("#111827"), // Gray 900
	Text:       lipgloss.Color("#FFFFFF"),
	Subtle:     lipgloss.Color("#9CA3AF"),
	Border:     lipgloss.Color("#7C3AED"), // Purple

	Primary: lipgloss.Color("#3B82F6"),
	Success: lipgloss.Color("#22C55E"),
	Danger:  lipgloss.Color("#FCA5A5"),
	Link:    lipgloss.Color("#E11D48"), // Rose

	TableHeaderFg: lipgloss.Color("#D1D5DB"),
	TableHeaderBg: lipgloss.Color("#1E40AF"),
	RowEvenBg:     lipgloss.Color("#6B21A8"),
	RowOddBg:      lipgloss.Color("#1F2937"),
	SelectedBg:    lipgloss.Color("#0284C7"),
}

// PaletteFor returns the palette of mode. Unknown modes get the light one.
func PaletteFor(mode Mode) Palette {
	if mode == Dark {
		return darkPalette
	}
	return lightPalette
}
