package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/userdeck/internal/theme"
	"github.com/muurk/userdeck/internal/version"
)

// Application branding constants
const (
	AppName = "USERDECK"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	DefaultWidth     = 100
	DefaultHeight    = 30
	FormWidth        = 56
)

// Sheet is the active set of styles. Every model shares one Sheet and reads
// it at render time; the theme controller rebuilds it on each mode change.
type Sheet struct {
	Palette theme.Palette

	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Help        lipgloss.Style
	Button      lipgloss.Style
	AddButton   lipgloss.Style
	CancelBtn   lipgloss.Style
	Label       lipgloss.Style
	Required    lipgloss.Style
	Focused     lipgloss.Style
	Blurred     lipgloss.Style
	ModalBox    lipgloss.Style
	ConfirmBox  lipgloss.Style
	Spinner     lipgloss.Style
	TableHeader lipgloss.Style
	RowEven     lipgloss.Style
	RowOdd      lipgloss.Style
	RowSelected lipgloss.Style
	Action      lipgloss.Style
	Container   lipgloss.Style
	HeaderLine  lipgloss.Style
	FooterLine  lipgloss.Style
	EmptyNotice lipgloss.Style
}

// NewSheet builds a sheet for mode.
func NewSheet(mode theme.Mode) *Sheet {
	s := &Sheet{}
	s.Apply(mode)
	return s
}

// Mode returns the mode the sheet was last built for.
func (s *Sheet) Mode() theme.Mode {
	return s.Palette.Mode
}

// Apply rebuilds every style from the palette of mode. It has the
// theme.Subscriber signature.
func (s *Sheet) Apply(mode theme.Mode) {
	p := theme.PaletteFor(mode)
	s.Palette = p

	s.Title = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true).
		Padding(1, 0).
		Align(lipgloss.Center)

	s.Subtle = lipgloss.NewStyle().
		Foreground(p.Subtle).
		Italic(true)

	s.Help = lipgloss.NewStyle().
		Foreground(p.Subtle)

	s.Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(p.Primary).
		Bold(true).
		Padding(0, 2)

	s.AddButton = s.Button.
		Background(p.Success)

	s.CancelBtn = s.Button.
		Background(p.Danger)

	s.Label = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)

	s.Required = lipgloss.NewStyle().
		Foreground(p.Danger).
		Italic(true)

	s.Focused = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	s.Blurred = lipgloss.NewStyle().
		Foreground(p.Subtle)

	s.ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(FormWidth)

	s.ConfirmBox = s.ModalBox.
		BorderForeground(p.Danger)

	s.Spinner = lipgloss.NewStyle().
		Foreground(p.Primary)

	cell := lipgloss.NewStyle().Padding(0, 1)
	s.TableHeader = cell.
		Foreground(p.TableHeaderFg).
		Background(p.TableHeaderBg).
		Bold(true)
	// Even rows carry the strong colour, so their text is always white
	s.RowEven = cell.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(p.RowEvenBg)
	s.RowOdd = cell.
		Foreground(p.Text).
		Background(p.RowOddBg)
	s.RowSelected = cell.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(p.SelectedBg).
		Bold(true)
	s.Action = lipgloss.NewStyle().
		Foreground(p.Link).
		Bold(true)

	s.Container = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Background(p.Background)

	s.HeaderLine = lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.FooterLine = lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.EmptyNotice = lipgloss.NewStyle().
		Foreground(p.Subtle).
		Padding(1, 2)
}

// BuildHeaderContent renders the application name and the theme toggle
// control, which names the mode it switches to.
func (s *Sheet) BuildHeaderContent(route Route) string {
	left := lipgloss.NewStyle().
		Foreground(s.Palette.Text).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	toggle := s.Button.Render("ctrl+t " + s.Mode().ToggleLabel())

	right := lipgloss.NewStyle().
		Foreground(s.Palette.Subtle).
		Render(string(route))

	return lipgloss.JoinHorizontal(lipgloss.Center, toggle, "  ", left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the shared header and a
// context-sensitive footer, filling the terminal.
//
// Every route renders through this:
//
//	func (m Model) View() string {
//	    return m.sheet.RenderApplicationContainer(m.route, content, help, m.Width, m.Height)
//	}
func (s *Sheet) RenderApplicationContainer(route Route, content, footerText string, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	inner := width - 4 // outer border

	header := s.HeaderLine.Width(inner).Render(s.BuildHeaderContent(route))
	footer := s.FooterLine.Width(inner).Render(s.Help.Render(footerText))
	body := lipgloss.NewStyle().Width(inner).Render(content)

	bordered := s.Container.
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered,
		lipgloss.WithWhitespaceBackground(s.Palette.Background))
}

// CellStyle styles one cell of the users table. Rows alternate between
// the even and odd colours and the Actions column uses the action colour.
func (s *Sheet) CellStyle(row, col int, selected bool) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case row == table.HeaderRow:
		return s.TableHeader
	case selected:
		style = s.RowSelected
	case row%2 == 0:
		style = s.RowEven
	default:
		style = s.RowOdd
	}
	if col == actionsColumn && !selected {
		style = style.Foreground(s.Action.GetForeground()).Bold(true)
	}
	return style
}

// RenderModal centres modal content on a dimmed backdrop covering the
// whole terminal.
func (s *Sheet) RenderModal(modalContent string, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(s.Palette.Subtle),
		lipgloss.WithWhitespaceBackground(s.Palette.Background),
	)
}

// SafeModalWidth returns the smaller of requested and what fits in the
// terminal, never below 40 columns.
func SafeModalWidth(requested, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requested < maxWidth {
		return requested
	}
	return maxWidth
}
