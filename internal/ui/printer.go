package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/userdeck/internal/directory"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way CLI subcommands should output styled content.
type Printer struct {
	out   io.Writer
	in    *bufio.Reader
	width int
}

// NewPrinter creates a new Printer that writes to w and reads answers from
// r. Nil values default to os.Stdout and os.Stdin.
func NewPrinter(w io.Writer, r io.Reader) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if r == nil {
		r = os.Stdin
	}
	return &Printer{
		out:   w,
		in:    bufio.NewReader(r),
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintUsers prints users as a bordered table
func (p *Printer) PrintUsers(users []directory.User) {
	p.Println(RenderUsersTable(users, p.width))
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// UserDetails returns the labelled fields of a user for result boxes
func UserDetails(u directory.User) []Detail {
	return []Detail{
		{Key: "ID", Value: u.ID.String()},
		{Key: "Name", Value: u.Name},
		{Key: "Email", Value: u.Email},
		{Key: "Phone", Value: u.Phone},
	}
}

// RenderUsersTable renders users with ID, Name, Email and Phone columns
func RenderUsersTable(users []directory.User, width int) string {
	if len(users) == 0 {
		return MutedStyle.Render("  No users")
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID.String(), u.Name, u.Email, u.Phone})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		Headers("ID", "NAME", "EMAIL", "PHONE").
		Rows(rows...).
		Width(clampWidth(width)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	return t.Render()
}

// Confirm shows a warning box and asks a y/N question. Anything other than
// y or yes (case-insensitive) declines, including end of input.
func (p *Printer) Confirm(title string, warnings []string, question string) bool {
	width := clampWidth(p.width)

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  %s", WarningMarker, title)), ""}
	for _, w := range warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+w))
	}
	lines = append(lines, "")

	p.Println(boxStyle(WarningColor, width).Render(strings.Join(lines, "\n")))
	p.Newline()
	p.Print(WarningTitleStyle.Render(question + " [y/N]: "))

	input, err := p.in.ReadString('\n')
	if err != nil && input == "" {
		p.Newline()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		p.Newline()
		return true
	}

	p.Newline()
	p.Println(MutedStyle.Render("  Operation cancelled."))
	return false
}
