package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/userdeck/internal/directory"
)

// FormKind distinguishes the create form from the edit form
type FormKind int

const (
	FormCreate FormKind = iota
	FormEdit
)

// String returns the form kind for logs
func (k FormKind) String() string {
	if k == FormEdit {
		return "edit"
	}
	return "create"
}

// Form results. The form never talks to the directory; whoever hosts it
// decides what a submission means.
type formSubmittedMsg struct {
	kind       FormKind
	standalone bool
	user       directory.User
}

type formCancelledMsg struct {
	kind       FormKind
	standalone bool
}

// Field indices, in focus order
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Phone"}

// fieldIndex maps User.MissingFields names to input positions
var fieldIndex = map[string]int{"name": fieldName, "email": fieldEmail, "phone": fieldPhone}

// formKeyMap defines key bindings for the record form
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Enter  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Enter},
		{k.Submit, k.Cancel},
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / submit on last field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// FormModel is the user record form, used both to add a user and to edit
// one. Fields are required; nothing else is validated.
type FormModel struct {
	Kind FormKind

	// Standalone forms are not attached to the directory view
	Standalone bool

	original directory.User
	inputs   [fieldCount]textinput.Model
	missing  [fieldCount]bool
	focus    int

	Width int

	sheet *Sheet
	Help  help.Model
	Keys  formKeyMap
}

// NewCreateForm returns an empty form for a new user.
func NewCreateForm(sheet *Sheet, standalone bool) FormModel {
	m := newForm(sheet, FormCreate)
	m.Standalone = standalone
	return m
}

// NewEditForm returns a form seeded from user. Submitting it yields user
// with name, email and phone replaced and everything else preserved.
func NewEditForm(sheet *Sheet, user directory.User) FormModel {
	m := newForm(sheet, FormEdit)
	m.original = user.Clone()
	m.inputs[fieldName].SetValue(user.Name)
	m.inputs[fieldEmail].SetValue(user.Email)
	m.inputs[fieldPhone].SetValue(user.Phone)
	return m
}

func newForm(sheet *Sheet, kind FormKind) FormModel {
	m := FormModel{
		Kind:  kind,
		Width: FormWidth,
		sheet: sheet,
		Help:  help.New(),
		Keys:  newFormKeyMap(),
	}

	placeholders := [fieldCount]string{"Jane Doe", "jane@example.com", "555-0100"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = FormWidth - 8
		m.inputs[i] = ti
	}
	m.inputs[fieldName].Focus()

	return m
}

// Title is the heading shown above the fields
func (m FormModel) Title() string {
	if m.Kind == FormEdit {
		return "Edit User"
	}
	return "Add New User"
}

// SubmitLabel is the text of the submit control
func (m FormModel) SubmitLabel() string {
	if m.Kind == FormEdit {
		return "Update"
	}
	return "Add User"
}

// Value returns the current text of field i.
func (m FormModel) Value(i int) string {
	if i < 0 || i >= fieldCount {
		return ""
	}
	return m.inputs[i].Value()
}

// Focused returns the index of the focused field.
func (m FormModel) Focused() int {
	return m.focus
}

// Missing reports whether field i is flagged as required-but-empty.
func (m FormModel) Missing(i int) bool {
	return i >= 0 && i < fieldCount && m.missing[i]
}

// Init starts the cursor blinking
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = SafeModalWidth(FormWidth, msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, m.cancel()
		case key.Matches(msg, m.Keys.Submit):
			return m.submit()
		case key.Matches(msg, m.Keys.Next):
			return m.setFocus(m.focus + 1)
		case key.Matches(msg, m.Keys.Prev):
			return m.setFocus(m.focus - 1)
		case key.Matches(msg, m.Keys.Enter):
			if m.focus == fieldCount-1 {
				return m.submit()
			}
			return m.setFocus(m.focus + 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != "" {
		m.missing[m.focus] = false
	}
	return m, cmd
}

// setFocus moves focus to field i, wrapping around
func (m FormModel) setFocus(i int) (FormModel, tea.Cmd) {
	i = (i%fieldCount + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[m.focus].Focus()
}

// record builds the user the form currently describes
func (m FormModel) record() directory.User {
	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	phone := m.inputs[fieldPhone].Value()

	if m.Kind == FormEdit {
		return m.original.WithContact(name, email, phone)
	}
	return directory.NewDraft(name, email, phone)
}

// submit emits the record, or flags empty fields and focuses the first one
func (m FormModel) submit() (FormModel, tea.Cmd) {
	user := m.record()

	missing := user.MissingFields()
	if len(missing) > 0 {
		m.missing = [fieldCount]bool{}
		for _, name := range missing {
			m.missing[fieldIndex[name]] = true
		}
		return m.setFocus(fieldIndex[missing[0]])
	}

	m.missing = [fieldCount]bool{}
	kind, standalone := m.Kind, m.Standalone
	return m, func() tea.Msg {
		return formSubmittedMsg{kind: kind, standalone: standalone, user: user}
	}
}

func (m FormModel) cancel() tea.Cmd {
	kind, standalone := m.Kind, m.Standalone
	return func() tea.Msg {
		return formCancelledMsg{kind: kind, standalone: standalone}
	}
}

// View renders the form box
func (m FormModel) View() string {
	s := m.sheet

	var b strings.Builder
	b.WriteString(s.Title.UnsetPadding().Render(m.Title()))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := s.Label.Render(fieldLabels[i])
		if m.missing[i] {
			label += " " + s.Required.Render("required")
		}
		b.WriteString(label)
		b.WriteString("\n")

		input := m.inputs[i]
		if i == m.focus {
			input.PromptStyle = s.Focused
		} else {
			input.PromptStyle = s.Blurred
		}
		input.TextStyle = lipgloss.NewStyle().Foreground(s.Palette.Text)
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	submit := s.Button
	if m.Kind == FormCreate {
		submit = s.AddButton
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		submit.Render(m.SubmitLabel()),
		"  ",
		s.CancelBtn.Render("Cancel"),
	)
	b.WriteString(buttons)
	b.WriteString("\n\n")
	b.WriteString(m.Help.View(m.Keys))

	return s.ModalBox.Width(m.Width).Render(b.String())
}
