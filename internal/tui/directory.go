package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/userlist"
)

const (
	confirmDeleteText = "Are you sure you want to delete this user?"
	actionsCell       = "Edit  Delete"
	actionsColumn     = 3
)

// directoryKeyMap defines key bindings for the users list. Theme, Route
// and Quit are handled by AppModel and listed here for the footer only.
type directoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Theme  key.Binding
	Route  key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k directoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Theme, k.Quit, k.Help}
}

// FullHelp returns keybindings for the expanded help view
func (k directoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit, k.Delete},
		{k.Theme, k.Route, k.Quit, k.Help},
	}
}

// confirmKeyMap defines key bindings for the delete confirmation
type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

// FullHelp returns keybindings for the expanded help view
func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Yes, k.No}}
}

// DirectoryModel is the users list screen. It owns the local list and the
// modal state, and is the only place remote operations are started from.
type DirectoryModel struct {
	ctx context.Context
	dir Directory

	users *userlist.List
	modal userlist.Modal
	form  FormModel

	// UI state
	Width   int
	Height  int
	Loading bool
	table   table.Model
	spinner spinner.Model
	sheet   *Sheet

	// Help
	Help        help.Model
	Keys        directoryKeyMap
	ConfirmKeys confirmKeyMap
}

// NewDirectoryModel creates the users list screen. Nothing is fetched until
// Init runs.
func NewDirectoryModel(ctx context.Context, dir Directory, sheet *Sheet) DirectoryModel {
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	// d and g belong to the list and the shell, not table paging
	tableKeys := table.DefaultKeyMap()
	tableKeys.HalfPageDown.SetKeys("ctrl+d")
	tableKeys.GotoTop.SetKeys("home")

	t := table.New(
		table.WithColumns(columnsFor(DefaultWidth)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(tableKeys),
	)

	keys := directoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add user"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d/x", "delete"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t", "ctrl+t"),
			key.WithHelp("t/ctrl+t", "theme"),
		),
		Route: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to /create-user"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}

	confirmKeys := confirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "keep"),
		),
	}

	return DirectoryModel{
		ctx:         ctx,
		dir:         dir,
		users:       userlist.New(nil),
		modal:       userlist.NoModal(),
		Loading:     true,
		table:       t,
		spinner:     s,
		sheet:       sheet,
		Help:        help.New(),
		Keys:        keys,
		ConfirmKeys: confirmKeys,
	}
}

// Init loads the full list once
func (m DirectoryModel) Init() tea.Cmd {
	return tea.Batch(m.loadAll(), m.spinner.Tick)
}

// Users returns a copy of the local list
func (m DirectoryModel) Users() []directory.User {
	return m.users.Users()
}

// Modal returns the current modal state
func (m DirectoryModel) Modal() userlist.Modal {
	return m.modal
}

// Form returns the open form, if any
func (m DirectoryModel) Form() (FormModel, bool) {
	switch m.modal.Kind() {
	case userlist.ModalCreating, userlist.ModalEditing:
		return m.form, true
	}
	return FormModel{}, false
}

// InputFocused reports whether a form is capturing keystrokes
func (m DirectoryModel) InputFocused() bool {
	_, ok := m.Form()
	return ok
}

// Update handles messages and updates the model
func (m DirectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case usersLoadedMsg:
		m.Loading = false
		if msg.err != nil {
			logging.LogRemoteFailure(string(directory.OpList), msg.err)
			return m, nil
		}
		m.users.Replace(msg.users)
		m.refreshRows()
		logging.Debug("Users loaded", zap.Int("count", m.users.Len()))
		return m, nil

	case userCreatedMsg:
		if msg.err != nil {
			logging.LogRemoteFailure(string(directory.OpCreate), msg.err)
			return m, nil
		}
		m.users.Append(msg.user)
		m.refreshRows()
		if m.modal.Kind() == userlist.ModalCreating {
			m.dismissForms()
		}
		return m, nil

	case userUpdatedMsg:
		if msg.err != nil {
			logging.LogRemoteFailure(string(directory.OpUpdate), msg.err, zap.String("id", msg.id.String()))
			return m, nil
		}
		if m.users.ReplaceByID(msg.id, msg.user) {
			m.refreshRows()
		} else {
			logging.Debug("Update completed for a user no longer listed", zap.String("id", msg.id.String()))
		}
		if m.modal.IsEditing(msg.id) {
			m.dismissForms()
		}
		return m, nil

	case userDeletedMsg:
		if msg.err != nil {
			logging.LogRemoteFailure(string(directory.OpDelete), msg.err, zap.String("id", msg.id.String()))
			return m, nil
		}
		if m.users.RemoveByID(msg.id) {
			m.refreshRows()
		}
		return m, nil

	case formSubmittedMsg:
		if msg.standalone {
			return m, nil
		}
		switch msg.kind {
		case FormCreate:
			return m, m.createUser(msg.user)
		case FormEdit:
			return m, m.updateUser(msg.user)
		}
		return m, nil

	case formCancelledMsg:
		if !msg.standalone {
			m.dismissForms()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Anything else (cursor blink) belongs to the open form
	if m.InputFocused() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a keystroke according to the modal state
func (m DirectoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal.Kind() {
	case userlist.ModalCreating, userlist.ModalEditing:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case userlist.ModalConfirmingDelete:
		switch {
		case key.Matches(msg, m.ConfirmKeys.Yes):
			return m, m.confirmDelete()
		case key.Matches(msg, m.ConfirmKeys.No):
			m.modal = userlist.NoModal()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Add):
		return m, m.openCreateForm()

	case key.Matches(msg, m.Keys.Edit):
		if user, ok := m.selected(); ok {
			return m, m.openEditForm(user)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Delete):
		if user, ok := m.selected(); ok {
			m.deleteUser(user.ID)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// loadAll fetches the whole list from the directory. Loading starts true
// in NewDirectoryModel so the spinner shows before the first frame.
func (m DirectoryModel) loadAll() tea.Cmd {
	return loadUsersCmd(m.ctx, m.dir)
}

// createUser posts a draft; the list changes only when the directory answers
func (m *DirectoryModel) createUser(draft directory.User) tea.Cmd {
	return createUserCmd(m.ctx, m.dir, draft)
}

// updateUser puts a full record by id
func (m *DirectoryModel) updateUser(user directory.User) tea.Cmd {
	return updateUserCmd(m.ctx, m.dir, user)
}

// deleteUser asks for confirmation before anything is sent
func (m *DirectoryModel) deleteUser(id directory.ID) {
	m.modal = userlist.ConfirmingDelete(id)
}

// confirmDelete closes the confirmation and issues the delete
func (m *DirectoryModel) confirmDelete() tea.Cmd {
	id, ok := m.modal.DeleteTarget()
	m.modal = userlist.NoModal()
	if !ok {
		return nil
	}
	return deleteUserCmd(m.ctx, m.dir, id)
}

func (m *DirectoryModel) openCreateForm() tea.Cmd {
	m.form = NewCreateForm(m.sheet, false)
	m.form.Width = SafeModalWidth(FormWidth, m.widthOrDefault())
	m.modal = userlist.Creating()
	return m.form.Init()
}

func (m *DirectoryModel) openEditForm(user directory.User) tea.Cmd {
	m.form = NewEditForm(m.sheet, user)
	m.form.Width = SafeModalWidth(FormWidth, m.widthOrDefault())
	m.modal = userlist.Editing(user)
	return m.form.Init()
}

func (m *DirectoryModel) dismissForms() {
	m.modal = userlist.NoModal()
	m.form = FormModel{}
}

// selected returns the user under the table cursor
func (m DirectoryModel) selected() (directory.User, bool) {
	return m.users.At(m.table.Cursor())
}

func (m DirectoryModel) widthOrDefault() int {
	if m.Width <= 0 {
		return DefaultWidth
	}
	return m.Width
}

// refreshRows rebuilds the table from the list, keeping the cursor in range
func (m *DirectoryModel) refreshRows() {
	users := m.users.Users()
	rows := make([]table.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, table.Row{u.Name, u.Email, u.Phone, actionsCell})
	}
	m.table.SetRows(rows)

	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m *DirectoryModel) resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width

	m.table.SetColumns(columnsFor(width))
	// header, title, add button, footer and borders
	if h := height - 14; h > 3 {
		m.table.SetHeight(h)
	} else {
		m.table.SetHeight(3)
	}
}

// columnsFor splits the usable width between the four columns
func columnsFor(width int) []table.Column {
	usable := width - 14 // borders and cell padding
	if usable < MinTerminalWidth-14 {
		usable = MinTerminalWidth - 14
	}
	actions := len(actionsCell) + 2
	rest := usable - actions

	return []table.Column{
		{Title: "Name", Width: rest * 3 / 10},
		{Title: "Email", Width: rest * 4 / 10},
		{Title: "Phone", Width: rest - rest*3/10 - rest*4/10},
		{Title: "Actions", Width: actions},
	}
}

// View renders the users list, or the open modal over it
func (m DirectoryModel) View() string {
	switch m.modal.Kind() {
	case userlist.ModalCreating, userlist.ModalEditing:
		return m.sheet.RenderModal(m.form.View(), m.Width, m.Height)
	case userlist.ModalConfirmingDelete:
		return m.sheet.RenderModal(m.renderConfirm(), m.Width, m.Height)
	}

	return m.sheet.RenderApplicationContainer(RouteDirectory, m.renderContent(), m.Help.View(m.Keys), m.Width, m.Height)
}

func (m DirectoryModel) renderContent() string {
	s := m.sheet
	width := m.widthOrDefault() - 4

	title := s.Title.Width(width).Render("Users List")

	addButton := lipgloss.NewStyle().
		Width(width - 2).
		Align(lipgloss.Right).
		Render(s.AddButton.Render("a  Add New User"))

	var body string
	if m.Loading {
		sp := m.spinner
		sp.Style = s.Spinner
		body = lipgloss.NewStyle().Padding(1, 2).Render(sp.View() + " Loading users...")
	} else {
		body = lipgloss.NewStyle().Padding(0, 1).Render(m.renderTable(width - 2))
		if m.users.Len() == 0 {
			body += "\n" + s.EmptyNotice.Render("No users")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, addButton, "", body)
}

// renderTable draws the rows around the cursor. The bubbles table keeps
// the cursor and key handling; drawing goes through lipgloss so each row
// can take its own colours.
func (m DirectoryModel) renderTable(width int) string {
	s := m.sheet
	users := m.users.Users()
	cursor := m.table.Cursor()
	start, end := visibleRows(len(users), cursor, m.table.Height())

	rows := make([][]string, 0, end-start)
	for _, u := range users[start:end] {
		rows = append(rows, []string{u.Name, u.Email, u.Phone, actionsCell})
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Palette.Border)).
		BorderRow(false).
		Headers("Name", "Email", "Phone", "Actions").
		Rows(rows...).
		Width(width).
		Wrap(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return s.CellStyle(row, col, false)
			}
			abs := start + row
			return s.CellStyle(abs, col, abs == cursor)
		}).
		Render()
}

// visibleRows returns the window of at most height rows that keeps cursor
// on screen
func visibleRows(total, cursor, height int) (start, end int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	if cursor >= height {
		start = cursor - height + 1
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

func (m DirectoryModel) renderConfirm() string {
	s := m.sheet

	var b strings.Builder
	b.WriteString(s.Label.Render(confirmDeleteText))
	b.WriteString("\n\n")

	if id, ok := m.modal.DeleteTarget(); ok {
		if user, found := m.users.Find(id); found {
			b.WriteString(s.Subtle.Render(user.Name + " <" + user.Email + ">"))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		s.CancelBtn.Render("y  Delete"),
		"  ",
		s.Button.Render("n  Cancel"),
	))
	b.WriteString("\n\n")
	b.WriteString(m.Help.View(m.ConfirmKeys))

	return s.ConfirmBox.Render(b.String())
}
