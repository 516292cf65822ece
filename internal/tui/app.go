package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/theme"
)

// Route is a navigable path of the interface
type Route string

const (
	// RouteDirectory shows the users list
	RouteDirectory Route = "/"

	// RouteCreateUser shows a create form that is not attached to the list
	// or the directory. Submitting it only returns to RouteDirectory.
	RouteCreateUser Route = "/create-user"
)

// ParseRoute validates a route name
func ParseRoute(s string) (Route, error) {
	switch r := Route(strings.TrimSpace(s)); r {
	case "":
		return RouteDirectory, nil
	case RouteDirectory, RouteCreateUser:
		return r, nil
	default:
		return "", fmt.Errorf("unknown route %q (must be %s or %s)", s, RouteDirectory, RouteCreateUser)
	}
}

// appKeyMap defines the bindings the shell handles on every route
type appKeyMap struct {
	Theme     key.Binding
	ThemeAny  key.Binding // works while a text field has focus
	Route     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ThemeAny, k.Route, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Theme, k.ThemeAny, k.Route, k.Quit, k.ForceQuit}}
}

// Options configures NewAppModel
type Options struct {
	// Context bounds every directory request. Defaults to Background.
	Context context.Context

	// Directory is the remote user directory
	Directory Directory

	// Theme is the shared theme controller. Defaults to a light one.
	Theme *theme.Controller

	// StartRoute is the route shown first. Defaults to RouteDirectory.
	StartRoute Route
}

// AppModel is the top-level model: it owns the theme and routes between the
// users list and the standalone create form.
type AppModel struct {
	Route Route

	ctx   context.Context
	dir   Directory
	theme *theme.Controller
	sheet *Sheet

	// Route models. The users list is mounted the first time its route is
	// shown and kept for the rest of the session.
	Directory        DirectoryModel
	directoryMounted bool
	CreateForm       FormModel

	// UI state
	Width  int
	Height int

	Help help.Model
	Keys appKeyMap
}

// NewAppModel creates the application model
func NewAppModel(opts Options) AppModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl := opts.Theme
	if ctrl == nil {
		ctrl = theme.NewController(theme.DefaultMode)
	}
	route := opts.StartRoute
	if route == "" {
		route = RouteDirectory
	}

	sheet := NewSheet(ctrl.Mode())
	ctrl.Subscribe(sheet.Apply)

	keys := appKeyMap{
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		ThemeAny: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Route: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "switch route"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	m := AppModel{
		Route: route,
		ctx:   ctx,
		dir:   opts.Directory,
		theme: ctrl,
		sheet: sheet,
		Help:  help.New(),
		Keys:  keys,
	}

	switch route {
	case RouteDirectory:
		m.mountDirectory()
	case RouteCreateUser:
		m.CreateForm = NewCreateForm(sheet, true)
	}

	return m
}

// Theme returns the active theme mode
func (m AppModel) Theme() theme.Mode {
	return m.sheet.Mode()
}

// Init initializes the starting route
func (m AppModel) Init() tea.Cmd {
	switch m.Route {
	case RouteDirectory:
		return m.Directory.Init()
	case RouteCreateUser:
		return m.CreateForm.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		// Propagate to all screens
		var cmds []tea.Cmd
		if m.directoryMounted {
			updated, cmd := m.Directory.Update(msg)
			m.Directory = updated.(DirectoryModel)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.CreateForm, cmd = m.CreateForm.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.ForceQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.Keys.ThemeAny) {
			m.toggleTheme()
			return m, nil
		}
		if !m.inputFocused() {
			switch {
			case key.Matches(msg, m.Keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.Keys.Theme):
				m.toggleTheme()
				return m, nil
			case key.Matches(msg, m.Keys.Route) && !m.modalOpen():
				return m.navigate(m.otherRoute())
			}
		}

	case formSubmittedMsg:
		if msg.standalone {
			logging.Debug("Standalone create form submitted",
				zap.String("name", msg.user.Name),
				zap.String("email", msg.user.Email),
				zap.String("phone", msg.user.Phone),
			)
			return m.navigate(RouteDirectory)
		}

	case formCancelledMsg:
		if msg.standalone {
			return m.navigate(RouteDirectory)
		}

	// Completions reach the list whichever route is showing
	case usersLoadedMsg, userCreatedMsg, userUpdatedMsg, userDeletedMsg, spinner.TickMsg:
		return m.updateDirectory(msg)
	}

	return m.updateCurrentRoute(msg)
}

// updateCurrentRoute routes updates to the currently active screen
func (m AppModel) updateCurrentRoute(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.Route {
	case RouteDirectory:
		return m.updateDirectory(msg)
	case RouteCreateUser:
		var cmd tea.Cmd
		m.CreateForm, cmd = m.CreateForm.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) updateDirectory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.directoryMounted {
		return m, nil
	}
	updated, cmd := m.Directory.Update(msg)
	m.Directory = updated.(DirectoryModel)
	return m, cmd
}

// toggleTheme flips light/dark; the sheet follows through its subscription
func (m AppModel) toggleTheme() {
	mode := m.theme.Toggle()
	logging.Debug("Theme toggled", zap.String("theme", string(mode)))
}

// navigate shows route, mounting the users list on first visit and giving
// the create route a fresh form each time
func (m AppModel) navigate(route Route) (tea.Model, tea.Cmd) {
	logging.Debug("Route changed", zap.String("from", string(m.Route)), zap.String("to", string(route)))
	m.Route = route

	switch route {
	case RouteDirectory:
		if !m.directoryMounted {
			m.mountDirectory()
			return m, m.Directory.Init()
		}
		return m, nil

	case RouteCreateUser:
		m.CreateForm = NewCreateForm(m.sheet, true)
		if m.Width > 0 {
			m.CreateForm.Width = SafeModalWidth(FormWidth, m.Width)
		}
		return m, m.CreateForm.Init()
	}

	return m, nil
}

func (m *AppModel) mountDirectory() {
	m.Directory = NewDirectoryModel(m.ctx, m.dir, m.sheet)
	if m.Width > 0 {
		updated, _ := m.Directory.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
		m.Directory = updated.(DirectoryModel)
	}
	m.directoryMounted = true
}

func (m AppModel) otherRoute() Route {
	if m.Route == RouteDirectory {
		return RouteCreateUser
	}
	return RouteDirectory
}

// inputFocused reports whether keystrokes belong to a text field
func (m AppModel) inputFocused() bool {
	switch m.Route {
	case RouteCreateUser:
		return true
	case RouteDirectory:
		return m.Directory.InputFocused()
	}
	return false
}

func (m AppModel) modalOpen() bool {
	switch m.Route {
	case RouteCreateUser:
		return true
	case RouteDirectory:
		return m.Directory.Modal().IsOpen()
	}
	return false
}

// View renders the current route
func (m AppModel) View() string {
	switch m.Route {
	case RouteDirectory:
		return m.Directory.View()
	case RouteCreateUser:
		content := lipgloss.NewStyle().Padding(1, 2).Render(m.CreateForm.View())
		footer := "esc back to " + string(RouteDirectory) + " • ctrl+t theme • ctrl+c quit"
		return m.sheet.RenderApplicationContainer(RouteCreateUser, content, footer, m.Width, m.Height)
	default:
		return "Unknown route"
	}
}
