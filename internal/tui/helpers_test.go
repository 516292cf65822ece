package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/theme"
)

var errDirectoryDown = errors.New("directory down")

// fakeDirectory records calls and answers like a well-behaved directory.
// Commands are executed synchronously by the tests, so no locking.
type fakeDirectory struct {
	users  []directory.User
	nextID int64
	err    error
	calls  map[string]int

	// updateBodies holds every record sent to Update
	updateBodies []directory.User

	// updateResponse, if set, replaces the echoed update response
	updateResponse func(directory.User) directory.User
}

func newFakeDirectory(users ...directory.User) *fakeDirectory {
	return &fakeDirectory{
		users:  users,
		nextID: int64(len(users)),
		calls:  map[string]int{},
	}
}

func (f *fakeDirectory) List(ctx context.Context) ([]directory.User, error) {
	f.calls["list"]++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]directory.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (f *fakeDirectory) Create(ctx context.Context, draft directory.User) (directory.User, error) {
	f.calls["create"]++
	if f.err != nil {
		return directory.User{}, f.err
	}
	f.nextID++
	created := draft.Clone()
	created.ID = directory.NumericID(f.nextID)
	return created, nil
}

func (f *fakeDirectory) Update(ctx context.Context, user directory.User) (directory.User, error) {
	f.calls["update"]++
	f.updateBodies = append(f.updateBodies, user.Clone())
	if f.err != nil {
		return directory.User{}, f.err
	}
	if f.updateResponse != nil {
		return f.updateResponse(user), nil
	}
	return user.Clone(), nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id directory.ID) error {
	f.calls["delete"]++
	return f.err
}

func (f *fakeDirectory) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

var (
	ann = directory.User{ID: directory.NumericID(1), Name: "Ann", Email: "a@x.com", Phone: "1"}
	bo  = directory.User{ID: directory.NumericID(2), Name: "Bo", Email: "b@x.com", Phone: "9"}
)

// key builds a key message the way Bubble Tea delivers it
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// runCmd executes cmd and returns its message, failing if it does not
// finish promptly. A nil cmd yields nil.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not complete")
		return nil
	}
}

// observeLogs routes the global logger into an in-memory observer for the
// duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(nil) })
	return logs
}

// loadedDirectory returns a users list that has completed its initial load
func loadedDirectory(t *testing.T, fake *fakeDirectory) DirectoryModel {
	t.Helper()
	m := NewDirectoryModel(context.Background(), fake, NewSheet(theme.Light))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runCmd(t, m.loadAll()))
	return m
}

// update applies msg and returns the concrete model, discarding the command
func update(t *testing.T, m DirectoryModel, msg tea.Msg) DirectoryModel {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(DirectoryModel)
}

// press applies a sequence of keys
func press(t *testing.T, m DirectoryModel, keys ...string) DirectoryModel {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

// typeText delivers s as a single runes key message
func typeText(t *testing.T, m DirectoryModel, s string) DirectoryModel {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// submitAndComplete presses the given key, runs the form result through
// the model and then runs the resulting remote command through it too.
func submitAndComplete(t *testing.T, m DirectoryModel, k string) DirectoryModel {
	t.Helper()
	updated, cmd := m.Update(keyMsg(k))
	m = updated.(DirectoryModel)

	formMsg := runCmd(t, cmd)
	if _, ok := formMsg.(formSubmittedMsg); !ok {
		t.Fatalf("expected formSubmittedMsg, got %T", formMsg)
	}
	updated, cmd = m.Update(formMsg)
	m = updated.(DirectoryModel)

	return update(t, m, runCmd(t, cmd))
}

// containsText reports whether a rendered view contains text. Tests run
// without a terminal, so lipgloss emits no escape sequences.
func containsText(view, text string) bool {
	return strings.Contains(view, text)
}
