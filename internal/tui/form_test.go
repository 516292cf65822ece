package tui

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/userdeck/internal/theme"
)

func formPress(t *testing.T, m FormModel, keys ...string) (FormModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func formType(m FormModel, s string) FormModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestNewCreateForm(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)

	if m.Title() != "Add New User" || m.SubmitLabel() != "Add User" {
		t.Errorf("Title/SubmitLabel = %q/%q", m.Title(), m.SubmitLabel())
	}
	for i := 0; i < fieldCount; i++ {
		if m.Value(i) != "" {
			t.Errorf("field %d = %q, want empty", i, m.Value(i))
		}
	}
	if m.Focused() != fieldName {
		t.Errorf("Focused() = %d, want name", m.Focused())
	}
}

func TestNewEditForm_Seeds(t *testing.T) {
	m := NewEditForm(NewSheet(theme.Light), ann)

	if m.Title() != "Edit User" || m.SubmitLabel() != "Update" {
		t.Errorf("Title/SubmitLabel = %q/%q", m.Title(), m.SubmitLabel())
	}
	if m.Value(fieldName) != "Ann" || m.Value(fieldEmail) != "a@x.com" || m.Value(fieldPhone) != "1" {
		t.Errorf("seeded values = %q %q %q", m.Value(fieldName), m.Value(fieldEmail), m.Value(fieldPhone))
	}
}

func TestForm_FocusNavigation(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)

	tests := []struct {
		key  string
		want int
	}{
		{"tab", fieldEmail},
		{"down", fieldPhone},
		{"tab", fieldName}, // wraps
		{"shift+tab", fieldPhone},
		{"up", fieldEmail},
		{"enter", fieldPhone}, // enter advances before the last field
	}

	for _, tt := range tests {
		m, _ = formPress(t, m, tt.key)
		if m.Focused() != tt.want {
			t.Fatalf("after %s Focused() = %d, want %d", tt.key, m.Focused(), tt.want)
		}
	}
}

func TestForm_SubmitBlockedWhenEmpty(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)

	m, cmd := formPress(t, m, "ctrl+s")
	if _, ok := runCmd(t, cmd).(formSubmittedMsg); ok {
		t.Fatal("empty form must not submit")
	}
	for i := 0; i < fieldCount; i++ {
		if !m.Missing(i) {
			t.Errorf("field %d should be flagged required", i)
		}
	}
	if m.Focused() != fieldName {
		t.Errorf("Focused() = %d, want first empty field", m.Focused())
	}
}

func TestForm_SubmitFocusesFirstEmpty(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)
	m = formType(m, "Bo")

	m, cmd := formPress(t, m, "ctrl+s")
	if _, ok := runCmd(t, cmd).(formSubmittedMsg); ok {
		t.Fatal("form with empty email/phone must not submit")
	}
	if m.Missing(fieldName) || !m.Missing(fieldEmail) || !m.Missing(fieldPhone) {
		t.Errorf("Missing = %v %v %v, want false true true", m.Missing(fieldName), m.Missing(fieldEmail), m.Missing(fieldPhone))
	}
	if m.Focused() != fieldEmail {
		t.Errorf("Focused() = %d, want email", m.Focused())
	}

	// typing clears the marker
	m = formType(m, "b@x.com")
	if m.Missing(fieldEmail) {
		t.Error("typing into a flagged field should clear the marker")
	}
}

func TestForm_WhitespaceCountsAsValue(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)
	m = formType(m, " ")
	m, _ = formPress(t, m, "tab")
	m = formType(m, " ")
	m, _ = formPress(t, m, "tab")
	m = formType(m, " ")

	m, cmd := formPress(t, m, "ctrl+s")
	msg, ok := runCmd(t, cmd).(formSubmittedMsg)
	if !ok {
		t.Fatal("fields holding a space should submit")
	}
	if msg.user.Name != " " || msg.user.Email != " " || msg.user.Phone != " " {
		t.Errorf("record = %+v, want values kept as typed", msg.user)
	}
	for i := 0; i < fieldCount; i++ {
		if m.Missing(i) {
			t.Errorf("field %d flagged after a successful submit", i)
		}
	}
}

func TestForm_CreateSubmit(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), false)
	m = formType(m, "Bo")
	m, _ = formPress(t, m, "tab")
	m = formType(m, "b@x.com")
	m, _ = formPress(t, m, "tab")
	m = formType(m, "9")

	_, cmd := formPress(t, m, "enter")
	msg, ok := runCmd(t, cmd).(formSubmittedMsg)
	if !ok {
		t.Fatalf("enter on last field should submit, got %T", msg)
	}

	if msg.kind != FormCreate || msg.standalone {
		t.Errorf("kind/standalone = %v/%v", msg.kind, msg.standalone)
	}
	if !msg.user.ID.IsZero() {
		t.Errorf("created draft should have no id, got %v", msg.user.ID)
	}
	if msg.user.Name != "Bo" || msg.user.Email != "b@x.com" || msg.user.Phone != "9" {
		t.Errorf("user = %+v", msg.user)
	}
}

func TestForm_EditPreservesIDAndExtra(t *testing.T) {
	orig := ann.Clone()
	orig.Extra = map[string]json.RawMessage{"username": json.RawMessage(`"ann"`)}

	m := NewEditForm(NewSheet(theme.Light), orig)
	m, _ = formPress(t, m, "tab", "tab", "backspace")
	m = formType(m, "2")

	_, cmd := formPress(t, m, "ctrl+s")
	msg, ok := runCmd(t, cmd).(formSubmittedMsg)
	if !ok {
		t.Fatalf("expected formSubmittedMsg, got %T", msg)
	}

	if msg.kind != FormEdit {
		t.Errorf("kind = %v, want edit", msg.kind)
	}
	if msg.user.ID != orig.ID {
		t.Errorf("ID = %v, want %v", msg.user.ID, orig.ID)
	}
	if msg.user.Phone != "2" || msg.user.Name != "Ann" {
		t.Errorf("user = %+v", msg.user)
	}
	if string(msg.user.Extra["username"]) != `"ann"` {
		t.Errorf("Extra = %v, want username kept", msg.user.Extra)
	}
}

func TestForm_Cancel(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Light), true)
	m = formType(m, "half typed")

	_, cmd := formPress(t, m, "esc")
	msg, ok := runCmd(t, cmd).(formCancelledMsg)
	if !ok {
		t.Fatalf("esc should cancel, got %T", msg)
	}
	if !msg.standalone {
		t.Error("standalone flag should be carried on cancel")
	}
}

func TestForm_ViewShowsRequired(t *testing.T) {
	m := NewCreateForm(NewSheet(theme.Dark), false)
	m, _ = formPress(t, m, "ctrl+s")

	view := m.View()
	for _, want := range []string{"Add New User", "Name", "Email", "Phone", "required", "Add User", "Cancel"} {
		if !containsText(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestForm_ResubmitYieldsAgain(t *testing.T) {
	// Submissions are not deduplicated
	m := NewEditForm(NewSheet(theme.Light), ann)
	_, first := formPress(t, m, "ctrl+s")
	_, second := formPress(t, m, "ctrl+s")

	if _, ok := runCmd(t, first).(formSubmittedMsg); !ok {
		t.Error("first submit should yield formSubmittedMsg")
	}
	if _, ok := runCmd(t, second).(formSubmittedMsg); !ok {
		t.Error("second submit should yield formSubmittedMsg")
	}
}
