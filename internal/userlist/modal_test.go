package userlist

import (
	"testing"

	"github.com/muurk/userdeck/internal/directory"
)

func TestModal_ZeroIsClosed(t *testing.T) {
	var m Modal
	if m.IsOpen() || m.Kind() != ModalNone {
		t.Errorf("zero Modal should be closed, got %s", m.Kind())
	}
}

func TestModal_Variants(t *testing.T) {
	ann := directory.User{ID: directory.NumericID(1), Name: "Ann"}

	tests := []struct {
		name       string
		modal      Modal
		wantKind   ModalKind
		wantEdit   bool
		wantDelete bool
	}{
		{"none", NoModal(), ModalNone, false, false},
		{"creating", Creating(), ModalCreating, false, false},
		{"editing", Editing(ann), ModalEditing, true, false},
		{"confirming", ConfirmingDelete(ann.ID), ModalConfirmingDelete, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.modal.Kind() != tt.wantKind {
				t.Errorf("Kind() = %s, want %s", tt.modal.Kind(), tt.wantKind)
			}
			if _, ok := tt.modal.EditingUser(); ok != tt.wantEdit {
				t.Errorf("EditingUser() ok = %v, want %v", ok, tt.wantEdit)
			}
			if _, ok := tt.modal.DeleteTarget(); ok != tt.wantDelete {
				t.Errorf("DeleteTarget() ok = %v, want %v", ok, tt.wantDelete)
			}
			if tt.modal.IsEditing(ann.ID) != tt.wantEdit {
				t.Errorf("IsEditing(1) = %v, want %v", tt.modal.IsEditing(ann.ID), tt.wantEdit)
			}
		})
	}
}

func TestModal_EditingHoldsCopy(t *testing.T) {
	ann := directory.User{ID: directory.NumericID(1), Name: "Ann"}
	m := Editing(ann)
	ann.Name = "changed"

	user, _ := m.EditingUser()
	if user.Name != "Ann" {
		t.Errorf("EditingUser().Name = %s, want Ann", user.Name)
	}
	if m.IsEditing(directory.NumericID(2)) {
		t.Error("IsEditing(2) should be false")
	}
}
