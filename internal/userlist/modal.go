package userlist

import (
	"github.com/muurk/userdeck/internal/directory"
)

// ModalKind identifies which modal, if any, is open over the list.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalCreating
	ModalEditing
	ModalConfirmingDelete
)

// String returns the modal kind name for logs.
func (k ModalKind) String() string {
	switch k {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	case ModalConfirmingDelete:
		return "confirming-delete"
	default:
		return "none"
	}
}

// Modal is the single modal state of the directory view. Only one modal can
// be open at a time; the zero value is "no modal".
//
// Construct values with NoModal, Creating, Editing or ConfirmingDelete.
type Modal struct {
	kind   ModalKind
	user   directory.User
	target directory.ID
}

// NoModal returns the closed state.
func NoModal() Modal {
	return Modal{}
}

// Creating returns the state with the create form open.
func Creating() Modal {
	return Modal{kind: ModalCreating}
}

// Editing returns the state with the edit form open for user.
func Editing(user directory.User) Modal {
	return Modal{kind: ModalEditing, user: user.Clone(), target: user.ID}
}

// ConfirmingDelete returns the state asking to confirm removal of id.
func ConfirmingDelete(id directory.ID) Modal {
	return Modal{kind: ModalConfirmingDelete, target: id}
}

// Kind returns the modal kind.
func (m Modal) Kind() ModalKind {
	return m.kind
}

// IsOpen reports whether any modal is showing.
func (m Modal) IsOpen() bool {
	return m.kind != ModalNone
}

// EditingUser returns the user being edited. ok is false unless the
// modal is an edit form.
func (m Modal) EditingUser() (user directory.User, ok bool) {
	if m.kind != ModalEditing {
		return directory.User{}, false
	}
	return m.user.Clone(), true
}

// IsEditing reports whether the edit form is open for id.
func (m Modal) IsEditing(id directory.ID) bool {
	return m.kind == ModalEditing && m.target == id
}

// DeleteTarget returns the id awaiting delete confirmation.
func (m Modal) DeleteTarget() (id directory.ID, ok bool) {
	if m.kind != ModalConfirmingDelete {
		return directory.ID{}, false
	}
	return m.target, true
}
