package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/userdeck/internal/directory"
)

// Directory is the remote user directory the view talks to.
// *directory.Client satisfies it.
type Directory interface {
	List(ctx context.Context) ([]directory.User, error)
	Create(ctx context.Context, draft directory.User) (directory.User, error)
	Update(ctx context.Context, user directory.User) (directory.User, error)
	Delete(ctx context.Context, id directory.ID) error
}

// Completion messages for remote operations. Each carries enough of the
// request to be applied against whatever the list looks like on arrival.
type usersLoadedMsg struct {
	users []directory.User
	err   error
}

type userCreatedMsg struct {
	user directory.User
	err  error
}

type userUpdatedMsg struct {
	id   directory.ID // id the update was sent for
	user directory.User
	err  error
}

type userDeletedMsg struct {
	id  directory.ID
	err error
}

func loadUsersCmd(ctx context.Context, dir Directory) tea.Cmd {
	return func() tea.Msg {
		users, err := dir.List(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func createUserCmd(ctx context.Context, dir Directory, draft directory.User) tea.Cmd {
	return func() tea.Msg {
		created, err := dir.Create(ctx, draft)
		return userCreatedMsg{user: created, err: err}
	}
}

func updateUserCmd(ctx context.Context, dir Directory, user directory.User) tea.Cmd {
	return func() tea.Msg {
		updated, err := dir.Update(ctx, user)
		return userUpdatedMsg{id: user.ID, user: updated, err: err}
	}
}

func deleteUserCmd(ctx context.Context, dir Directory, id directory.ID) tea.Cmd {
	return func() tea.Msg {
		return userDeletedMsg{id: id, err: dir.Delete(ctx, id)}
	}
}
