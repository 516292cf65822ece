// Package tui implements the userdeck terminal interface.
//
// It is built on Bubble Tea and follows the Elm architecture: models hold
// all state, Update returns a new model plus commands, and View renders from
// state alone.
//
// # Routes
//
//   - "/": the users list (DirectoryModel). Fetches every user once when it
//     is first shown, then lets you add, edit and delete users through modal
//     forms and a delete confirmation.
//   - "/create-user": a standalone create form. It is not attached to the
//     list or the directory; submitting or cancelling returns to "/".
//
// Press g to switch routes and t to switch between light and dark mode.
//
// # Remote Operations
//
// Every directory call runs as a tea.Cmd and reports back with a completion
// message. Completions are applied in arrival order against the list as it
// is at that moment: an update for a user deleted in the meantime changes
// nothing, and a completion only closes the form it came from. Failures are
// logged and otherwise ignored; the form stays open so it can be submitted
// again.
//
// # Usage Example
//
//	client := directory.NewClient(directory.DefaultBaseURL)
//	app := tui.NewAppModel(tui.Options{
//	    Context:   ctx,
//	    Directory: client,
//	    Theme:     theme.NewController(theme.Light),
//	})
//
//	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Styling
//
// All models share one *Sheet. The theme controller rebuilds it on every
// change, so views pick up the new palette on their next render.
//
// # Thread Safety
//
// Bubble Tea runs Update and View on a single goroutine. Commands run
// concurrently but only return messages; they never touch model state.
package tui
