// Package ui provides terminal output components for the userdeck CLI.
//
// The interactive interface lives in package tui. The components here follow
// a "print once and exit" pattern for scriptable subcommands such as
// "userdeck list" or "userdeck delete": they render styled output with
// Lipgloss but never take over the screen.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, warning and failure boxes with ordered details and
//     troubleshooting tips
//   - Printer: writes the above, renders the users table and JSON, and asks
//     y/N confirmations
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout, os.Stdin)
//	p.PrintHeader("Delete user", "userdeck delete 3",
//	    ui.Detail{Key: "Directory", Value: baseURL})
//	if !p.Confirm("DELETE USER", []string{"Ann <a@x.com>"}, "Delete this user?") {
//	    return nil
//	}
//
// # Logging Integration
//
// Logging is controlled by USERDECK_LOG_LEVEL or --log-level. When unset,
// zap logging is silent so that the styled output is displayed cleanly.
package ui
