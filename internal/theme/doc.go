// Package theme holds the light/dark colour scheme shared by the terminal
// interface.
//
// A Controller is created once with the configured mode. Views subscribe to
// it and swap their lipgloss styles for the Palette of the mode they are
// handed:
//
//	ctrl := theme.NewController(theme.Light)
//	ctrl.Subscribe(func(m theme.Mode) {
//	    styles = newStyles(theme.PaletteFor(m))
//	})
//	ctrl.Toggle() // subscribers now see theme.Dark
package theme
