package theme

import (
	"fmt"
	"strings"
	"sync"
)

// Mode is the colour scheme of the interface.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode is used when nothing else is configured
const DefaultMode = Light

// ParseMode parses "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("invalid theme %q (must be light or dark)", s)
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ToggleLabel is the text of the control that switches away from m.
func (m Mode) ToggleLabel() string {
	if m == Dark {
		return "Switch to Light Mode"
	}
	return "Switch to Dark Mode"
}

// Subscriber is called with the mode whenever it is applied.
type Subscriber func(Mode)

// Controller owns the process-wide theme. It starts at an initial mode and
// calls every subscriber on each change. There is no teardown: the
// controller lives as long as the interface does.
//
// Controller is safe for concurrent use. Subscribers run on the goroutine
// that changed the mode, outside the controller's lock.
type Controller struct {
	mu          sync.Mutex
	mode        Mode
	subscribers []Subscriber
}

// NewController creates a controller set to initial. An empty initial
// selects DefaultMode.
func NewController(initial Mode) *Controller {
	if initial == "" {
		initial = DefaultMode
	}
	return &Controller{mode: initial}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Palette returns the palette for the current mode.
func (c *Controller) Palette() Palette {
	return PaletteFor(c.Mode())
}

// Subscribe registers fn and applies the current mode to it immediately.
func (c *Controller) Subscribe(fn Subscriber) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	mode := c.mode
	c.mu.Unlock()

	fn(mode)
}

// Toggle flips between light and dark and returns the new mode.
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	next := c.mode.Opposite()
	c.mu.Unlock()

	c.Set(next)
	return next
}

// Set changes the mode. Subscribers are only notified when it differs from
// the current one.
func (c *Controller) Set(mode Mode) {
	c.mu.Lock()
	if mode == c.mode {
		c.mu.Unlock()
		return
	}
	c.mode = mode
	subs := append([]Subscriber(nil), c.subscribers...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(mode)
	}
}
