package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/theme"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Route names accepted for start_route
const (
	RouteDirectory  = "/"
	RouteCreateUser = "/create-user"
)

// DefaultSandboxPort is where "userdeck serve" listens unless told otherwise
const DefaultSandboxPort = 8080

// Settings represents the entire user configuration file.
// Every field can be overridden by a USERDECK_* environment variable.
type Settings struct {
	Version    int             `yaml:"version"`
	BaseURL    string          `yaml:"base_url" env:"BASE_URL"`       // Remote user directory
	Timeout    time.Duration   `yaml:"timeout" env:"TIMEOUT"`         // Per-request timeout; 0 disables
	Theme      string          `yaml:"theme" env:"THEME"`             // light or dark
	StartRoute string          `yaml:"start_route" env:"START_ROUTE"` // First route shown by the UI
	LogLevel   string          `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	LogFile    string          `yaml:"log_file,omitempty" env:"LOG_FILE"` // Where the UI writes logs
	Sandbox    SandboxSettings `yaml:"sandbox" envPrefix:"SANDBOX_"`
}

// SandboxSettings configures the local in-memory directory
type SandboxSettings struct {
	Port      int  `yaml:"port" env:"PORT"`
	Advertise bool `yaml:"advertise" env:"ADVERTISE"` // Announce over mDNS
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:    CurrentVersion,
		BaseURL:    directory.DefaultBaseURL,
		Timeout:    directory.DefaultTimeout,
		Theme:      string(theme.DefaultMode),
		StartRoute: RouteDirectory,
		Sandbox: SandboxSettings{
			Port: DefaultSandboxPort,
		},
	}
}

// ThemeMode returns the configured theme as a theme.Mode.
func (s *Settings) ThemeMode() (theme.Mode, error) {
	return theme.ParseMode(s.Theme)
}

// Validate checks every field and reports the first problem found.
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", s.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an http or https URL", s.BaseURL)
	}

	if s.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", s.Timeout)
	}

	if _, err := s.ThemeMode(); err != nil {
		return err
	}

	switch s.StartRoute {
	case RouteDirectory, RouteCreateUser:
	default:
		return fmt.Errorf("invalid start_route %q (must be %s or %s)", s.StartRoute, RouteDirectory, RouteCreateUser)
	}

	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q", s.LogLevel)
	}

	if s.Sandbox.Port < 0 || s.Sandbox.Port > 65535 {
		return fmt.Errorf("invalid sandbox.port %d", s.Sandbox.Port)
	}

	return nil
}
