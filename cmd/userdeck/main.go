// Userdeck is a terminal client for a REST user directory.
//
// It lists users fetched from the directory and lets you create, edit and
// delete them, either in a full-screen interface or through scriptable
// subcommands. "userdeck serve" runs a local in-memory directory with the
// same API for offline use.
//
// Usage:
//
//	userdeck [command] [flags]
//
// Running without arguments launches the interactive interface.
// See 'userdeck --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/version"
)

// skipConfigAnnotation marks commands that must work without a valid config
const skipConfigAnnotation = "userdeck/skip-config"

// Persistent flags
var (
	configPath      string
	baseURL         string
	requestTimeout  time.Duration
	themeName       string
	discover        bool
	discoverTimeout time.Duration
	logFile         string
	logLevel        string
)

// settings is the effective configuration: defaults, file, environment,
// then flags
var settings *config.Settings

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", directory.ShortMessage(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "userdeck",
	Short: "User directory client",
	Long: `A terminal client for managing users in a REST user directory.

Lists users and lets you add, edit and delete them, with a light and a
dark theme. Talks to https://jsonplaceholder.typicode.com unless told
otherwise; run 'userdeck serve' for a local directory that keeps changes.

If no command is specified, the interactive interface will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interface when no subcommand provided
		return runUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default is the OS config dir, see 'userdeck config path')")
	flags.StringVar(&baseURL, "base-url", directory.DefaultBaseURL, "User directory base URL")
	flags.DurationVar(&requestTimeout, "timeout", directory.DefaultTimeout, "Per-request timeout (0 disables)")
	flags.StringVar(&themeName, "theme", "light", "Initial theme (light, dark)")
	flags.BoolVar(&discover, "discover", false, "Find a sandbox directory on the local network via mDNS")
	flags.DurationVar(&discoverTimeout, "discover-timeout", 3*time.Second, "How long --discover waits for an answer")
	flags.StringVar(&logFile, "log-file", "", "Log file for the interactive interface (default userdeck.log in the config dir)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty is silent")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "userdeck %s\n", version.Full())
	},
}

// loadSettings builds the effective configuration for every command
func loadSettings(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] != "" {
		return nil
	}

	var err error
	if configPath != "" {
		settings, err = config.LoadFrom(configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return err
	}

	applyFlags(cmd, settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// applyFlags copies explicitly set flags over s
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		s.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		s.Timeout = requestTimeout
	}
	if flags.Changed("theme") {
		s.Theme = themeName
	}
	if flags.Changed("log-file") {
		s.LogFile = logFile
	}
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
}

// setupLogging sends logs to stderr, or to the log file when the
// interface owns the terminal
func setupLogging(interactive bool) error {
	opts := logging.Options{Level: settings.LogLevel}
	if interactive {
		path := settings.LogFile
		if path == "" {
			var err error
			if path, err = config.DefaultLogPath(); err != nil {
				return err
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		opts.OutputPath = path
	}
	return logging.InitializeWithOptions(opts)
}

// newClient returns a directory client for the effective base URL,
// discovering a sandbox first when --discover is set
func newClient(ctx context.Context) (*directory.Client, error) {
	url := settings.BaseURL

	if discover {
		scanner := discovery.NewScanner()
		scanner.Timeout = discoverTimeout
		svc, err := scanner.FindFirst(ctx)
		if err != nil {
			return nil, fmt.Errorf("discovery failed: %w", err)
		}
		url = svc.BaseURL()
		logging.Info("Using discovered directory", zap.String("instance", svc.Instance), zap.String("url", url))
	}

	client := directory.NewClient(url)
	client.SetTimeout(settings.Timeout)
	return client, nil
}
