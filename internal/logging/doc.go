// Package logging provides structured logging for userdeck.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent unless a level is configured, either through the --log-level
// flag, the config file, or the USERDECK_LOG_LEVEL environment variable.
//
// # Output
//
// CLI subcommands log to stderr. The interactive interface owns the
// terminal, so it logs to a file instead (config key log_file):
//
//	logging.InitializeWithOptions(logging.Options{
//	    Level:      "debug",
//	    OutputPath: "/home/me/.config/userdeck/userdeck.log",
//	})
//	defer logging.Sync()
//
// # Directory Failures
//
// Every failed call to a user directory that the interface swallows is
// written through LogRemoteFailure:
//
//	logging.LogRemoteFailure("update", err, zap.String("user_id", id.String()))
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once initialized.
package logging
