// Package config provides user configuration management for userdeck.
//
// Settings live in a YAML file and can be overridden by USERDECK_*
// environment variables; command-line flags are applied on top by the CLI.
// Precedence, highest first: flags, environment, file, defaults.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/userdeck/config.yaml or $HOME/.config/userdeck/config.yaml
//   - macOS: $HOME/.config/userdeck/config.yaml
//   - Windows: %LOCALAPPDATA%\userdeck\config.yaml
//
// # Keys
//
//	version: 1
//	base_url: https://jsonplaceholder.typicode.com   # USERDECK_BASE_URL
//	timeout: 10s                                     # USERDECK_TIMEOUT, 0 disables
//	theme: light                                     # USERDECK_THEME
//	start_route: /                                   # USERDECK_START_ROUTE
//	log_level: ""                                    # USERDECK_LOG_LEVEL
//	log_file: ""                                     # USERDECK_LOG_FILE
//	sandbox:
//	  port: 8080                                     # USERDECK_SANDBOX_PORT
//	  advertise: false                               # USERDECK_SANDBOX_ADVERTISE
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := directory.NewClient(settings.BaseURL)
//	client.SetTimeout(settings.Timeout)
//
// # Thread Safety
//
// Save is protected by a mutex and writes atomically through a temporary file.
package config
