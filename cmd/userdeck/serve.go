package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/sandbox"
	"github.com/muurk/userdeck/internal/ui"
)

// Serve flags
var (
	serveHost      string
	servePort      int
	serveAdvertise bool
	serveInstance  string
	serveEmpty     bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Address to bind (default all interfaces)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the directory over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (default userdeck-<hostname>)")
	serveCmd.Flags().BoolVar(&serveEmpty, "empty", false, "Start with no users instead of the sample set")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local sandbox directory",
	Long: `Run an in-memory user directory with the same REST API as
jsonplaceholder. Unlike the public demo, changes are kept until the
server stops, so created users can be edited and deleted afterwards.

Routes:
  GET    /users        List users
  POST   /users        Create a user
  GET    /users/{id}   Fetch a user
  PUT    /users/{id}   Replace a user
  DELETE /users/{id}   Delete a user
  GET    /healthz      Liveness check

Press Ctrl+C to stop.`,
	Example: `  # Serve on the default port
  userdeck serve

  # Serve and announce on the local network
  userdeck serve --advertise

  # Point the client at it from another terminal
  userdeck --base-url http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}
	if err := setupLogging(false); err != nil {
		return err
	}

	port := settings.Sandbox.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	advertise := settings.Sandbox.Advertise
	if cmd.Flags().Changed("advertise") {
		advertise = serveAdvertise
	}
	instance := serveInstance
	if instance == "" {
		instance = discovery.InstanceName()
	}

	cfg := sandbox.Config{
		Host:      serveHost,
		Port:      port,
		Advertise: advertise,
		Instance:  instance,
	}
	if serveEmpty {
		cfg.Seed = []directory.User{}
	}

	srv := sandbox.New(cfg)
	if err := srv.Listen(); err != nil {
		return err
	}

	details := []ui.Detail{
		{Key: "URL", Value: srv.URL()},
		{Key: "Users", Value: fmt.Sprintf("%d", srv.Store().Len())},
	}
	if advertise {
		details = append(details, ui.Detail{Key: "mDNS", Value: instance + " " + discovery.ServiceType})
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())
	p.PrintSuccess("Sandbox directory running", details...)
	p.Println(ui.MutedStyle.Render("  Press Ctrl+C to stop"))

	return srv.Run(cmd.Context())
}
