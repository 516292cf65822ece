package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/userdeck/internal/config"
	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/theme"
	"github.com/muurk/userdeck/internal/tui"
	"github.com/muurk/userdeck/internal/ui"
)

// Command flags
var (
	startRoute   string
	outputFormat string
	userName     string
	userEmail    string
	userPhone    string
	assumeYes    bool
	scanTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// uiCmd launches the interactive interface
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive interface",
	Long: `Launch the full-screen user directory interface.

The "/" route lists users and lets you add, edit and delete them through
forms and a delete confirmation. The "/create-user" route shows a
standalone create form. Press g to switch routes, t or ctrl+t to switch
theme and q to quit; ctrl+t also works while typing in a form. Logs go to a file because the interface owns the terminal.`,
	Example: `  # Launch against the public demo directory
  userdeck ui
  # Or simply (ui is default):
  userdeck

  # Start in dark mode on the create form
  userdeck ui --theme dark --route /create-user

  # Use a sandbox found on the local network
  userdeck --discover`,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().StringVar(&startRoute, "route", "", "Route to show first (/ or /create-user)")
}

func runUI(cmd *cobra.Command, args []string) error {
	if err := setupLogging(true); err != nil {
		return err
	}

	route := settings.StartRoute
	if cmd.Flags().Changed("route") {
		route = startRoute
	}
	parsed, err := tui.ParseRoute(route)
	if err != nil {
		return err
	}

	mode, err := settings.ThemeMode()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	app := tui.NewAppModel(tui.Options{
		Context:    ctx,
		Directory:  client,
		Theme:      theme.NewController(mode),
		StartRoute: parsed,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

// listCmd prints every user
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `Fetch the full user list from the directory and print it.

The table format is meant for people; json prints the records exactly as
the directory returned them, including fields userdeck does not edit.`,
	Example: `  # Table output
  userdeck list

  # JSON output for scripting
  userdeck list --format json | jq '.[].email'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}
	switch outputFormat {
	case "table", "json":
	default:
		return fmt.Errorf("unknown format %q (must be table or json)", outputFormat)
	}

	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())

	users, err := client.List(cmd.Context())
	if err != nil {
		return printFailure(p, "Could not list users", err)
	}

	if outputFormat == "json" {
		return p.PrintJSON(users)
	}
	p.PrintUsers(users)
	p.Println(ui.MutedStyle.Render(fmt.Sprintf("  %d user(s) from %s", len(users), client.BaseURL)))
	return nil
}

// addCmd creates a user
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user",
	Long: `Create a user in the directory. Name, email and phone are all
required and must not be empty.`,
	Example: `  userdeck add --name "Ann Lee" --email ann@example.com --phone 555-0101`,
	Args:    cobra.NoArgs,
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().StringVar(&userName, "name", "", "Full name")
	addCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	addCmd.Flags().StringVar(&userPhone, "phone", "", "Phone number")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}

	draft := directory.NewDraft(userName, userEmail, userPhone)
	if missing := draft.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("required: %s", flagList(missing))
	}

	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())
	p.PrintHeader("Add user", cmd.CommandPath(), directoryDetail(client))

	created, err := client.Create(cmd.Context(), draft)
	if err != nil {
		return printFailure(p, "Could not create user", err)
	}

	p.PrintSuccess("User created", ui.UserDetails(created)...)
	return nil
}

// editCmd updates a user
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a user",
	Long: `Replace a user's name, email or phone.

The current record is fetched from the list first; fields you do not pass
keep their current values, and fields userdeck does not know about are
sent back unchanged.`,
	Example: `  # Change a phone number
  userdeck edit 1 --phone 555-0199`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&userName, "name", "", "New full name")
	editCmd.Flags().StringVar(&userEmail, "email", "", "New email address")
	editCmd.Flags().StringVar(&userPhone, "phone", "", "New phone number")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("email") && !flags.Changed("phone") {
		return fmt.Errorf("nothing to change: pass --name, --email or --phone")
	}

	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())
	p.PrintHeader("Edit user", cmd.CommandPath()+" "+args[0], directoryDetail(client))

	current, err := findUser(cmd, client, args[0])
	if err != nil {
		return printFailure(p, "Could not load user", err)
	}

	name, email, phone := current.Name, current.Email, current.Phone
	if flags.Changed("name") {
		name = userName
	}
	if flags.Changed("email") {
		email = userEmail
	}
	if flags.Changed("phone") {
		phone = userPhone
	}

	edited := current.WithContact(name, email, phone)
	if missing := edited.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("must not be empty: %s", flagList(missing))
	}

	updated, err := client.Update(cmd.Context(), edited)
	if err != nil {
		return printFailure(p, "Could not update user", err)
	}

	p.PrintSuccess("User updated", ui.UserDetails(updated)...)
	return nil
}

// deleteCmd deletes a user
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Long: `Delete a user from the directory.

Asks for confirmation first. Use --yes to skip the question in scripts;
without a terminal on stdin, --yes is required.`,
	Example: `  # Interactive confirmation
  userdeck delete 3

  # Scripted
  userdeck delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}

	id := directory.ParseID(args[0])
	if id.IsZero() {
		return fmt.Errorf("user id must not be blank")
	}

	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())
	p.PrintHeader("Delete user", cmd.CommandPath()+" "+id.String(), directoryDetail(client))

	if !assumeYes {
		if !ui.IsInteractive() {
			return fmt.Errorf("refusing to delete without --yes: stdin is not a terminal")
		}

		target := "User " + id.String()
		if u, err := findUser(cmd, client, args[0]); err == nil {
			target = fmt.Sprintf("%s <%s> (id %s)", u.Name, u.Email, u.ID)
		}
		if !p.Confirm("DELETE USER", []string{target}, "Are you sure you want to delete this user?") {
			return nil
		}
	}

	if err := client.Delete(cmd.Context(), id); err != nil {
		return printFailure(p, "Could not delete user", err)
	}

	p.PrintSuccess("User deleted", ui.Detail{Key: "ID", Value: id.String()})
	return nil
}

// scanCmd finds sandbox directories on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find sandbox directories on the network",
	Long: `Browse mDNS for directories started with 'userdeck serve --advertise'
and print their base URLs.`,
	Example: `  # Scan for 5 seconds (default)
  userdeck scan

  # Quick scan
  userdeck scan --scan-timeout 2s`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "scan-timeout", discovery.DefaultScanTimeout, "How long to listen for answers")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), cmd.InOrStdin())
	p.Println(fmt.Sprintf("Scanning for userdeck directories (timeout: %s)...", scanTimeout))
	p.Newline()

	services, err := discovery.Scan(cmd.Context(), scanTimeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		p.PrintWarning("No directories found",
			ui.Detail{Key: "Hint", Value: "Start one with 'userdeck serve --advertise'"},
			ui.Detail{Key: "Hint", Value: "mDNS needs UDP 5353 on the same network segment"},
		)
		return nil
	}

	for i, svc := range services {
		p.Println(fmt.Sprintf("%d. %s", i+1, svc.Instance))
		p.Println(fmt.Sprintf("   URL:      %s", svc.BaseURL()))
		if v := svc.GetMetadata("version"); v != "" {
			p.Println(fmt.Sprintf("   Version:  %s", v))
		}
		p.Newline()
	}
	p.Println("Use 'userdeck --base-url <url>' or 'userdeck --discover' to connect")
	return nil
}

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after applying the file, USERDECK_* environment variables and flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default configuration file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		written, err := config.CreateDefaultConfig(path)
		if err != nil {
			return err
		}
		if !written {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// findUser fetches the list and returns the record with the given id
func findUser(cmd *cobra.Command, client *directory.Client, raw string) (directory.User, error) {
	id := directory.ParseID(raw)

	users, err := client.List(cmd.Context())
	if err != nil {
		return directory.User{}, err
	}
	for _, u := range users {
		if u.ID.String() == id.String() {
			return u, nil
		}
	}
	return directory.User{}, fmt.Errorf("no user with id %s", id)
}

// directoryDetail names the directory a command talks to
func directoryDetail(client *directory.Client) ui.Detail {
	return ui.Detail{Key: "Directory", Value: client.BaseURL}
}

// printFailure shows a failure box and returns err for the exit status
func printFailure(p *ui.Printer, title string, err error) error {
	p.PrintError(title, fmt.Errorf("%s", directory.ShortMessage(err)), directory.Troubleshooting(err))
	return err
}

func flagList(names []string) string {
	flags := make([]string, len(names))
	for i, n := range names {
		flags[i] = "--" + n
	}
	return strings.Join(flags, ", ")
}
