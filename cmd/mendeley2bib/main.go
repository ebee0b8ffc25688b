// Package main provides the entry point for the mendeley2bib CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/config"
	"github.com/gorewood/mendeley2bib/internal/envfile"
	"github.com/gorewood/mendeley2bib/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Run without a subcommand it
// converts the selected database to biblatex on stdout.
func newRootCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "mendeley2bib",
		Short: "Export a Mendeley Desktop library as biblatex",
		Long: `mendeley2bib reads the local SQLite database of Mendeley Desktop and
writes its documents to stdout as biblatex entries.

Documents without a citation key get one made of the first author's last
name and the year (Smith2020). With --write-keys those keys are saved back
into the database so they stay stable; close Mendeley Desktop first.

Skipped documents and other problems are reported on stderr, so the
output can be redirected straight into a .bib file.

Examples:
  mendeley2bib > library.bib                 # Convert the only database
  mendeley2bib -d alice@example.org -s       # Starred documents of one account
  mendeley2bib -f /Papers/Go -k > go.bib     # One folder, saving new keys
  mendeley2bib --json | jq .count            # Structured result`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, flags)
		},
	}

	// Load .env.local (then .env) for settings that are awkward to export.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		color, _ := cmd.Flags().GetString("color")
		if _, err := output.ParseColorMode(color); err != nil {
			exitErr := output.NewUserError(err.Error(), err)
			output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(exitErr)
			return exitErr
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always or never")
	addSourceFlags(cmd, &flags.source)
	addConvertFlags(cmd, flags)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/mendeley2bib/env
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.LoadAll(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "library", Title: "Library Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newDatabasesCmd(), "library")
	addGroupedCommand(cmd, newFoldersCmd(), "library")
	addGroupedCommand(cmd, newGroupsCmd(), "library")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newMappingCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
