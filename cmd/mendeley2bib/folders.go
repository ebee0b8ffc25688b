package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// newFoldersCmd creates the folders command.
func newFoldersCmd() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List the folders of a database",
		Long: `List the folders of a Mendeley database with their ids and paths.

Either column can be passed to --folder. Folder 0 ("/") selects documents
that are in no folder.

Examples:
  mendeley2bib folders
  mendeley2bib folders -d alice@example.org --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd, *flags, []string{"ID", "PATH"}, listFolders)
		},
	}
	addSourceFlags(cmd, flags)
	return cmd
}

// newGroupsCmd creates the groups command.
func newGroupsCmd() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the groups of a database",
		Long: `List the Mendeley groups of a database with their ids and names.

Either column can be passed to --group. Group 0 holds documents that
belong to no group.

Examples:
  mendeley2bib groups
  mendeley2bib groups --db-path ./backup.sqlite --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd, *flags, []string{"ID", "NAME"}, listGroups)
		},
	}
	addSourceFlags(cmd, flags)
	return cmd
}

// listFunc reads a listing from an open library. It returns the JSON
// document and the table rows.
type listFunc func(cmd *cobra.Command, lib *mendeley.Library) (any, [][]string, error)

// runListing opens the selected database read-only and prints one listing.
func runListing(cmd *cobra.Command, flags sourceFlags, headers []string, list listFunc) error {
	s, err := resolveSettings(cmd, flags)
	printer := newPrinter(cmd, s.Config, false)
	if err != nil {
		printer.Error(err)
		return err
	}

	lib, err := s.open(cmd.Context(), false)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer lib.Close()

	data, rows, err := list(cmd, lib)
	if err != nil {
		exitErr := classifyError("cannot read "+lib.Path(), err)
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(data)
	}
	printer.Table(headers, rows)
	return nil
}

func listFolders(cmd *cobra.Command, lib *mendeley.Library) (any, [][]string, error) {
	folders, err := lib.Folders(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, []string{strconv.FormatInt(f.ID, 10), f.Path})
	}
	return map[string]any{"folders": folders}, rows, nil
}

func listGroups(cmd *cobra.Command, lib *mendeley.Library) (any, [][]string, error) {
	groups, err := lib.Groups(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{strconv.FormatInt(g.ID, 10), g.Name})
	}
	return map[string]any{"groups": groups}, rows, nil
}
