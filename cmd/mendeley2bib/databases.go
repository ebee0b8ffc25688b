package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// newDatabasesCmd creates the databases command.
func newDatabasesCmd() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "databases",
		Short: "List the Mendeley databases in the data directory",
		Long: `List the Mendeley Desktop databases found in the data directory.

Mendeley keeps one SQLite file per account, named
<account>@www.mendeley.com.sqlite. The account part is what --database
expects.

Examples:
  mendeley2bib databases                      # Default data directory
  mendeley2bib databases --data-dir ~/backup  # Another directory
  mendeley2bib databases --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDatabases(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "Mendeley Desktop data directory")
	return cmd
}

func runDatabases(cmd *cobra.Command, flags *sourceFlags) error {
	s, err := resolveSettings(cmd, *flags)
	printer := newPrinter(cmd, s.Config, false)
	if err != nil {
		printer.Error(err)
		return err
	}

	dbs, err := mendeley.Databases(s.DataDir)
	if err != nil {
		exitErr := classifyError("cannot list databases", err)
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		if dbs == nil {
			dbs = []mendeley.Database{}
		}
		return printer.Success(map[string]any{
			"data_dir":  s.DataDir,
			"databases": dbs,
		})
	}

	if len(dbs) == 0 {
		printer.Warn("no databases in %s", s.DataDir)
		return nil
	}
	rows := make([][]string, 0, len(dbs))
	for _, db := range dbs {
		rows = append(rows, []string{db.Name, db.Path})
	}
	printer.Table([]string{"NAME", "PATH"}, rows)
	return nil
}

