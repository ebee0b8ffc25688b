package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/export"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// convertFlags holds the root command's flags.
type convertFlags struct {
	source    sourceFlags
	folder    string
	group     string
	starred   bool
	writeKeys bool
	mapping   string
	verbose   bool
}

func addConvertFlags(cmd *cobra.Command, flags *convertFlags) {
	cmd.Flags().StringVarP(&flags.folder, "folder", "f", "", "Only documents in this folder (id or path; 0 = unfiled)")
	cmd.Flags().StringVarP(&flags.group, "group", "g", "", "Only documents in this group (id or name)")
	cmd.Flags().BoolVarP(&flags.starred, "starred", "s", false, "Only starred documents")
	cmd.Flags().BoolVarP(&flags.writeKeys, "write-keys", "k", false, "Save generated citation keys to the database")
	cmd.Flags().StringVarP(&flags.mapping, "mapping", "m", "", "YAML entry type mapping file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Report informational notes and progress")
}

// convertResult is the --json document.
type convertResult struct {
	Database string      `json:"database"`
	Count    int         `json:"count"`
	Warnings int         `json:"warnings"`
	Text     string      `json:"text"`
	Issues   []bib.Issue `json:"issues"`
}

// runConvert executes the root command.
func runConvert(cmd *cobra.Command, flags *convertFlags) error {
	s, err := resolveSettings(cmd, flags.source)
	printer := newPrinter(cmd, s.Config, flags.verbose)
	if err != nil {
		printer.Error(err)
		return err
	}

	mapping, err := s.mapping()
	if err != nil {
		printer.Error(err)
		return err
	}

	lib, err := s.open(cmd.Context(), s.WriteKeys)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer lib.Close()
	printer.Debug("reading %s", lib.Path())

	result, err := export.Run(cmd.Context(), lib, export.Request{
		Folder:    flags.folder,
		Group:     flags.group,
		Starred:   flags.starred,
		WriteKeys: s.WriteKeys,
		Mapping:   mapping,
		Reporter:  printer,
	})
	if err != nil {
		exitErr := classifyError("conversion failed", err)
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		issues := result.Issues
		if issues == nil {
			issues = []bib.Issue{}
		}
		return printer.WriteJSON(convertResult{
			Database: lib.Path(),
			Count:    result.Count,
			Warnings: result.Warnings(),
			Text:     result.Text,
			Issues:   issues,
		})
	}

	printer.WriteText(result.Text)
	printer.Info("Converted %d entries from database %s", result.Count, databaseName(lib.Path()))
	return nil
}

// databaseName strips the directory and the Mendeley suffix from path.
func databaseName(path string) string {
	base := filepath.Base(path)
	if name, ok := strings.CutSuffix(base, mendeley.DatabaseSuffix); ok && name != "" {
		return name
	}
	return base
}
