package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/output"
)

// newMappingCmd creates the mapping command.
func newMappingCmd() *cobra.Command {
	var functions bool

	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Print the effective entry type mapping",
		Long: `Print the mapping from Mendeley document types to biblatex entries as
YAML.

The output is a complete mapping file: save it, edit it and pass it back
with --mapping, or start a smaller file with "extends: default" and list
only the types to change.

Examples:
  mendeley2bib mapping > mapping.yaml          # Dump the built-in mapping
  mendeley2bib mapping -m mapping.yaml         # Check a custom mapping
  mendeley2bib mapping --functions             # Names usable as compute:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMapping(cmd, functions)
		},
	}
	cmd.Flags().StringP("mapping", "m", "", "YAML entry type mapping file")
	cmd.Flags().BoolVar(&functions, "functions", false, "List the computed field functions instead")
	return cmd
}

func runMapping(cmd *cobra.Command, functions bool) error {
	s, err := resolveSettings(cmd, sourceFlags{})
	printer := newPrinter(cmd, s.Config, false)
	if err != nil {
		printer.Error(err)
		return err
	}

	if functions {
		names := bib.ComputeNames()
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{"functions": names})
		}
		for _, name := range names {
			printer.Println(name)
		}
		return nil
	}

	mapping, err := s.mapping()
	if err != nil {
		printer.Error(err)
		return err
	}

	file := bib.FileOf(mapping)
	if printer.IsJSON() {
		return printer.WriteJSON(file)
	}
	data, err := bib.MarshalMapping(mapping)
	if err != nil {
		exitErr := output.NewSystemError("cannot encode mapping", err)
		printer.Error(exitErr)
		return exitErr
	}
	printer.WriteText(string(data))
	return nil
}
