package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/config"
	"github.com/gorewood/mendeley2bib/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version    string         `json:"version"`
	ConfigPath string         `json:"config_path"`
	DataDir    string         `json:"data_dir"`
	Config     []checkResult  `json:"config"`
	Library    []checkResult  `json:"library"`
	Summary    *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	source sourceFlags
	quiet  bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and database access",
		Long: `Check that mendeley2bib can find and read a Mendeley database.

Runs a series of health checks across two categories:
  CONFIG  - config.yaml, environment and mapping file
  LIBRARY - data directory, database discovery and a test query

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  mendeley2bib doctor                     # Run all health checks
  mendeley2bib doctor -d bob@example.org  # Check one account
  mendeley2bib doctor --quiet             # Only show failures and warnings
  mendeley2bib doctor --json              # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	addSourceFlags(cmd, &flags.source)
	cmd.Flags().StringP("mapping", "m", "", "YAML entry type mapping file")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command. Failed checks are reported, not
// returned as errors.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	s, err := resolveSettings(cmd, flags.source)
	printer := newPrinter(cmd, s.Config, false)

	result := gatherDoctorChecks(cmd, s, err)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, flags.quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, s settings, configErr error) *doctorResult {
	result := &doctorResult{
		Version:    version,
		ConfigPath: config.Path(),
		DataDir:    s.DataDir,
		Config:     runConfigChecks(s, configErr),
		Library:    runLibraryChecks(cmd.Context(), s),
		Summary:    &doctorSummary{},
	}

	for _, check := range append(result.Config, result.Library...) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Print("mendeley2bib doctor %s\n\n", result.Version)
	printer.KeyValue("Config", result.ConfigPath)
	printer.KeyValue("Data directory", result.DataDir)

	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "LIBRARY", result.Library, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	// In quiet mode, skip sections with only passing checks
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Section(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
