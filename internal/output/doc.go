// Package output provides structured output, diagnostics and exit codes
// for the mendeley2bib CLI.
//
// # Printer
//
// The Printer writes results to stdout and diagnostics to stderr:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr()).
//		WithVerbose(verbose)
//
//	printer.WriteText(result.Text)          // the bibliography, unchanged
//	printer.Warn("skipped %d entries", n)   // stderr
//	printer.Info("Converted %d entries", n) // stderr
//	printer.Debug("query took %s", d)       // stderr, only with --verbose
//
// Printer implements bib.Reporter, so conversion issues can be streamed
// to the terminal as they happen.
//
// # JSON Mode
//
// With --json, results are single JSON documents on stdout and errors
// are {"error": "message", "code": N}. Info, Debug and issue reports are
// suppressed because they are part of the structured result.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: completed run, even with zero entries
//	output.ExitUserError   // 1: bad flags, no database selectable
//	output.ExitSystemError // 2: database cannot be opened or read
package output
