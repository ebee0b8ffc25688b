package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/config"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
	"github.com/gorewood/mendeley2bib/internal/output"
)

// Environment variables consulted after flags and before config.yaml.
const (
	envDataDir  = "MENDELEY_DATA_DIR"
	envDatabase = "MENDELEY2BIB_DATABASE"
	envMapping  = "MENDELEY2BIB_MAPPING"
)

// sourceFlags select a database. They are shared by every command that
// reads a library.
type sourceFlags struct {
	database string
	dbPath   string
	dataDir  string
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVarP(&flags.database, "database", "d", "", "Database account name (default: the only database)")
	cmd.Flags().StringVar(&flags.dbPath, "db-path", "", "Path to a database file, bypassing discovery")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "Mendeley Desktop data directory")
}

// source is a resolved database selection.
type source struct {
	DataDir  string `json:"data_dir"`
	Database string `json:"database,omitempty"`
	DBPath   string `json:"db_path,omitempty"`
}

// settings is everything a command needs after applying
// flag > environment > config.yaml > default.
type settings struct {
	source
	Mapping   string
	WriteKeys bool
	Config    config.Config
}

// resolveSettings loads config.yaml and applies the precedence rules.
// When config.yaml is invalid the error is returned along with settings
// resolved from flags, environment and defaults alone.
func resolveSettings(cmd *cobra.Command, flags sourceFlags) (settings, error) {
	cfg, cfgErr := config.Load()

	s := settings{Config: cfg, WriteKeys: cfg.WriteKeys}
	s.DataDir = firstNonEmpty(flags.dataDir, os.Getenv(envDataDir), cfg.DataDir, config.MendeleyDir())
	s.Database = firstNonEmpty(flags.database, os.Getenv(envDatabase), cfg.Database)
	s.DBPath = flags.dbPath
	s.Mapping = os.Getenv(envMapping)
	if s.Mapping == "" {
		s.Mapping = cfg.Mapping
	}
	if flag := cmd.Flags().Lookup("mapping"); flag != nil && flag.Changed {
		s.Mapping = flag.Value.String()
	}
	if flag := cmd.Flags().Lookup("write-keys"); flag != nil && flag.Changed {
		s.WriteKeys = flag.Value.String() == "true"
	}
	if cfgErr != nil {
		return s, output.NewUserError(cfgErr.Error(), cfgErr)
	}
	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// open opens the selected database. --db-path wins over discovery.
func (s settings) open(ctx context.Context, writable bool) (*mendeley.Library, error) {
	opts := mendeley.Options{Writable: writable}
	var (
		lib *mendeley.Library
		err error
	)
	if s.DBPath != "" {
		lib, err = mendeley.OpenPath(ctx, s.DBPath, opts)
	} else {
		lib, err = mendeley.Open(ctx, s.DataDir, s.Database, opts)
	}
	if err != nil {
		return nil, classifyError("cannot open database", err)
	}
	return lib, nil
}

// mapping loads the configured mapping file, or the default mapping.
func (s settings) mapping() (bib.Mapping, error) {
	if s.Mapping == "" {
		return bib.DefaultMapping(), nil
	}
	m, err := bib.LoadMappingFile(s.Mapping)
	if err != nil {
		return bib.Mapping{}, output.NewUserError(err.Error(), err)
	}
	return m, nil
}

// classifyError maps library errors to exit codes: selection mistakes are
// user errors, everything else is a system error.
func classifyError(what string, err error) *output.ExitError {
	var (
		exitErr   *output.ExitError
		ambiguous *mendeley.AmbiguousDatabaseError
	)
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &ambiguous),
		errors.Is(err, mendeley.ErrNoDatabase),
		errors.Is(err, mendeley.ErrFolderNotFound),
		errors.Is(err, mendeley.ErrGroupNotFound),
		errors.Is(err, fs.ErrNotExist):
		return output.NewUserError(err.Error(), err)
	default:
		return output.NewSystemError(what+": "+err.Error(), err)
	}
}

// newPrinter builds the printer every command uses: results on stdout,
// diagnostics on stderr.
func newPrinter(cmd *cobra.Command, cfg config.Config, verbose bool) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cfg)).
		WithStderr(cmd.ErrOrStderr()).
		WithVerbose(verbose)
}

// useColor resolves --color, then config.yaml, against TTY detection.
// The flag was validated by the root command.
func useColor(cmd *cobra.Command, cfg config.Config) bool {
	mode := output.ColorMode(cfg.Color)
	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Value.String() != "" {
		mode = output.ColorMode(flag.Value.String())
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}
