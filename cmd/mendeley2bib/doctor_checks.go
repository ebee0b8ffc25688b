package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/config"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// runConfigChecks checks config.yaml and the mapping file.
func runConfigChecks(s settings, configErr error) []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkConfigFile(configErr))
	if configErr == nil {
		checks = append(checks, checkMappingFile(s))
	}
	return checks
}

// checkConfigFile reports whether config.yaml loaded.
func checkConfigFile(configErr error) checkResult {
	path := config.Path()
	if configErr != nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkFail,
			Message: configErr.Error(),
			Hint:    "Fix or remove " + path,
		}
	}
	if path == "" {
		return checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: "no configuration directory (home directory unknown)",
			Hint:    "Set MENDELEY2BIB_CONFIG_HOME",
		}
	}
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkPass,
			Message: "none (" + path + "), using defaults",
		}
	}
	return checkResult{
		Name:    "Config File",
		Status:  checkPass,
		Message: path,
	}
}

// checkMappingFile parses the configured mapping, if any.
func checkMappingFile(s settings) checkResult {
	if s.Mapping == "" {
		return checkResult{
			Name:    "Mapping",
			Status:  checkPass,
			Message: fmt.Sprintf("built-in (%d types)", len(bib.DefaultMapping().SourceTypes())),
		}
	}
	m, err := s.mapping()
	if err != nil {
		return checkResult{
			Name:    "Mapping",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Compare with 'mendeley2bib mapping' output",
		}
	}
	return checkResult{
		Name:    "Mapping",
		Status:  checkPass,
		Message: fmt.Sprintf("%s (%d types)", s.Mapping, len(m.SourceTypes())),
	}
}

// runLibraryChecks checks the data directory and the selected database.
func runLibraryChecks(ctx context.Context, s settings) []checkResult {
	checks := make([]checkResult, 0, 3)
	if s.DBPath == "" {
		dirCheck := checkDataDir(s)
		checks = append(checks, dirCheck)
		if dirCheck.Status == checkFail {
			return checks
		}
		checks = append(checks, checkDatabases(s))
	}
	checks = append(checks, checkDatabaseReadable(ctx, s))
	return checks
}

// checkDataDir checks that the Mendeley data directory exists.
func checkDataDir(s settings) checkResult {
	info, err := os.Stat(s.DataDir)
	if err == nil && info.IsDir() {
		return checkResult{
			Name:    "Data Directory",
			Status:  checkPass,
			Message: s.DataDir,
		}
	}
	return checkResult{
		Name:    "Data Directory",
		Status:  checkFail,
		Message: s.DataDir + " not found",
		Hint:    "Pass --data-dir or set MENDELEY_DATA_DIR",
	}
}

// checkDatabases checks that a database can be selected without ambiguity.
func checkDatabases(s settings) checkResult {
	db, err := mendeley.Resolve(s.DataDir, s.Database)
	var ambiguous *mendeley.AmbiguousDatabaseError
	switch {
	case err == nil:
		return checkResult{
			Name:    "Database",
			Status:  checkPass,
			Message: db.Name,
		}
	case errors.As(err, &ambiguous):
		return checkResult{
			Name:    "Database",
			Status:  checkWarn,
			Message: err.Error(),
			Hint:    "Set database in config.yaml or MENDELEY2BIB_DATABASE",
		}
	default:
		return checkResult{
			Name:    "Database",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Run 'mendeley2bib databases' to see what is available",
		}
	}
}

// checkDatabaseReadable opens the selected database and counts documents.
func checkDatabaseReadable(ctx context.Context, s settings) checkResult {
	lib, err := s.open(ctx, false)
	if err != nil {
		return checkResult{
			Name:    "Readable",
			Status:  checkFail,
			Message: err.Error(),
		}
	}
	defer lib.Close()

	docs, err := lib.Documents(ctx, mendeley.Filter{})
	if err != nil {
		return checkResult{
			Name:    "Readable",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "The file may not be a Mendeley Desktop database",
		}
	}
	return checkResult{
		Name:    "Readable",
		Status:  checkPass,
		Message: fmt.Sprintf("%d documents in %s", len(docs), lib.Path()),
	}
}
