package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/mendeley2bib/internal/output"
)

// FileName is the configuration file inside Dir.
const FileName = "config.yaml"

// Config holds the settings read from config.yaml. Zero values mean
// "not set"; command-line flags and environment variables override them.
type Config struct {
	// DataDir is the Mendeley Desktop data directory.
	DataDir string `yaml:"data_dir,omitempty"`
	// Database is the account name of the database to use.
	Database string `yaml:"database,omitempty"`
	// WriteKeys saves generated citation keys back to the database.
	WriteKeys bool `yaml:"write_keys,omitempty"`
	// Mapping is a path to a YAML entry type mapping.
	Mapping string `yaml:"mapping,omitempty"`
	// Color is auto, always or never.
	Color string `yaml:"color,omitempty"`
}

// Path returns the location of config.yaml, or "" when Dir is unknown.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// Load reads config.yaml from Dir. A missing file yields a zero Config.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file yields a zero
// Config; relative paths inside it are resolved against its directory.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if _, err := output.ParseColorMode(cfg.Color); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.DataDir = resolve(base, expandHome(cfg.DataDir))
	cfg.Mapping = resolve(base, expandHome(cfg.Mapping))
	return cfg, nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || (path[1] != '/' && path[1] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
