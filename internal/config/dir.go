// Package config locates mendeley2bib's configuration and the Mendeley
// Desktop data directory, and loads config.yaml.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the configuration directory.
const AppName = "mendeley2bib"

// Dir returns the mendeley2bib configuration directory.
//
// Resolution:
//   - $MENDELEY2BIB_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/mendeley2bib if set (respects XDG on any platform)
//   - %AppData%/mendeley2bib on Windows
//   - ~/.config/mendeley2bib on macOS and Linux
func Dir() string {
	if dir := os.Getenv("MENDELEY2BIB_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// MendeleyDir returns the directory holding Mendeley Desktop's databases.
//
// Resolution:
//   - $MENDELEY_DATA_DIR if set
//   - %LOCALAPPDATA%\Mendeley Ltd\Mendeley Desktop on Windows
//   - ~/Library/Application Support/Mendeley Desktop on macOS
//   - ~/.local/share/data/Mendeley Ltd./Mendeley Desktop elsewhere
func MendeleyDir() string {
	if dir := os.Getenv("MENDELEY_DATA_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "Mendeley Ltd", "Mendeley Desktop")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "Mendeley Desktop")
		}
		return ""
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "data", "Mendeley Ltd.", "Mendeley Desktop")
}
