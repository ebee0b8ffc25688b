package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("MENDELEY2BIB_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "mendeley2bib" {
			t.Errorf("Dir() = %q, want path ending in 'mendeley2bib'", dir)
		}
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("MENDELEY2BIB_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("MENDELEY2BIB_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "mendeley2bib") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "mendeley2bib"))
	}
}

func TestMendeleyDir_Override(t *testing.T) {
	t.Setenv("MENDELEY_DATA_DIR", "/data/mendeley")
	if got := MendeleyDir(); got != "/data/mendeley" {
		t.Errorf("MendeleyDir() = %q, want %q", got, "/data/mendeley")
	}
}

func TestMendeleyDir_Default(t *testing.T) {
	t.Setenv("MENDELEY_DATA_DIR", "")
	if runtime.GOOS == "windows" {
		t.Skip("depends on LOCALAPPDATA")
	}

	dir := MendeleyDir()
	if !strings.HasSuffix(dir, "Mendeley Desktop") {
		t.Errorf("MendeleyDir() = %q, want path ending in 'Mendeley Desktop'", dir)
	}
}
