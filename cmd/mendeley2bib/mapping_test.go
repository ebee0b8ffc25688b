package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gorewood/mendeley2bib/internal/bib"
)

func TestMappingCommand_RoundTrip(t *testing.T) {
	setupLibrary(t)

	stdout, _, err := execute(t, "mapping")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	parsed, err := bib.ParseMapping([]byte(stdout))
	if err != nil {
		t.Fatalf("mapping output should parse: %v\n%s", err, stdout)
	}
	if got, want := parsed.SourceTypes(), bib.DefaultMapping().SourceTypes(); !slices.Equal(got, want) {
		t.Errorf("SourceTypes() = %v, want %v", got, want)
	}
}

func TestMappingCommand_CustomFile(t *testing.T) {
	setupLibrary(t)
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte("extends: default\nremove: [Patent]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "mapping", "--json", "-m", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var file bib.MappingFile
	if err := json.Unmarshal([]byte(stdout), &file); err != nil {
		t.Fatalf("output should be valid JSON: %v\n%s", err, stdout)
	}
	if _, ok := file.Types["Patent"]; ok {
		t.Error("Patent should have been removed")
	}
	if file.Types["Book"].Entry != "book" {
		t.Errorf("Book entry = %q, want book", file.Types["Book"].Entry)
	}
}

func TestMappingCommand_Functions(t *testing.T) {
	setupLibrary(t)

	stdout, _, err := execute(t, "mapping", "--functions")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.Fields(stdout); !slices.Equal(got, bib.ComputeNames()) {
		t.Errorf("functions = %v, want %v", got, bib.ComputeNames())
	}
}
