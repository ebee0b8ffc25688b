package mcp

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
	"github.com/gorewood/mendeley2bib/internal/mendeley/mendeleytest"
)

// --- Test helpers ---

// makeTestConfig creates a data dir holding one database per name.
func makeTestConfig(t *testing.T, names ...string) Config {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		mendeleytest.NewDB(t, dir, name)
	}
	return Config{DataDir: dir}
}

// --- Databases handler tests ---

func TestHandleDatabases(t *testing.T) {
	cfg := makeTestConfig(t, "bob@example.org", "alice@example.org")
	handler := handleDatabases(cfg)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DatabasesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Databases) != 2 {
		t.Fatalf("len(Databases) = %d, want 2", len(out.Databases))
	}
	if out.Databases[0].Name != "alice@example.org" {
		t.Errorf("Databases[0].Name = %q, want alice@example.org", out.Databases[0].Name)
	}
	if out.DataDir != cfg.DataDir {
		t.Errorf("DataDir = %q, want %q", out.DataDir, cfg.DataDir)
	}
}

func TestHandleDatabases_Empty(t *testing.T) {
	handler := handleDatabases(makeTestConfig(t))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DatabasesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Databases) != 0 {
		t.Errorf("len(Databases) = %d, want 0", len(out.Databases))
	}
}

// --- Folders and groups handler tests ---

func TestHandleFolders(t *testing.T) {
	handler := handleFolders(makeTestConfig(t, "alice@example.org"))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, LibraryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []FolderInfo{{0, "/"}, {12, "/Books"}, {10, "/Papers"}, {11, "/Papers/Go"}}
	if len(out.Folders) != len(want) {
		t.Fatalf("Folders = %v, want %v", out.Folders, want)
	}
	for i := range want {
		if out.Folders[i] != want[i] {
			t.Errorf("Folders[%d] = %v, want %v", i, out.Folders[i], want[i])
		}
	}
}

func TestHandleGroups(t *testing.T) {
	handler := handleGroups(makeTestConfig(t, "alice@example.org"))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, LibraryInput{Database: "alice@example.org"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Groups) != 2 || out.Groups[1] != (GroupInfo{ID: 5, Name: "Lab"}) {
		t.Errorf("Groups = %v", out.Groups)
	}
}

func TestHandleFolders_AmbiguousDatabase(t *testing.T) {
	handler := handleFolders(makeTestConfig(t, "alice@example.org", "bob@example.org"))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, LibraryInput{})
	var ambiguous *mendeley.AmbiguousDatabaseError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("err = %v, want AmbiguousDatabaseError", err)
	}
}

func TestHandleGroups_ConfiguredDefault(t *testing.T) {
	cfg := makeTestConfig(t, "alice@example.org", "bob@example.org")
	cfg.Database = "bob@example.org"
	handler := handleGroups(cfg)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, LibraryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Groups) != 2 {
		t.Errorf("len(Groups) = %d, want 2", len(out.Groups))
	}
}

// --- Convert handler tests ---

func TestHandleConvert_Folder(t *testing.T) {
	handler := handleConvert(makeTestConfig(t, "alice@example.org"))

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ConvertInput{Folder: "/Papers/Go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1", out.Count)
	}
	if !strings.HasPrefix(out.Text, "@article{Pike2020,\n") {
		t.Errorf("Text = %q, want Pike2020 article", out.Text)
	}
	want := []EntryPreview{{Key: "Pike2020", Type: "article", Title: "Concurrency in Go"}}
	if !reflect.DeepEqual(out.Preview, want) {
		t.Errorf("Preview = %+v, want %+v", out.Preview, want)
	}
	if len(out.Issues) != 1 || out.Issues[0].Kind != bib.IssueKeyNotPersisted {
		t.Errorf("Issues = %v, want one key-not-persisted", out.Issues)
	}
	if !strings.HasSuffix(out.Database, mendeley.DatabaseSuffix) {
		t.Errorf("Database = %q", out.Database)
	}
}

func TestHandleConvert_WriteKeys(t *testing.T) {
	cfg := makeTestConfig(t, "alice@example.org")
	handler := handleConvert(cfg)
	ctx := context.Background()

	_, out, err := handler(ctx, &mcp.CallToolRequest{}, ConvertInput{Starred: true, WriteKeys: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Issues) != 1 || out.Issues[0].Kind != bib.IssueKeyWritten {
		t.Fatalf("Issues = %v, want one key-written", out.Issues)
	}

	_, out, err = handler(ctx, &mcp.CallToolRequest{}, ConvertInput{Starred: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Issues) != 0 {
		t.Errorf("Issues after write-back = %v, want none", out.Issues)
	}
}

func TestHandleConvert_UnknownGroup(t *testing.T) {
	handler := handleConvert(makeTestConfig(t, "alice@example.org"))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ConvertInput{Group: "Physics"})
	if !errors.Is(err, mendeley.ErrGroupNotFound) {
		t.Errorf("err = %v, want ErrGroupNotFound", err)
	}
}

func TestHandleConvert_NoDatabase(t *testing.T) {
	handler := handleConvert(makeTestConfig(t))

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ConvertInput{})
	if !errors.Is(err, mendeley.ErrNoDatabase) {
		t.Errorf("err = %v, want ErrNoDatabase", err)
	}
}

// --- Server registration test ---

func TestNewServer_RegistersTools(t *testing.T) {
	// Should not panic
	server := NewServer("test-version", makeTestConfig(t))
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestToEntryPreviews(t *testing.T) {
	entries := []bib.Entry{
		{Tag: "book", Key: "Cafe2001", Fields: []bib.Field{{Key: "title", Value: `{Caf\'{e} \& Co}`}}},
		{Tag: "misc", Key: "Bad2002", Fields: []bib.Field{{Key: "title", Value: `{\nosuchcmd{}}`}}},
		{Tag: "misc", Key: "Untitled2003"},
	}

	got := toEntryPreviews(entries)
	want := []EntryPreview{
		{Key: "Cafe2001", Type: "book", Title: "Café & Co"},
		{Key: "Bad2002", Type: "misc", Title: `{\nosuchcmd{}}`},
		{Key: "Untitled2003", Type: "misc"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toEntryPreviews() = %+v, want %+v", got, want)
	}
}
