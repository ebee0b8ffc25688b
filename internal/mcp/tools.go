package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/export"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// --- Shared types ---

// DatabaseInfo identifies a database file.
type DatabaseInfo struct {
	Name string `json:"name" jsonschema:"account name, usable as the database argument"`
	Path string `json:"path" jsonschema:"absolute path of the SQLite file"`
}

// FolderInfo is a folder in the library tree.
type FolderInfo struct {
	ID   int64  `json:"id"   jsonschema:"folder id"`
	Path string `json:"path" jsonschema:"folder path such as /Papers/Go"`
}

// GroupInfo is a Mendeley group.
type GroupInfo struct {
	ID   int64  `json:"id"   jsonschema:"group id"`
	Name string `json:"name" jsonschema:"group name"`
}

// LibraryInput selects a database.
type LibraryInput struct {
	Database string `json:"database,omitempty" jsonschema:"database account name; defaults to the configured or only database"`
}

// --- Databases tool ---

// DatabasesInput is the input for the databases tool (no parameters needed).
type DatabasesInput struct{}

// DatabasesOutput is the output for the databases tool.
type DatabasesOutput struct {
	DataDir   string         `json:"data_dir"  jsonschema:"directory that was searched"`
	Databases []DatabaseInfo `json:"databases" jsonschema:"databases sorted by name"`
}

func handleDatabases(cfg Config) mcp.ToolHandlerFor[DatabasesInput, DatabasesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ DatabasesInput) (*mcp.CallToolResult, DatabasesOutput, error) {
		dbs, err := mendeley.Databases(cfg.DataDir)
		if err != nil {
			return nil, DatabasesOutput{}, fmt.Errorf("listing databases: %w", err)
		}
		return nil, DatabasesOutput{DataDir: cfg.DataDir, Databases: toDatabaseInfos(dbs)}, nil
	}
}

// --- Folders tool ---

// FoldersOutput is the output for the folders tool.
type FoldersOutput struct {
	Folders []FolderInfo `json:"folders" jsonschema:"folders sorted by path, unfiled first"`
}

func handleFolders(cfg Config) mcp.ToolHandlerFor[LibraryInput, FoldersOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LibraryInput) (*mcp.CallToolResult, FoldersOutput, error) {
		lib, err := openLibrary(ctx, cfg, input.Database, false)
		if err != nil {
			return nil, FoldersOutput{}, err
		}
		defer lib.Close()

		folders, err := lib.Folders(ctx)
		if err != nil {
			return nil, FoldersOutput{}, fmt.Errorf("listing folders: %w", err)
		}
		return nil, FoldersOutput{Folders: toFolderInfos(folders)}, nil
	}
}

// --- Groups tool ---

// GroupsOutput is the output for the groups tool.
type GroupsOutput struct {
	Groups []GroupInfo `json:"groups" jsonschema:"groups sorted by name"`
}

func handleGroups(cfg Config) mcp.ToolHandlerFor[LibraryInput, GroupsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LibraryInput) (*mcp.CallToolResult, GroupsOutput, error) {
		lib, err := openLibrary(ctx, cfg, input.Database, false)
		if err != nil {
			return nil, GroupsOutput{}, err
		}
		defer lib.Close()

		groups, err := lib.Groups(ctx)
		if err != nil {
			return nil, GroupsOutput{}, fmt.Errorf("listing groups: %w", err)
		}
		return nil, GroupsOutput{Groups: toGroupInfos(groups)}, nil
	}
}

// --- Convert tool ---

// ConvertInput is the input for the convert tool.
type ConvertInput struct {
	Database  string `json:"database,omitempty"   jsonschema:"database account name; defaults to the configured or only database"`
	Folder    string `json:"folder,omitempty"     jsonschema:"folder id or path; 0 selects unfiled documents"`
	Group     string `json:"group,omitempty"      jsonschema:"group id or name"`
	Starred   bool   `json:"starred,omitempty"    jsonschema:"only favourite documents"`
	WriteKeys bool   `json:"write_keys,omitempty" jsonschema:"save derived citation keys to the database"`
}

// EntryPreview summarizes one converted entry in plain text.
type EntryPreview struct {
	Key   string `json:"key"             jsonschema:"citation key"`
	Type  string `json:"type"            jsonschema:"entry type such as article or book"`
	Title string `json:"title,omitempty" jsonschema:"title with LaTeX markup decoded"`
}

// ConvertOutput is the output for the convert tool.
type ConvertOutput struct {
	Database string         `json:"database"         jsonschema:"path of the converted database"`
	Count    int            `json:"count"            jsonschema:"number of entries written"`
	Text     string         `json:"text"             jsonschema:"biblatex source"`
	Preview  []EntryPreview `json:"preview"          jsonschema:"key, type and readable title of each entry"`
	Issues   []bib.Issue    `json:"issues,omitempty" jsonschema:"skipped records and other conversion notes"`
}

func handleConvert(cfg Config) mcp.ToolHandlerFor[ConvertInput, ConvertOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, ConvertOutput, error) {
		lib, err := openLibrary(ctx, cfg, input.Database, input.WriteKeys)
		if err != nil {
			return nil, ConvertOutput{}, err
		}
		defer lib.Close()

		result, err := export.Run(ctx, lib, export.Request{
			Folder:    input.Folder,
			Group:     input.Group,
			Starred:   input.Starred,
			WriteKeys: input.WriteKeys,
			Mapping:   cfg.Mapping,
		})
		if err != nil {
			return nil, ConvertOutput{}, fmt.Errorf("converting: %w", err)
		}

		out := ConvertOutput{
			Database: lib.Path(),
			Count:    result.Count,
			Text:     result.Text,
			Preview:  toEntryPreviews(result.Entries),
			Issues:   result.Issues,
		}
		return nil, out, nil
	}
}
