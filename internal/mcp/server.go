// Package mcp provides a Model Context Protocol server for mendeley2bib.
// It exposes database discovery and conversion as MCP tools so an agent
// can pull BibTeX out of a local Mendeley library.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mendeley2bib/internal/bib"
)

// Config tells the server where to find databases.
type Config struct {
	// DataDir is the Mendeley Desktop data directory.
	DataDir string
	// Database is used when a tool call names none.
	Database string
	// Mapping is the entry-type mapping for convert. Zero means default.
	Mapping bib.Mapping
}

// NewServer creates an MCP server with all mendeley2bib tools registered.
func NewServer(version string, cfg Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mendeley2bib",
		Version: version,
	}, nil)
	registerTools(server, cfg)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// convertAnnotations marks convert as non-destructive: with write_keys it
// only fills empty citation keys.
func convertAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all mendeley2bib tools to the server.
func registerTools(server *mcp.Server, cfg Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "databases",
		Description: "List the Mendeley Desktop databases found in the data directory, by account name.",
		Annotations: readOnlyAnnotations(),
	}, handleDatabases(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "folders",
		Description: "List the folders of a Mendeley database with their ids and /parent/child paths. Folder 0 holds unfiled documents.",
		Annotations: readOnlyAnnotations(),
	}, handleFolders(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "groups",
		Description: "List the groups of a Mendeley database with their ids. Group 0 holds documents in no group.",
		Annotations: readOnlyAnnotations(),
	}, handleGroups(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert documents to biblatex. Filter by folder, group or starred. With write_keys, derived citation keys are saved to the database.",
		Annotations: convertAnnotations(),
	}, handleConvert(cfg))
}
