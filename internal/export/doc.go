// Package export runs a conversion against an open Mendeley library.
//
// It is the single entry point shared by the CLI and the MCP server:
//
//	result, err := export.Run(ctx, lib, export.Request{
//		Folder:    "/Papers/Go",
//		WriteKeys: true,
//		Reporter:  printer,
//	})
//
// Folder and group identifiers are resolved with Library.FolderID and
// Library.GroupID, so either a numeric id or a name works. An unknown
// identifier fails before any document is read.
//
// # Write-Back
//
// With WriteKeys set, derived citation keys are stored in the
// Documents table. The library must have been opened writable;
// otherwise Run refuses with mendeley.ErrReadOnly instead of reporting a
// failed write per entry.
package export
