package mcp

import (
	"context"
	"fmt"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/latex"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// openLibrary opens the named database, or cfg.Database when name is empty.
func openLibrary(ctx context.Context, cfg Config, name string, writable bool) (*mendeley.Library, error) {
	if name == "" {
		name = cfg.Database
	}
	lib, err := mendeley.Open(ctx, cfg.DataDir, name, mendeley.Options{Writable: writable})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return lib, nil
}

func toDatabaseInfos(dbs []mendeley.Database) []DatabaseInfo {
	result := make([]DatabaseInfo, 0, len(dbs))
	for _, db := range dbs {
		result = append(result, DatabaseInfo{Name: db.Name, Path: db.Path})
	}
	return result
}

func toFolderInfos(folders []mendeley.Folder) []FolderInfo {
	result := make([]FolderInfo, 0, len(folders))
	for _, f := range folders {
		result = append(result, FolderInfo{ID: f.ID, Path: f.Path})
	}
	return result
}

func toGroupInfos(groups []mendeley.Group) []GroupInfo {
	result := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		result = append(result, GroupInfo{ID: g.ID, Name: g.Name})
	}
	return result
}

// toEntryPreviews decodes entry titles for display. A title that does not
// decode is shown as written in the bibliography.
func toEntryPreviews(entries []bib.Entry) []EntryPreview {
	previews := make([]EntryPreview, 0, len(entries))
	for _, entry := range entries {
		preview := EntryPreview{Key: entry.Key, Type: entry.Tag}
		if title, ok := entry.Value("title"); ok {
			preview.Title = title
			if plain, err := latex.Unescape(title); err == nil {
				preview.Title = plain
			}
		}
		previews = append(previews, preview)
	}
	return previews
}
