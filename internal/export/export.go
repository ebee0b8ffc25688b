package export

import (
	"context"
	"fmt"

	"github.com/gorewood/mendeley2bib/internal/bib"
	"github.com/gorewood/mendeley2bib/internal/mendeley"
)

// Request selects the documents to convert and how.
type Request struct {
	// Folder is a folder id or path. Empty means all folders; "0"
	// selects unfiled documents.
	Folder string
	// Group is a group id or name. Empty means all groups.
	Group string
	// Starred keeps favourite documents only.
	Starred bool
	// WriteKeys stores derived citation keys back into the library.
	WriteKeys bool
	// Mapping defaults to bib.DefaultMapping.
	Mapping  bib.Mapping
	Reporter bib.Reporter
}

// Run converts the documents selected by req.
func Run(ctx context.Context, lib *mendeley.Library, req Request) (bib.Result, error) {
	if req.WriteKeys && !lib.Writable() {
		return bib.Result{}, fmt.Errorf("writing citation keys: %w", mendeley.ErrReadOnly)
	}

	filter, err := ResolveFilter(ctx, lib, req)
	if err != nil {
		return bib.Result{}, err
	}

	records, err := lib.Documents(ctx, filter)
	if err != nil {
		return bib.Result{}, err
	}

	mapping := req.Mapping
	if mapping.IsZero() {
		mapping = bib.DefaultMapping()
	}
	keys := bib.KeyPolicy{WriteBack: req.WriteKeys, Writer: lib}
	conv := bib.NewConverter(mapping, lib, keys, req.Reporter)
	return conv.ConvertAll(ctx, records)
}

// ResolveFilter turns the identifiers in req into a document filter.
func ResolveFilter(ctx context.Context, lib *mendeley.Library, req Request) (mendeley.Filter, error) {
	filter := mendeley.Filter{FavouritesOnly: req.Starred}
	if req.Folder != "" {
		id, err := lib.FolderID(ctx, req.Folder)
		if err != nil {
			return filter, err
		}
		filter.Folder = &id
	}
	if req.Group != "" {
		id, err := lib.GroupID(ctx, req.Group)
		if err != nil {
			return filter, err
		}
		filter.Group = &id
	}
	return filter, nil
}
