package mendeley

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gorewood/mendeley2bib/internal/bib"
)

// UnfiledFolder selects documents that are in no folder.
const UnfiledFolder int64 = 0

// Filter selects documents. Nil pointers mean "any".
type Filter struct {
	Folder         *int64
	Group          *int64
	FavouritesOnly bool
}

// Documents returns the documents matching f, ordered by id. Documents
// pending deletion are never returned.
func (l *Library) Documents(ctx context.Context, f Filter) ([]bib.Record, error) {
	var (
		where = []string{"COALESCE(d.deletionPending, 'false') != 'true'"}
		args  []any
	)
	switch {
	case f.Folder == nil:
	case *f.Folder == UnfiledFolder:
		where = append(where, "d.id NOT IN (SELECT documentId FROM DocumentFolders)")
	default:
		where = append(where, "d.id IN (SELECT documentId FROM DocumentFolders WHERE folderId = ?)")
		args = append(args, *f.Folder)
	}
	if f.Group != nil {
		where = append(where, "d.id IN (SELECT documentId FROM RemoteDocuments WHERE groupId = ?)")
		args = append(args, *f.Group)
	}
	if f.FavouritesOnly {
		where = append(where, "d.favourite = 'true'")
	}

	query := "SELECT d.* FROM Documents AS d WHERE " + strings.Join(where, " AND ") + " ORDER BY d.id"
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}
	return records, nil
}

// scanRecords turns each row into a record keyed by column name.
func scanRecords(rows *sql.Rows) ([]bib.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []bib.Record
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		cols := make(map[string]any, len(columns))
		for i, name := range columns {
			cols[name] = values[i]
		}
		records = append(records, bib.NewRecord(cols))
	}
	return records, rows.Err()
}

// Contributors returns the document's contributors with the given role.
func (l *Library) Contributors(ctx context.Context, id int64, role bib.Role) ([]bib.Contributor, error) {
	const query = `
		SELECT lastName, firstNames
		FROM DocumentContributors
		WHERE documentId = ? AND contribution = ?
		ORDER BY rowid`

	rows, err := l.db.QueryContext(ctx, query, id, string(role))
	if err != nil {
		return nil, fmt.Errorf("querying contributors: %w", err)
	}
	defer rows.Close()

	var people []bib.Contributor
	for rows.Next() {
		var last, first sql.NullString
		if err := rows.Scan(&last, &first); err != nil {
			return nil, fmt.Errorf("reading contributors: %w", err)
		}
		people = append(people, bib.Contributor{LastName: last.String, FirstNames: first.String})
	}
	return people, rows.Err()
}

// Tags returns the document's user tags.
func (l *Library) Tags(ctx context.Context, id int64) ([]string, error) {
	return l.list(ctx, `SELECT tag FROM DocumentTags WHERE documentId = ? ORDER BY rowid`, id)
}

// Keywords returns the document's keywords.
func (l *Library) Keywords(ctx context.Context, id int64) ([]string, error) {
	return l.list(ctx, `SELECT keyword FROM DocumentKeywords WHERE documentId = ? ORDER BY rowid`, id)
}

// URLs returns the document's URLs.
func (l *Library) URLs(ctx context.Context, id int64) ([]string, error) {
	return l.list(ctx, `SELECT url FROM DocumentUrls WHERE documentId = ? ORDER BY rowid`, id)
}

func (l *Library) list(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", query, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		if s.Valid {
			out = append(out, s.String)
		}
	}
	return out, rows.Err()
}
