package mendeley

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// NoGroupName labels group 0, which holds documents outside any group.
const NoGroupName = "<no group>"

// Folder is a folder with its slash-separated path, e.g. "/Thesis/Ch1".
// Folder 0 is the root, "/", and stands for unfiled documents.
type Folder struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// Group is a Mendeley group.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Folders lists all folders sorted by path, starting with the root.
func (l *Library) Folders(ctx context.Context) ([]Folder, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, name, parentId FROM Folders`)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	type node struct {
		name   string
		parent int64
	}
	nodes := make(map[int64]node)
	for rows.Next() {
		var (
			id     int64
			name   sql.NullString
			parent sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &parent); err != nil {
			return nil, fmt.Errorf("reading folders: %w", err)
		}
		nodes[id] = node{name: name.String, parent: parent.Int64}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading folders: %w", err)
	}

	folders := []Folder{{ID: UnfiledFolder, Path: "/"}}
	for id := range nodes {
		var parts []string
		seen := make(map[int64]bool)
		for cur := id; ; {
			n, ok := nodes[cur]
			if !ok || seen[cur] {
				break
			}
			seen[cur] = true
			parts = append(parts, n.name)
			if n.parent <= 0 {
				break
			}
			cur = n.parent
		}
		slices.Reverse(parts)
		folders = append(folders, Folder{ID: id, Path: "/" + strings.Join(parts, "/")})
	}
	slices.SortFunc(folders, func(a, b Folder) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return folders, nil
}

// Groups lists all groups sorted by name, including group 0.
func (l *Library) Groups(ctx context.Context) ([]Group, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, name FROM "Groups" WHERE id != 0`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	groups := []Group{{ID: 0, Name: NoGroupName}}
	for rows.Next() {
		var (
			g    Group
			name sql.NullString
		)
		if err := rows.Scan(&g.ID, &name); err != nil {
			return nil, fmt.Errorf("reading groups: %w", err)
		}
		g.Name = name.String
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading groups: %w", err)
	}
	slices.SortFunc(groups, func(a, b Group) int { return strings.Compare(a.Name, b.Name) })
	return groups, nil
}

// FolderID resolves a folder by numeric id or by path. A path without
// the leading slash is accepted.
func (l *Library) FolderID(ctx context.Context, ident string) (int64, error) {
	folders, err := l.Folders(ctx)
	if err != nil {
		return 0, err
	}
	id, numeric := parseID(ident)
	for _, f := range folders {
		if numeric && f.ID == id {
			return f.ID, nil
		}
		if !numeric && (f.Path == ident || f.Path == "/"+ident) {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFolderNotFound, ident)
}

// GroupID resolves a group by numeric id or by name.
func (l *Library) GroupID(ctx context.Context, ident string) (int64, error) {
	groups, err := l.Groups(ctx)
	if err != nil {
		return 0, err
	}
	id, numeric := parseID(ident)
	for _, g := range groups {
		if numeric && g.ID == id {
			return g.ID, nil
		}
		if !numeric && g.Name == ident {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrGroupNotFound, ident)
}

func parseID(ident string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(ident), 10, 64)
	return id, err == nil
}
