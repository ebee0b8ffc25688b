package mendeley

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DatabaseSuffix ends the file name of every per-account database.
const DatabaseSuffix = "@www.mendeley.com.sqlite"

// ErrNoDatabase is returned when no database matches a selection.
var ErrNoDatabase = errors.New("no Mendeley database found")

// AmbiguousDatabaseError is returned when a database must be chosen
// explicitly because several exist.
type AmbiguousDatabaseError struct {
	Names []string
}

func (e *AmbiguousDatabaseError) Error() string {
	return fmt.Sprintf("%d Mendeley databases found (%s); select one with --database",
		len(e.Names), strings.Join(e.Names, ", "))
}

// Database is a discovered database file.
type Database struct {
	// Name is the account part of the file name, usually an e-mail address.
	Name string `json:"name"`
	Path string `json:"path"`
}

// Databases lists the databases in dir, sorted by name.
func Databases(dir string) ([]Database, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading Mendeley data directory: %w", err)
	}

	var dbs []Database
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), DatabaseSuffix)
		if !ok || name == "" || entry.IsDir() {
			continue
		}
		dbs = append(dbs, Database{Name: name, Path: filepath.Join(dir, entry.Name())})
	}
	slices.SortFunc(dbs, func(a, b Database) int { return strings.Compare(a.Name, b.Name) })
	return dbs, nil
}

// Resolve picks the database called name in dir. An empty name selects
// the only database present.
func Resolve(dir, name string) (Database, error) {
	dbs, err := Databases(dir)
	if err != nil {
		return Database{}, err
	}

	if name != "" {
		for _, db := range dbs {
			if db.Name == name || db.Name+DatabaseSuffix == name {
				return db, nil
			}
		}
		return Database{}, fmt.Errorf("%w: %q in %s", ErrNoDatabase, name, dir)
	}

	switch len(dbs) {
	case 0:
		return Database{}, fmt.Errorf("%w in %s", ErrNoDatabase, dir)
	case 1:
		return dbs[0], nil
	default:
		names := make([]string, len(dbs))
		for i, db := range dbs {
			names[i] = db.Name
		}
		return Database{}, &AmbiguousDatabaseError{Names: names}
	}
}
