// Package mendeley reads documents from a Mendeley Desktop SQLite
// database and supplies them to the converter as bib records.
package mendeley

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// Errors returned by Library.
var (
	ErrReadOnly         = errors.New("library opened read-only")
	ErrDocumentNotFound = errors.New("document not found")
	ErrFolderNotFound   = errors.New("folder not found")
	ErrGroupNotFound    = errors.New("group not found")
)

// Options control how a database is opened.
type Options struct {
	// Writable allows SetCitationKey. Mendeley Desktop should be closed
	// while writing.
	Writable bool
}

// Library is an open Mendeley database. It implements bib.Resolver and
// bib.KeyWriter.
type Library struct {
	db       *sql.DB
	path     string
	writable bool
}

// Open opens the database called name in dir. See Resolve.
func Open(ctx context.Context, dir, name string, opts Options) (*Library, error) {
	found, err := Resolve(dir, name)
	if err != nil {
		return nil, err
	}
	return OpenPath(ctx, found.Path, opts)
}

// OpenPath opens the database file at path. The file must exist.
func OpenPath(ctx context.Context, path string, opts Options) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening database: %s is a directory", path)
	}

	db, err := sql.Open("sqlite", dsn(path, opts.Writable))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// Writes must be a single serialized sequence.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return &Library{db: db, path: path, writable: opts.Writable}, nil
}

func dsn(path string, writable bool) string {
	query := url.Values{}
	query.Add("_pragma", "busy_timeout(5000)")
	if writable {
		query.Set("mode", "rw")
	} else {
		query.Set("mode", "ro")
	}
	u := url.URL{Scheme: "file", Path: path, RawQuery: query.Encode()}
	return u.String()
}

// Path returns the database file path.
func (l *Library) Path() string {
	return l.path
}

// Writable reports whether the library accepts citation key writes.
func (l *Library) Writable() bool {
	return l.writable
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// SetCitationKey stores key as the citation key of document id.
func (l *Library) SetCitationKey(ctx context.Context, id int64, key string) error {
	if !l.writable {
		return ErrReadOnly
	}
	res, err := l.db.ExecContext(ctx, `UPDATE Documents SET citationKey = ? WHERE id = ?`, key, id)
	if err != nil {
		return fmt.Errorf("saving citation key of document %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving citation key of document %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrDocumentNotFound, id)
	}
	return nil
}
