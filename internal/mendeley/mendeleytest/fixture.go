// Package mendeleytest builds small Mendeley-shaped databases for tests.
package mendeleytest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// Suffix matches mendeley.DatabaseSuffix.
const Suffix = "@www.mendeley.com.sqlite"

// Schema is the subset of the Mendeley Desktop schema the converter reads.
const Schema = `
CREATE TABLE Documents (
	id INTEGER PRIMARY KEY,
	type TEXT,
	citationKey TEXT,
	title TEXT,
	year INTEGER,
	month INTEGER,
	publication TEXT,
	pages TEXT,
	favourite TEXT,
	deletionPending TEXT,
	abstract BLOB
);
CREATE TABLE DocumentContributors (
	id INTEGER PRIMARY KEY,
	documentId INTEGER,
	contribution TEXT,
	firstNames TEXT,
	lastName TEXT
);
CREATE TABLE DocumentTags (documentId INTEGER, tag TEXT);
CREATE TABLE DocumentKeywords (documentId INTEGER, keyword TEXT);
CREATE TABLE DocumentUrls (documentId INTEGER, position INTEGER, url TEXT);
CREATE TABLE DocumentFolders (documentId INTEGER, folderId INTEGER);
CREATE TABLE Folders (id INTEGER PRIMARY KEY, name TEXT, parentId INTEGER);
CREATE TABLE "Groups" (id INTEGER PRIMARY KEY, name TEXT);
CREATE TABLE RemoteDocuments (documentId INTEGER, groupId INTEGER);
`

// Data fills Schema with four documents, three folders and two groups.
const Data = `
INSERT INTO Documents (id, type, citationKey, title, year, month, publication, pages, favourite, deletionPending, abstract) VALUES
	(1, 'JournalArticle', NULL, 'Concurrency in Go', 2020, 3, 'J. Go', '1-10', 'true', 'false', NULL),
	(2, 'Book', 'Knuth1984', 'The TeXbook', 1984, NULL, NULL, NULL, 'false', 'false', X'4361666520C3A9'),
	(3, 'Thesis', NULL, 'Unfiled thesis', 2019, NULL, NULL, NULL, 'false', NULL, NULL),
	(4, 'Book', NULL, 'Deleted', 2000, NULL, NULL, NULL, 'true', 'true', NULL);

INSERT INTO DocumentContributors (documentId, contribution, firstNames, lastName) VALUES
	(1, 'DocumentAuthor', 'Rob', 'Pike'),
	(1, 'DocumentAuthor', NULL, 'Thompson'),
	(1, 'DocumentEditor', 'E.', 'Editor'),
	(2, 'DocumentAuthor', 'Donald E.', 'Knuth');

INSERT INTO DocumentTags VALUES (1, 'go'), (1, 'concurrency');
INSERT INTO DocumentKeywords VALUES (1, 'channels');
INSERT INTO DocumentUrls VALUES (2, 0, 'https://example.org/texbook'), (2, 1, 'https://example.org/mirror');

INSERT INTO Folders VALUES (10, 'Papers', -1), (11, 'Go', 10), (12, 'Books', 0);
INSERT INTO DocumentFolders VALUES (1, 11), (2, 12), (4, 12);

INSERT INTO "Groups" VALUES (0, ''), (5, 'Lab');
INSERT INTO RemoteDocuments VALUES (1, 5), (2, 0);
`

// NewDB creates a database named name+Suffix in dir, filled with
// Schema and Data, and returns its path.
func NewDB(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name+Suffix)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	_, err = db.Exec(Data)
	require.NoError(t, err)
	return path
}
