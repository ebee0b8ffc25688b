package mendeley

import (
	"testing"

	"github.com/gorewood/mendeley2bib/internal/mendeley/mendeleytest"
)

func newFixtureDB(t *testing.T, dir, name string) string {
	t.Helper()
	if mendeleytest.Suffix != DatabaseSuffix {
		t.Fatalf("fixture suffix %q, want %q", mendeleytest.Suffix, DatabaseSuffix)
	}
	return mendeleytest.NewDB(t, dir, name)
}
