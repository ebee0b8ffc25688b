package bib

import (
	"slices"
	"testing"
)

func ruleKeys(rules []Rule) []string {
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key()
	}
	return keys
}

func TestDefaultMapping_Lookup(t *testing.T) {
	tests := []struct {
		sourceType string
		wantTag    string
		wantKeys   []string
	}{
		{"JournalArticle", "article", []string{"author", "year", "month", "title", "isbn", "issn", "doi", "note",
			"abstract", "journal", "keywords", "mendeley-tags", "number", "pages", "publisher", "volume"}},
		{"Book", "book", []string{"author", "year", "month", "title", "isbn", "issn", "doi", "note",
			"address", "edition", "editor", "publisher", "volume", "url"}},
		{"ConferenceProceedings", "inproceedings", nil},
		{"Patent", "patent", nil},
		{"Thesis", "thesis", nil},
		{"WebPage", "misc", []string{"author", "year", "month", "title", "isbn", "issn", "doi", "note", "howpublished"}},
		{"BookSection", "incollection", nil},
		{"Report", "report", nil},
		{"ComputerProgram", "software", nil},
	}

	m := DefaultMapping()
	for _, tt := range tests {
		t.Run(tt.sourceType, func(t *testing.T) {
			tag, rules, ok := m.Lookup(tt.sourceType)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.sourceType)
			}
			if tag != tt.wantTag {
				t.Errorf("tag = %q, want %q", tag, tt.wantTag)
			}
			if tt.wantKeys != nil && !slices.Equal(ruleKeys(rules), tt.wantKeys) {
				t.Errorf("keys = %v, want %v", ruleKeys(rules), tt.wantKeys)
			}
		})
	}

	if _, _, ok := m.Lookup("Hologram"); ok {
		t.Error("Lookup(Hologram) should fail")
	}
}

func TestMapping_Immutable(t *testing.T) {
	common := []Rule{Direct("title")}
	types := map[string]EntryType{"Book": {Tag: "book", Rules: []Rule{Direct("publisher")}}}
	m := NewMapping(common, types)

	common[0] = Direct("changed")
	types["Book"].Rules[0] = Direct("changed")
	types["Misc"] = EntryType{Tag: "misc"}

	_, rules, _ := m.Lookup("Book")
	if got := ruleKeys(rules); !slices.Equal(got, []string{"title", "publisher"}) {
		t.Errorf("keys after caller mutation = %v", got)
	}
	if _, _, ok := m.Lookup("Misc"); ok {
		t.Error("type added to caller map leaked into mapping")
	}

	rules[0] = Direct("mutated")
	_, again, _ := m.Lookup("Book")
	if again[0].Key() != "title" {
		t.Errorf("Lookup result aliasing: first key = %q", again[0].Key())
	}
}

func TestMapping_Accessors(t *testing.T) {
	m := DefaultMapping()

	if !slices.IsSorted(m.SourceTypes()) {
		t.Errorf("SourceTypes() not sorted: %v", m.SourceTypes())
	}
	if len(m.Common()) != 8 {
		t.Errorf("len(Common()) = %d, want 8", len(m.Common()))
	}
	entry, ok := m.Type("Patent")
	if !ok || entry.Tag != "patent" {
		t.Fatalf("Type(Patent) = %+v, %v", entry, ok)
	}
	if got := ruleKeys(entry.Rules); !slices.Equal(got, []string{"holder", "number", "publisher"}) {
		t.Errorf("Patent rules = %v", got)
	}
}

func TestMapping_IsZero(t *testing.T) {
	if !(Mapping{}).IsZero() {
		t.Error("zero Mapping: IsZero() = false")
	}
	if NewMapping(nil, nil).IsZero() {
		t.Error("NewMapping(nil, nil): IsZero() = true")
	}
	if DefaultMapping().IsZero() {
		t.Error("DefaultMapping(): IsZero() = true")
	}
}
