package bib

import (
	"maps"
	"slices"
	"sync"
)

// EntryType is the output entry tag and type-specific rules of one
// source type.
type EntryType struct {
	Tag   string
	Rules []Rule
}

func (e EntryType) clone() EntryType {
	return EntryType{Tag: e.Tag, Rules: slices.Clone(e.Rules)}
}

// Mapping is the entry type table. It is never modified after
// construction and is safe to share.
type Mapping struct {
	common []Rule
	types  map[string]EntryType
}

// NewMapping builds a mapping from common rules and per-type entries.
// The arguments are copied.
func NewMapping(common []Rule, types map[string]EntryType) Mapping {
	copied := make(map[string]EntryType, len(types))
	for name, entry := range types {
		copied[name] = entry.clone()
	}
	return Mapping{common: slices.Clone(common), types: copied}
}

// Lookup returns the entry tag of sourceType and its full rule list,
// common rules first. The slice is fresh on every call.
func (m Mapping) Lookup(sourceType string) (string, []Rule, bool) {
	entry, ok := m.types[sourceType]
	if !ok {
		return "", nil, false
	}
	rules := make([]Rule, 0, len(m.common)+len(entry.Rules))
	rules = append(rules, m.common...)
	rules = append(rules, entry.Rules...)
	return entry.Tag, rules, true
}

// SourceTypes lists the mapped source types, sorted.
func (m Mapping) SourceTypes() []string {
	return slices.Sorted(maps.Keys(m.types))
}

// Common returns a copy of the rules applied to every type.
func (m Mapping) Common() []Rule {
	return slices.Clone(m.common)
}

// Type returns a copy of the type-specific entry for sourceType.
func (m Mapping) Type(sourceType string) (EntryType, bool) {
	entry, ok := m.types[sourceType]
	if !ok {
		return EntryType{}, false
	}
	return entry.clone(), true
}

// DefaultMapping returns the built-in table for Mendeley document types.
var DefaultMapping = sync.OnceValue(func() Mapping {
	common := []Rule{
		computed("author", "authors"),
		Direct("year"),
		computed("month", "month"),
		Direct("title"),
		Direct("isbn"),
		Direct("issn"),
		Direct("doi"),
		Direct("note"),
	}

	periodical := func(rules ...Rule) []Rule {
		return append([]Rule{
			Direct("abstract"),
			Renamed("journal", "publication"),
			computed("keywords", "keywords"),
			computed("mendeley-tags", "tags"),
			Renamed("number", "issue"),
			computed("pages", "pages"),
		}, rules...)
	}

	return NewMapping(common, map[string]EntryType{
		"Book": {Tag: "book", Rules: []Rule{
			Renamed("address", "city"),
			Direct("edition"),
			computed("editor", "editors"),
			Direct("publisher"),
			Direct("volume"),
			computed("url", "url"),
		}},
		"BookSection": {Tag: "incollection", Rules: []Rule{
			Renamed("booktitle", "publication"),
			Renamed("address", "city"),
			Direct("edition"),
			computed("editor", "editors"),
			computed("pages", "pages"),
			Direct("publisher"),
			Direct("volume"),
			computed("url", "url"),
		}},
		"ComputerProgram": {Tag: "software", Rules: []Rule{
			Direct("abstract"),
			Direct("publisher"),
			computed("url", "url"),
		}},
		"ConferenceProceedings": {Tag: "inproceedings", Rules: []Rule{
			Direct("abstract"),
			Renamed("booktitle", "publication"),
			computed("keywords", "keywords"),
			computed("mendeley-tags", "tags"),
			computed("pages", "pages"),
			Direct("publisher"),
		}},
		"Generic": {Tag: "misc", Rules: []Rule{
			Direct("abstract"),
			Direct("publisher"),
			computed("url", "url"),
		}},
		"JournalArticle": {Tag: "article", Rules: periodical(
			Direct("publisher"),
			Direct("volume"),
		)},
		"MagazineArticle": {Tag: "article", Rules: periodical(
			Direct("volume"),
		)},
		"NewspaperArticle": {Tag: "article", Rules: periodical()},
		"Patent": {Tag: "patent", Rules: []Rule{
			Renamed("holder", "owner"),
			Renamed("number", "revisionNumber"),
			Direct("publisher"),
		}},
		"Report": {Tag: "report", Rules: []Rule{
			Direct("abstract"),
			Direct("institution"),
			Renamed("type", "userType"),
			computed("pages", "pages"),
			Direct("publisher"),
			computed("url", "url"),
		}},
		"Thesis": {Tag: "thesis", Rules: []Rule{
			Direct("department"),
			computed("type", "user-type"),
			Direct("institution"),
			Direct("publisher"),
		}},
		"WebPage": {Tag: "misc", Rules: []Rule{
			computed("howpublished", "howpublished-url"),
		}},
		"WorkingPaper": {Tag: "report", Rules: []Rule{
			Direct("abstract"),
			Direct("institution"),
			Renamed("type", "userType"),
			computed("url", "url"),
		}},
	})
})

// IsZero reports whether m is the zero Mapping, as opposed to one built
// by NewMapping.
func (m Mapping) IsZero() bool {
	return m.types == nil
}
