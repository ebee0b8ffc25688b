// Package bib converts reference-manager records into biblatex entries.
//
// # Records
//
// A Record is a generic column-to-value container holding one document
// row. Values are strings, integers, floats, byte slices or nil. Typed
// accessors treat nil, empty strings and zero numbers as absent, and
// decode byte slices as UTF-8:
//
//	rec := bib.NewRecord(map[string]any{"id": int64(7), "type": "Book", "title": "Go"})
//	title, ok, err := rec.Text("title")
//
// # Mapping
//
// A Mapping assigns each source type an output entry tag and an ordered
// list of rules. Common rules are applied to every type, followed by the
// type's own rules. A rule is one of:
//
//   - Direct(column): key is the column name, value is the escaped column
//   - Renamed(key, column): as Direct with a different output key
//   - Computed(key, name, fn): fn builds the value and escapes it itself
//
// A rule that yields an empty value contributes nothing to the entry.
// Duplicate keys are kept in declaration order.
//
// # Citation keys
//
// Records without a citation key receive one derived from the first
// author's surname and the year (Smith2020). Derived keys are not checked
// for collisions. KeyPolicy can persist them through a KeyWriter.
//
// # Conversion
//
// Converter.ConvertAll turns a record set into concatenated .bib text,
// a count of converted entries and the issues met along the way. Records
// that cannot be converted are skipped with exactly one warning each.
//
//	conv := bib.NewConverter(bib.DefaultMapping(), library, bib.KeyPolicy{}, nil)
//	result, err := conv.ConvertAll(ctx, records)
package bib
