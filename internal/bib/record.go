package bib

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column names every record is expected to carry.
const (
	ColumnID          = "id"
	ColumnType        = "type"
	ColumnCitationKey = "citationKey"
	ColumnYear        = "year"
	ColumnTitle       = "title"
)

// DecodeError reports a binary column that is not valid UTF-8.
type DecodeError struct {
	Column string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("column %q is not valid UTF-8", e.Column)
}

// Unwrap returns ErrFieldDecode for errors.Is support.
func (e *DecodeError) Unwrap() error {
	return ErrFieldDecode
}

// Record is one document row from the source, keyed by column name.
// The zero Record has no columns.
type Record struct {
	cols map[string]any
}

// NewRecord copies cols into a new Record. Integer kinds are widened to
// int64 and byte slices are copied, so later changes to cols or its
// slices do not reach the record.
func NewRecord(cols map[string]any) Record {
	copied := make(map[string]any, len(cols))
	for name, value := range cols {
		copied[name] = normalizeValue(value)
	}
	return Record{cols: copied}
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		return append([]byte(nil), v...)
	default:
		return v
	}
}

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	return Record{cols: maps.Clone(r.cols)}
}

// Columns returns the column names present in the record.
func (r Record) Columns() []string {
	names := make([]string, 0, len(r.cols))
	for name := range r.cols {
		names = append(names, name)
	}
	return names
}

// Has reports whether the column exists and is not nil.
func (r Record) Has(column string) bool {
	value, ok := r.cols[column]
	return ok && value != nil
}

// Text returns the column as text. The boolean is false when the column
// is missing, nil, empty or numerically zero. Byte slices are decoded as
// UTF-8; invalid bytes yield a *DecodeError.
func (r Record) Text(column string) (string, bool, error) {
	value, ok := r.cols[column]
	if !ok || value == nil {
		return "", false, nil
	}

	var text string
	switch v := value.(type) {
	case string:
		text = v
	case []byte:
		if !utf8.Valid(v) {
			return "", false, &DecodeError{Column: column}
		}
		text = string(v)
	case int64:
		if v == 0 {
			return "", false, nil
		}
		text = strconv.FormatInt(v, 10)
	case float64:
		if v == 0 {
			return "", false, nil
		}
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if !v {
			return "", false, nil
		}
		text = "true"
	default:
		text = fmt.Sprint(v)
	}
	return text, text != "", nil
}

// Int returns the column as an integer. The boolean is false when the
// column is missing, zero, or not an integral number.
func (r Record) Int(column string) (int64, bool) {
	switch v := r.cols[column].(type) {
	case int64:
		return v, v != 0
	case float64:
		if v == 0 || v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	default:
		return 0, false
	}
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// ID returns the record's identifier, or 0 when absent.
func (r Record) ID() int64 {
	id, _ := r.Int(ColumnID)
	return id
}

// Type returns the source type tag, or "" when absent or undecodable.
func (r Record) Type() string {
	return r.textOrEmpty(ColumnType)
}

// CitationKey returns the record's citation key, or "" when unset.
func (r Record) CitationKey() string {
	return r.textOrEmpty(ColumnCitationKey)
}

// Title returns the record's title, or "" when unset.
func (r Record) Title() string {
	return r.textOrEmpty(ColumnTitle)
}

// Year returns the year as text as stored, and whether it is set.
func (r Record) Year() (string, bool) {
	year, ok, err := r.Text(ColumnYear)
	if err != nil {
		return "", false
	}
	return year, ok
}

// WithCitationKey returns a copy of the record with the key set.
func (r Record) WithCitationKey(key string) Record {
	clone := r.Clone()
	if clone.cols == nil {
		clone.cols = make(map[string]any, 1)
	}
	clone.cols[ColumnCitationKey] = key
	return clone
}

// label names the record in messages: its key when set, else its title.
func (r Record) label() string {
	if key := r.CitationKey(); key != "" {
		return key
	}
	if title := r.Title(); title != "" {
		return title
	}
	return fmt.Sprintf("document %d", r.ID())
}

func (r Record) textOrEmpty(column string) string {
	text, _, err := r.Text(column)
	if err != nil {
		return ""
	}
	return text
}
