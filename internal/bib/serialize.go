package bib

import "strings"

// Field is one output key/value pair. Value is emitted verbatim.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry is one converted record.
type Entry struct {
	Tag    string  `json:"tag"`
	Key    string  `json:"key"`
	Fields []Field `json:"fields"`
}

// String renders the entry with Serialize.
func (e Entry) String() string {
	return Serialize(e.Tag, e.Key, e.Fields)
}

// Value returns the value of the first field named key.
func (e Entry) Value(key string) (string, bool) {
	for _, field := range e.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Serialize renders an entry block:
//
//	@tag{key,
//	    field = value,
//	    field = value
//	}
//
// Fields are written in the given order, duplicates included.
func Serialize(tag, key string, fields []Field) string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(tag)
	b.WriteString("{")
	b.WriteString(key)
	b.WriteString(",\n")
	for i, field := range fields {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("    ")
		b.WriteString(field.Key)
		b.WriteString(" = ")
		b.WriteString(field.Value)
	}
	b.WriteString("\n}\n")
	return b.String()
}
