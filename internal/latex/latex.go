// Package latex converts Unicode text into the 7-bit literal form that
// BibTeX and biblatex read back as the same characters.
//
// Escape wraps its result in a brace group so the value can be written
// directly after "key = " in a .bib entry. Characters that LaTeX treats
// specially are replaced by commands, accented letters are decomposed
// into a base letter plus accent commands, and a small set of letters
// and symbols without a decomposition are looked up in a table. A rune
// that cannot be represented is reported as an error rather than dropped.
//
//	latex.Escape("Müller & Søn")  // {M\"{u}ller \& S\o{}n}
//	latex.Unescape(`{M\"{u}ller}`) // Müller
package latex

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// ErrUntranslatable is returned when a rune has no 7-bit LaTeX form.
var ErrUntranslatable = errors.New("no 7-bit LaTeX representation")

// ErrMalformed is returned by Unescape for input Escape cannot produce.
var ErrMalformed = errors.New("malformed LaTeX literal")

// UntranslatableError reports the first rune Escape could not convert.
type UntranslatableError struct {
	Rune   rune
	Offset int
}

// Error implements the error interface.
func (e *UntranslatableError) Error() string {
	return fmt.Sprintf("character %q (%U) at byte %d has no 7-bit LaTeX representation", e.Rune, e.Rune, e.Offset)
}

// Unwrap returns ErrUntranslatable for errors.Is support.
func (e *UntranslatableError) Unwrap() error {
	return ErrUntranslatable
}

// Escape converts text into a brace-delimited LaTeX literal.
// Empty input yields an empty string, which callers treat as "omit".
func Escape(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	body, err := Transliterate(text)
	if err != nil {
		return "", err
	}
	return "{" + body + "}", nil
}

// Transliterate converts text into 7-bit LaTeX without the outer group.
func Transliterate(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	// Compose first so "e" followed by U+0301 is handled like "é".
	composed := norm.NFC.String(text)

	var builder strings.Builder
	builder.Grow(len(composed))
	for offset, r := range composed {
		if err := writeRune(&builder, r); err != nil {
			return "", &UntranslatableError{Rune: r, Offset: offset}
		}
	}
	return builder.String(), nil
}

// writeRune appends the LaTeX form of a single rune.
func writeRune(builder *strings.Builder, r rune) error {
	if cmd, ok := symbols[r]; ok {
		builder.WriteString(cmd)
		return nil
	}
	if r < utf8.RuneSelf {
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			return ErrUntranslatable
		}
		builder.WriteRune(r)
		return nil
	}
	return writeAccented(builder, r)
}

// writeAccented decomposes r into a base letter and combining marks and
// renders the marks as nested accent commands, innermost first.
func writeAccented(builder *strings.Builder, r rune) error {
	decomposed := norm.NFD.String(string(r))
	base, size := utf8.DecodeRuneInString(decomposed)
	marks := decomposed[size:]
	if marks == "" {
		return ErrUntranslatable
	}

	inner, ok := baseForm(base)
	if !ok {
		return ErrUntranslatable
	}
	for _, mark := range marks {
		cmd, ok := accents[mark]
		if !ok {
			return ErrUntranslatable
		}
		inner = `\` + cmd + "{" + inner + "}"
	}
	builder.WriteString(inner)
	return nil
}

// baseForm returns the LaTeX form of an accent's base letter.
func baseForm(base rune) (string, bool) {
	if cmd, ok := symbols[base]; ok {
		return cmd, true
	}
	if base < utf8.RuneSelf && isLetter(byte(base)) {
		return string(base), true
	}
	return "", false
}

// EscapeURL wraps a URL in a brace group for verbatim fields such as url.
// Bytes that cannot appear literally (non-ASCII, control characters, space,
// braces, backslash) are percent-encoded. Empty input yields "".
func EscapeURL(raw string) string {
	if raw == "" {
		return ""
	}
	const hex = "0123456789ABCDEF"
	var builder strings.Builder
	builder.WriteByte('{')
	for i := range len(raw) {
		c := raw[i]
		if c >= utf8.RuneSelf || c <= ' ' || c == '{' || c == '}' || c == '\\' || c == 0x7f {
			builder.WriteByte('%')
			builder.WriteByte(hex[c>>4])
			builder.WriteByte(hex[c&0x0f])
			continue
		}
		builder.WriteByte(c)
	}
	builder.WriteByte('}')
	return builder.String()
}

// URLCommand wraps a URL in \url for ordinary (non-verbatim) fields such as
// howpublished. The URL is encoded as by EscapeURL, then % and # are
// escaped because they keep their special meaning inside a macro argument.
// Empty input yields "".
func URLCommand(raw string) string {
	if raw == "" {
		return ""
	}
	arg := strings.NewReplacer("%", `\%`, "#", `\#`).Replace(EscapeURL(raw))
	return `{\url` + arg + `}`
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
