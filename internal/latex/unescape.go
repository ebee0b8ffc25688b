package latex

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Unescape converts a literal produced by Escape back into Unicode text.
// The outer brace group, if present, is removed. Unknown commands yield
// ErrMalformed.
func Unescape(text string) (string, error) {
	if len(text) >= 2 && text[0] == '{' && text[len(text)-1] == '}' {
		text = text[1 : len(text)-1]
	}
	parser := &unescaper{src: text}
	decoded, err := parser.run()
	if err != nil {
		return "", err
	}
	return norm.NFC.String(decoded), nil
}

type unescaper struct {
	src string
	pos int
}

func (u *unescaper) run() (string, error) {
	var builder strings.Builder
	for u.pos < len(u.src) {
		c := u.src[u.pos]
		switch c {
		case '\\':
			decoded, err := u.command()
			if err != nil {
				return "", err
			}
			builder.WriteString(decoded)
		case '$':
			decoded, err := u.math()
			if err != nil {
				return "", err
			}
			builder.WriteRune(decoded)
		case '~':
			builder.WriteRune('\u00a0')
			u.pos++
		case '{', '}':
			// Plain grouping carries no text.
			u.pos++
		default:
			builder.WriteByte(c)
			u.pos++
		}
	}
	return builder.String(), nil
}

// command decodes a control sequence starting at the backslash.
func (u *unescaper) command() (string, error) {
	start := u.pos
	u.pos++ // backslash
	if u.pos >= len(u.src) {
		return "", fmt.Errorf("%w: trailing backslash", ErrMalformed)
	}

	name := u.commandName()
	if mark, ok := reverseAccents[name]; ok {
		arg, err := u.argument()
		if err != nil {
			return "", err
		}
		return arg + string(mark), nil
	}

	if r, ok := reverseSymbols[`\`+name]; ok {
		u.skipEmptyGroup()
		return string(r), nil
	}
	return "", fmt.Errorf("%w: unknown command %q", ErrMalformed, u.src[start:u.pos])
}

// commandName reads a run of letters, or a single non-letter character.
func (u *unescaper) commandName() string {
	start := u.pos
	if !isLetter(u.src[u.pos]) {
		u.pos++
		return u.src[start:u.pos]
	}
	for u.pos < len(u.src) && isLetter(u.src[u.pos]) {
		u.pos++
	}
	return u.src[start:u.pos]
}

// argument reads an accent argument: a brace group or a single character.
func (u *unescaper) argument() (string, error) {
	if u.pos >= len(u.src) {
		return "", fmt.Errorf("%w: accent without argument", ErrMalformed)
	}
	if u.src[u.pos] != '{' {
		u.pos++
		return u.src[u.pos-1 : u.pos], nil
	}

	depth := 0
	start := u.pos + 1
	for i := u.pos; i < len(u.src); i++ {
		switch u.src[i] {
		case '\\':
			i++ // escaped character never opens or closes a group
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				inner := &unescaper{src: u.src[start:i]}
				u.pos = i + 1
				return inner.run()
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced accent argument", ErrMalformed)
}

// math decodes a $...$ span produced for a single symbol.
func (u *unescaper) math() (rune, error) {
	end := strings.IndexByte(u.src[u.pos+1:], '$')
	if end < 0 {
		return 0, fmt.Errorf("%w: unterminated math", ErrMalformed)
	}
	span := u.src[u.pos : u.pos+end+2]
	u.pos += end + 2
	r, ok := reverseSymbols[span]
	if !ok {
		return 0, fmt.Errorf("%w: unknown math symbol %q", ErrMalformed, span)
	}
	return r, nil
}

func (u *unescaper) skipEmptyGroup() {
	if strings.HasPrefix(u.src[u.pos:], "{}") {
		u.pos += 2
	}
}
