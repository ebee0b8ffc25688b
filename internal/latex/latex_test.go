package latex

import (
	"errors"
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty omits", input: "", want: ""},
		{name: "plain ascii", input: "Deep Learning", want: "{Deep Learning}"},
		{name: "reserved characters", input: `50% of C# & R_2 {x} $5`, want: `{50\% of C\# \& R\_2 \{x\} \$5}`},
		{name: "backslash", input: `a\b`, want: `{a\textbackslash{}b}`},
		{name: "tilde and caret", input: "~^", want: `{\textasciitilde{}\textasciicircum{}}`},
		{name: "acute accent", input: "café", want: `{caf\'{e}}`},
		{name: "umlaut", input: "Müller", want: `{M\"{u}ller}`},
		{name: "cedilla and caron", input: "Ça Šta", want: `{\c{C}a \v{S}ta}`},
		{name: "precomposed and combining agree", input: "é", want: `{\'{e}}`},
		{name: "stacked accents", input: "ǘ", want: `{\'{\"{u}}}`},
		{name: "special letters", input: "Straße Søren Łódź", want: `{Stra\ss{}e S\o{}ren \L{}\'{o}d\'{z}}`},
		{name: "dashes and quotes", input: "1–2 “x”", want: `{1\textendash{}2 \textquotedblleft{}x\textquotedblright{}}`},
		{name: "greek letters", input: "α-helix", want: `{$\alpha$-helix}`},
		{name: "non-breaking space", input: "p.\u00a05", want: "{p.~5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Escape(tt.input)
			if err != nil {
				t.Fatalf("Escape(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscape_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "invalid utf-8", input: "abc\xff", wantErr: ErrInvalidUTF8},
		{name: "cjk has no 7-bit form", input: "東京", wantErr: ErrUntranslatable},
		{name: "emoji has no 7-bit form", input: "ok 🎉", wantErr: ErrUntranslatable},
		{name: "control character", input: "a\x01b", wantErr: ErrUntranslatable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Escape(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Escape(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestUntranslatableError_Offset(t *testing.T) {
	_, err := Escape("ab東")
	var untranslatable *UntranslatableError
	if !errors.As(err, &untranslatable) {
		t.Fatalf("error = %v, want *UntranslatableError", err)
	}
	if untranslatable.Rune != '東' || untranslatable.Offset != 2 {
		t.Errorf("got rune %q at %d, want '東' at 2", untranslatable.Rune, untranslatable.Offset)
	}
	if !strings.Contains(err.Error(), "U+6771") {
		t.Errorf("Error() = %q, want code point", err.Error())
	}
}

func TestEscape_OutputIsSevenBit(t *testing.T) {
	inputs := []string{"Ærøskøbing", "Dvořák", "naïve façade", "Ångström", "Œuvre — “quoted” …", "± 3 × 4 ≤ ∞"}
	for _, input := range inputs {
		got, err := Escape(input)
		if err != nil {
			t.Fatalf("Escape(%q) error = %v", input, err)
		}
		for i := range len(got) {
			if got[i] >= 0x80 {
				t.Errorf("Escape(%q) = %q contains non-ASCII byte at %d", input, got, i)
				break
			}
		}
	}
}

func TestUnescape_RoundTrip(t *testing.T) {
	inputs := []string{
		"Deep Learning",
		"Müller and Søren",
		"Łódź, Kraków",
		"naïve façade",
		"Ångström units",
		"Straße",
		"α-helix and β-sheet",
		"pages 1–2 — see “notes”",
		"Ærøskøbing Œuvre",
		"3 × 4 ± 1",
		"Dvořák's Ça",
		"ǘ",
		"p.\u00a05",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			escaped, err := Escape(input)
			if err != nil {
				t.Fatalf("Escape(%q) error = %v", input, err)
			}
			got, err := Unescape(escaped)
			if err != nil {
				t.Fatalf("Unescape(%q) error = %v", escaped, err)
			}
			if got != input {
				t.Errorf("round trip of %q = %q (escaped %q)", input, got, escaped)
			}
		})
	}
}

func TestUnescape_ReservedCharacters(t *testing.T) {
	got, err := Unescape(`{50\% \& \{x\} a\textbackslash{}b \textasciitilde{}}`)
	if err != nil {
		t.Fatalf("Unescape error = %v", err)
	}
	if want := `50% & {x} a\b ~`; got != want {
		t.Errorf("Unescape = %q, want %q", got, want)
	}
}

func TestUnescape_Malformed(t *testing.T) {
	inputs := []string{`{\unknowncmd{}}`, `{trailing\}`, `{$\nosuch$}`, `{$\alpha}`, `{\'{e}`}
	for _, input := range inputs {
		if _, err := Unescape(input); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unescape(%q) error = %v, want ErrMalformed", input, err)
		}
	}
}

func TestEscapeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty omits", input: "", want: ""},
		{name: "plain url untouched", input: "https://example.org/a_b?x=1#frag", want: "{https://example.org/a_b?x=1#frag}"},
		{name: "space and braces encoded", input: "http://x.org/a b{c}", want: "{http://x.org/a%20b%7Bc%7D}"},
		{name: "non-ascii percent encoded", input: "http://x.org/é", want: "{http://x.org/%C3%A9}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeURL(tt.input); got != tt.want {
				t.Errorf("EscapeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestURLCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty omits", input: "", want: ""},
		{name: "plain url", input: "https://example.org/a_b", want: `{\url{https://example.org/a_b}}`},
		{
			name:  "percent and hash escaped",
			input: "https://example.org/a b#frag?q=50%",
			want:  `{\url{https://example.org/a\%20b\#frag?q=50\%}}`,
		},
		{name: "encoded bytes escaped", input: "http://x.org/é", want: `{\url{http://x.org/\%C3\%A9}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := URLCommand(tt.input); got != tt.want {
				t.Errorf("URLCommand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
