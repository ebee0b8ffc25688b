package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"Never", "", true},
		{"purple", "", true},
	}

	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  ColorMode
		isTTY bool
		want  bool
	}{
		{name: "never on a terminal", mode: ColorNever, isTTY: true, want: false},
		{name: "always when piped", mode: ColorAlways, isTTY: false, want: true},
		{name: "auto on a terminal", mode: ColorAuto, isTTY: true, want: true},
		{name: "auto when piped", mode: ColorAuto, isTTY: false, want: false},
		{name: "empty follows the terminal", mode: "", isTTY: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColorMode(tt.mode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestColorNever_PlainDiagnostics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, ResolveColorMode(ColorNever, true)).WithStderr(&stderr)

	if printer.styles.Warning.GetForeground() != lipgloss.NewStyle().GetForeground() {
		t.Error("Warning style should have no foreground color when color=never")
	}

	printer.Warn("skipped %d entries", 2)
	printer.Error(NewUserError("no Mendeley database found", nil))
	if out := stderr.String(); containsANSI(out) {
		t.Errorf("color=never should produce no ANSI codes, got: %q", out)
	}
}

func TestColorAlways_KeepsStyles(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode(ColorAlways, false))

	if printer.styles.Error.GetForeground() == lipgloss.NewStyle().GetForeground() {
		t.Error("Error style should have foreground color when color=always")
	}
}

// containsANSI checks if a string contains ANSI escape sequences.
func containsANSI(s string) bool {
	for i := range len(s) - 1 {
		if s[i] == '\033' && s[i+1] == '[' {
			return true
		}
	}
	return false
}
