package output

import (
	"fmt"
	"io"
	"os"
)

// ColorMode is the value of --color and of color in config.yaml.
type ColorMode string

// Color modes. The empty mode behaves like ColorAuto.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s. The empty string is accepted as ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(s); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("color must be auto, always or never, got %q", s)
	}
}

// ResolveColorMode decides whether styled output is used:
// never and always override TTY detection, anything else defers to isTTY.
func ResolveColorMode(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal. Only an *os.File can be.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
