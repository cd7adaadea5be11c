package ui

import (
	"io"
	"os"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer.
type Format int

const (
	// FormatAuto picks term or text from the output stream
	FormatAuto Format = iota
	// FormatTerminal is lipgloss styled output
	FormatTerminal
	// FormatText is plain, aligned text
	FormatText
	// FormatJSON is one indented JSON document per result
	FormatJSON
)

var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// accepted spellings, including the output.format values
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// String returns the flag spelling of the format.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat reads a --format or output.format value.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format %q, use auto, term, text or json", s).
		WithDetail("format", s)
}

type fdWriter interface {
	Fd() uintptr
}

// DetectFormat resolves FormatAuto for w: styled output only goes to a
// color capable terminal, and NO_COLOR always wins.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(fdWriter)
	if !ok {
		return FormatText
	}
	if fd := f.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
