// Package ui renders command results. The terminal renderer styles output
// with lipgloss, the text renderer prints aligned plain lines and the json
// renderer emits the result structs unchanged for scripts.
package ui

import (
	"io"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/ui/json"
	"github.com/Duckilicious/sggit/pkg/ui/terminal"
	"github.com/Duckilicious/sggit/pkg/ui/text"
)

// Renderer is implemented by every output format.
type Renderer interface {
	// RenderResult accepts *types.CommandResult and *types.GenConfigResult
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer builds the renderer for format writing to output. FormatAuto
// is resolved with DetectFormat.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	switch format {
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
