// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/Duckilicious/sggit/pkg/ui/report"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.CommandResult:
		return r.renderCommand(v)
	case *types.GenConfigResult:
		if len(v.FilesWritten) > 0 {
			for _, f := range v.FilesWritten {
				if _, err := fmt.Fprintf(r.output, "Wrote %s\n", f); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := io.WriteString(r.output, v.ConfigContent)
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderCommand(v *types.CommandResult) error {
	var b strings.Builder
	b.WriteString(report.Header(v))
	b.WriteString("\n")
	if v.Message != "" {
		b.WriteString(v.Message)
		b.WriteString("\n")
	}

	for _, f := range v.Files {
		fmt.Fprintf(&b, "  %-17s %s", report.Label(f.Status), f.RepoPath)
		if f.RealPath != "" {
			fmt.Fprintf(&b, "  %s", f.RealPath)
		}
		if f.Detail != "" {
			fmt.Fprintf(&b, "  (%s)", f.Detail)
		}
		b.WriteString("\n")
	}
	if len(v.Files) > 0 {
		b.WriteString(report.Summary(v))
		b.WriteString("\n")
	}

	if line := report.CommitLine(v.Commit); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.VCSStatus) > 0 {
		b.WriteString("Repository changes:\n")
		for _, s := range v.VCSStatus {
			b.WriteString("  ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
