// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/Duckilicious/sggit/pkg/ui/report"
	"github.com/Duckilicious/sggit/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides rich terminal output styled with lipgloss
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

func toneStyle(t report.Tone) string {
	switch t {
	case report.ToneGood:
		return "Success"
	case report.ToneAttention:
		return "Warning"
	case report.ToneBad:
		return "Error"
	default:
		return "Muted"
	}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.CommandResult:
		return r.write(r.command(v))
	case *types.GenConfigResult:
		if len(v.FilesWritten) > 0 {
			lines := make([]string, len(v.FilesWritten))
			for i, f := range v.FilesWritten {
				lines[i] = styles.Render("Success", "Wrote ") + styles.Render("FilePath", f)
			}
			return r.write(strings.Join(lines, "\n") + "\n")
		}
		return r.write(v.ConfigContent)
	default:
		return r.write(fmt.Sprintf("%+v\n", result))
	}
}

func (r *Renderer) command(v *types.CommandResult) string {
	var lines []string

	lines = append(lines, styles.Render("Header", report.Header(v)))
	if v.DryRun {
		lines = append(lines, styles.Render("DryRunBanner", "DRY RUN: nothing was copied"))
	}
	if v.Message != "" {
		lines = append(lines, styles.Render("Info", v.Message))
	}

	if len(v.Files) > 0 {
		rows := make([]string, len(v.Files))
		for i, f := range v.Files {
			row := styles.GetStyle("Status").Inherit(styles.GetStyle(toneStyle(report.ToneOf(f.Status)))).
				Render(report.Label(f.Status)) + " " + styles.Render("RepoPath", f.RepoPath)
			if f.RealPath != "" {
				row += "  " + styles.Render("FilePath", f.RealPath)
			}
			if f.Detail != "" {
				row += "  " + styles.Render("MutedItalic", f.Detail)
			}
			rows[i] = row
		}
		lines = append(lines, styles.GetStyle("Indent").Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
		lines = append(lines, styles.Render("Muted", report.Summary(v)))
	}

	if line := report.CommitLine(v.Commit); line != "" {
		style := "Muted"
		if v.Commit.Status == types.CommitCreated {
			style = "CommitID"
		}
		lines = append(lines, styles.Render(style, line))
	}

	if len(v.VCSStatus) > 0 {
		lines = append(lines, styles.Render("Header", "Repository changes"))
		rows := make([]string, len(v.VCSStatus))
		for i, s := range v.VCSStatus {
			rows[i] = styles.Render("Warning", s)
		}
		lines = append(lines, styles.GetStyle("Indent").Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return strings.Join(lines, "\n") + "\n"
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	out := styles.Render("Error", "Error:") + " " + err.Error() + "\n"
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out += styles.GetStyle("Indent").Render(styles.Render("Muted", fmt.Sprintf("%s: %v", k, details[k]))) + "\n"
	}
	return r.write(out)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(styles.Render("Info", msg) + "\n")
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}
