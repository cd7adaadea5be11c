package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Other extensions
// pass through.
type GlamourRenderer struct {
	// Style is "auto" or a glamour style name/path
	Style string
	// Width wraps lines; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a markdown renderer with style auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output, falling back to the
// raw content when glamour fails.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
