package topics

// Renderer formats topic content for the terminal. ext is the topic file's
// extension, e.g. ".md".
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, ext string) string {
	return content
}
