package topics

// Renderer turns raw topic content into what the terminal shows. format is
// the topic file extension, e.g. ".md".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, _ string) string {
	return content
}
