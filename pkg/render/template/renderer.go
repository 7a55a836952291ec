package template

import (
	"io"
)

// TemplateRenderer is the seam report rendering relies on. Implementations
// render either named templates or inline content and optionally copy the
// output to writers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
