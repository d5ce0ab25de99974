// Package ui renders operation results as colored terminal output, plain
// text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/ui/json"
	"github.com/ideaprov/ideaprov/pkg/ui/terminal"
	"github.com/ideaprov/ideaprov/pkg/ui/text"
)

// Renderer is implemented by every output format. RenderResult accepts a
// *types.Result or a *manifest.Report.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// Options shared by all renderers
type Options struct {
	// ShowDiff prints before and after renderings of changed files
	ShowDiff bool
}

// NewRenderer creates the renderer for format, detecting the terminal when
// format is FormatAuto.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, opts)
		}
		return NewRenderer(FormatText, output, opts)
	case FormatTerminal:
		return terminal.New(output, opts.ShowDiff), nil
	case FormatText:
		return text.New(output, opts.ShowDiff), nil
	case FormatJSON:
		return json.New(output, opts.ShowDiff), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
