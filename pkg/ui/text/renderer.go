// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/manifest"
	"github.com/ideaprov/ideaprov/pkg/types"
)

// Renderer writes one line per result: "changed: msg" or "ok: msg"
type Renderer struct {
	output   io.Writer
	showDiff bool
}

func New(output io.Writer, showDiff bool) *Renderer {
	return &Renderer{output: output, showDiff: showDiff}
}

// Status is the line prefix for a result
func Status(res *types.Result) string {
	if res.Changed {
		return "changed"
	}
	return "ok"
}

func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Result:
		return r.result("", v)
	case *manifest.Report:
		changed := 0
		for _, s := range v.Steps {
			if err := r.result(s.Step, s.Result); err != nil {
				return err
			}
			if s.Result.Changed {
				changed++
			}
		}
		_, err := fmt.Fprintf(r.output, "%d steps, %d changed\n", len(v.Steps), changed)
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) result(step string, res *types.Result) error {
	line := res.Msg
	if step != "" {
		line = step + ": " + line
	}
	if _, err := fmt.Fprintf(r.output, "%s: %s\n", Status(res), line); err != nil {
		return err
	}
	if r.showDiff && res.Changed && res.Diff != nil {
		_, err := io.WriteString(r.output, Diff(res.Diff))
		return err
	}
	return nil
}

// Diff lays out before and after renderings one line each, marked with
// - and + respectively.
func Diff(d *types.Diff) string {
	var b strings.Builder
	b.WriteString("--- before\n")
	writeLines(&b, "-", d.Before)
	b.WriteString("+++ after\n")
	writeLines(&b, "+", d.After)
	return b.String()
}

func writeLines(b *strings.Builder, marker, content string) {
	if content == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", errors.UserMessage(err))
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
