// Package terminal provides colored terminal output
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/manifest"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer prefixes every result with a colored status label
type Renderer struct {
	output   io.Writer
	showDiff bool
}

func New(output io.Writer, showDiff bool) *Renderer {
	return &Renderer{output: output, showDiff: showDiff}
}

var (
	changedPrefix = pterm.Prefix{Text: "CHANGED", Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)}
	okPrefix      = pterm.Prefix{Text: "OK", Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)}
	errorPrefix   = pterm.Prefix{Text: "ERROR", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
)

func label(p pterm.Prefix) string {
	return p.Style.Sprint(" " + p.Text + " ")
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
		_, err := fmt.Fprintln(r.output, mutedStyle.Render(fmt.Sprintf("%d steps, %d changed", len(v.Steps), changed)))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) result(step string, res *types.Result) error {
	prefix := okPrefix
	if res.Changed {
		prefix = changedPrefix
	}
	msg := res.Msg
	if step != "" {
		msg = headerStyle.Render(step) + " " + msg
	}
	if _, err := fmt.Fprintf(r.output, "%s %s\n", label(prefix), msg); err != nil {
		return err
	}
	if r.showDiff && res.Changed && res.Diff != nil {
		_, err := io.WriteString(r.output, renderDiff(res.Diff))
		return err
	}
	return nil
}

func renderDiff(d *types.Diff) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("--- before") + "\n")
	for _, line := range lines(d.Before) {
		b.WriteString(removedStyle.Render("-"+line) + "\n")
	}
	b.WriteString(headerStyle.Render("+++ after") + "\n")
	for _, line := range lines(d.After) {
		b.WriteString(addedStyle.Render("+"+line) + "\n")
	}
	return b.String()
}

func lines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %s\n",
		label(errorPrefix),
		pterm.Error.MessageStyle.Sprint(errors.UserMessage(err)))
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", label(pterm.Info.Prefix), msg)
	return err
}
