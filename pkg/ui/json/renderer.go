// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/manifest"
	"github.com/ideaprov/ideaprov/pkg/types"
)

// Renderer writes one indented JSON document per call
type Renderer struct {
	encoder  *json.Encoder
	showDiff bool
}

func New(output io.Writer, showDiff bool) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder, showDiff: showDiff}
}

// RenderResult encodes a result as {changed, msg, diff}; diff is left out
// unless diffs were requested.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Result:
		return r.encoder.Encode(r.strip(v))
	case *manifest.Report:
		report := manifest.Report{Changed: v.Changed}
		for _, s := range v.Steps {
			report.Steps = append(report.Steps, manifest.StepResult{Step: s.Step, Result: r.strip(s.Result)})
		}
		return r.encoder.Encode(report)
	default:
		return r.encoder.Encode(result)
	}
}

func (r *Renderer) strip(res *types.Result) *types.Result {
	if res == nil || r.showDiff {
		return res
	}
	out := *res
	out.Diff = nil
	return &out
}

type errorDocument struct {
	Failed  bool                   `json:"failed"`
	Msg     string                 `json:"msg"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError encodes err as {failed, msg, code}
func (r *Renderer) RenderError(err error) error {
	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}
	return r.encoder.Encode(errorDocument{
		Failed:  true,
		Msg:     errors.UserMessage(err),
		Code:    errors.GetErrorCode(err),
		Details: details,
	})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
