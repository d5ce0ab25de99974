// pkg/ui/json/renderer_test.go
// TEST TYPE: Output Rendering Test
// DEPENDENCIES: None (pure data transformation)
// PURPOSE: Test JSON rendering of results

package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/manifest"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRenderResultOmitsDiffByDefault(t *testing.T) {
	res := &types.Result{Changed: true, Msg: "m", Diff: &types.Diff{Before: "a", After: "b"}}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).RenderResult(res))
	out := decode(t, &buf)
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, "m", out["msg"])
	assert.NotContains(t, out, "diff")
	assert.NotNil(t, res.Diff, "caller's result must not be modified")

	buf.Reset()
	require.NoError(t, New(&buf, true).RenderResult(res))
	out = decode(t, &buf)
	assert.Equal(t, map[string]interface{}{"before": "a", "after": "b"}, out["diff"])
}

func TestRenderReport(t *testing.T) {
	report := &manifest.Report{
		Changed: true,
		Steps: []manifest.StepResult{
			{Step: "disable-plugins", Result: &types.Result{Changed: true, Msg: "Disabled plugins: a", Diff: &types.Diff{After: "a\n"}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).RenderResult(report))
	out := decode(t, &buf)
	assert.Equal(t, true, out["changed"])
	steps := out["steps"].([]interface{})
	require.Len(t, steps, 1)
	step := steps[0].(map[string]interface{})
	assert.Equal(t, "disable-plugins", step["step"])
	assert.NotContains(t, step["result"].(map[string]interface{}), "diff")
}

func TestRenderError(t *testing.T) {
	err := errors.Newf(errors.ErrPluginNotFound, "Unable to find plugin %q for build %q", "x", "IC-1")

	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).RenderError(err))
	out := decode(t, &buf)
	assert.Equal(t, true, out["failed"])
	assert.Equal(t, `Unable to find plugin "x" for build "IC-1"`, out["msg"])
	assert.Equal(t, string(errors.ErrPluginNotFound), out["code"])
}
