// pkg/cobrax/topics/renderer_test.go
// TEST TYPE: Output Rendering Test
// DEPENDENCIES: None
// PURPOSE: Test help topic rendering

package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# Title", (&PlainRenderer{}).Render("# Title", ".md"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "dark", Width: 60}

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Manifests\n\nSome **bold** text.", ".md")
	assert.Contains(t, out, "Manifests")
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**")
}
