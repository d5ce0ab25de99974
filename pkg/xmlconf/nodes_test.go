// pkg/xmlconf/nodes_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test element lookup and change tracking helpers

package xmlconf

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot() *etree.Element {
	return etree.NewDocument().CreateElement(RootApplication)
}

func TestFindOrCreate(t *testing.T) {
	root := newRoot()

	first := Component(root, "ProjectManager")
	second := Component(root, "ProjectManager")
	other := Component(root, "ProjectJdkTable")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Len(t, root.ChildElements(), 2)
}

func TestFindChild_ByTagOnly(t *testing.T) {
	root := newRoot()
	assert.Nil(t, FindChild(root, "defaultProject", "", ""))

	created := FindOrCreate(root, "defaultProject", "", "")
	assert.Same(t, created, FindChild(root, "defaultProject", "", ""))
	assert.Empty(t, created.Attr)
}

func TestPath(t *testing.T) {
	root := newRoot()

	leaf := Path(root,
		Named("component", "ProjectManager"),
		Tag("defaultProject"),
		Named("component", "MavenImportPreferences"),
	)

	assert.Equal(t, "MavenImportPreferences", leaf.SelectAttrValue("name", ""))
	assert.Same(t, leaf, Path(root,
		Named("component", "ProjectManager"),
		Tag("defaultProject"),
		Named("component", "MavenImportPreferences"),
	))
}

func TestSetAttr(t *testing.T) {
	elem := newRoot()

	assert.True(t, SetAttr(elem, "version", "2"))
	assert.False(t, SetAttr(elem, "version", "2"))
	assert.True(t, SetAttr(elem, "version", "3"))
	assert.Equal(t, "3", elem.SelectAttrValue("version", ""))
	assert.Len(t, elem.Attr, 1)
}

func TestSetOption(t *testing.T) {
	elem := newRoot()

	assert.True(t, SetOption(elem, "PROJECT_PROFILE", "Project Default"))
	assert.False(t, SetOption(elem, "PROJECT_PROFILE", "Project Default"))
	assert.True(t, SetOption(elem, "PROJECT_PROFILE", "Strict"))

	option := FindChild(elem, "option", "name", "PROJECT_PROFILE")
	require.NotNil(t, option)
	assert.Equal(t, "Strict", option.SelectAttrValue("value", ""))
}

func TestSetVersion(t *testing.T) {
	elem := newRoot()

	assert.False(t, SetVersion(elem, "1.0"), "adding the node is not a change")
	assert.False(t, SetVersion(elem, "1.0"))
	assert.Len(t, elem.SelectElements("version"), 1)
	assert.Equal(t, "1.0", elem.SelectElement("version").SelectAttrValue("value", ""))

	assert.True(t, SetVersion(elem, "2.0"))
	assert.Equal(t, "2.0", elem.SelectElement("version").SelectAttrValue("value", ""))
}

func TestReplace_KeepsPosition(t *testing.T) {
	root := newRoot()
	root.CreateElement("a")
	old := root.CreateElement("b")
	root.CreateElement("c")

	replacement := etree.NewElement("B")
	Replace(root, old, replacement)

	var tags []string
	for _, e := range root.ChildElements() {
		tags = append(tags, e.Tag)
	}
	assert.Equal(t, []string{"a", "B", "c"}, tags)
}

func TestAny(t *testing.T) {
	assert.False(t, Any())
	assert.False(t, Any(false, false))
	assert.True(t, Any(false, true))
}
