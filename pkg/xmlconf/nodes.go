package xmlconf

import "github.com/beevik/etree"

// AttrName is the attribute most IDE option nodes are keyed by
const AttrName = "name"

// FindChild returns the first direct child with the given tag whose attr
// equals value. An empty attr matches on tag alone.
func FindChild(parent *etree.Element, tag, attr, value string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag != tag {
			continue
		}
		if attr == "" {
			return child
		}
		if a := child.SelectAttr(attr); a != nil && a.Value == value {
			return child
		}
	}
	return nil
}

// FindOrCreate returns the matching child, appending a new one carrying
// attr=value when there is none.
func FindOrCreate(parent *etree.Element, tag, attr, value string) *etree.Element {
	if child := FindChild(parent, tag, attr, value); child != nil {
		return child
	}
	child := parent.CreateElement(tag)
	if attr != "" {
		child.CreateAttr(attr, value)
	}
	return child
}

// Component finds or creates <component name="name">
func Component(parent *etree.Element, name string) *etree.Element {
	return FindOrCreate(parent, "component", AttrName, name)
}

// Path walks a chain of <component name=...> style steps, creating each
// missing step.
func Path(parent *etree.Element, steps ...Step) *etree.Element {
	elem := parent
	for _, s := range steps {
		elem = FindOrCreate(elem, s.Tag, s.Attr, s.Value)
	}
	return elem
}

// Step is one element of a Path
type Step struct {
	Tag   string
	Attr  string
	Value string
}

// Named is a Step keyed by the name attribute
func Named(tag, name string) Step {
	return Step{Tag: tag, Attr: AttrName, Value: name}
}

// Tag is a Step matched by tag alone
func Tag(tag string) Step {
	return Step{Tag: tag}
}

// SetAttr sets key=value on elem and reports whether the value changed
func SetAttr(elem *etree.Element, key, value string) bool {
	if a := elem.SelectAttr(key); a != nil && a.Value == value {
		return false
	}
	elem.CreateAttr(key, value)
	return true
}

// SetOption sets <option name="key" value="value"/> under elem
func SetOption(elem *etree.Element, key, value string) bool {
	created := FindChild(elem, "option", AttrName, key) == nil
	option := FindOrCreate(elem, "option", AttrName, key)
	return SetAttr(option, "value", value) || created
}

// SetVersion sets <version value="value"/> under elem. Adding a missing
// version node is not reported as a change; only rewriting an existing
// value is.
func SetVersion(elem *etree.Element, value string) bool {
	if FindChild(elem, "version", "", "") == nil {
		elem.CreateElement("version").CreateAttr("value", value)
		return false
	}
	return SetAttr(FindChild(elem, "version", "", ""), "value", value)
}

// Replace swaps old for replacement at the same position under parent
func Replace(parent, old, replacement *etree.Element) {
	idx := old.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, replacement)
}

// Any reports whether any of the change flags is set. Every setter must
// already have run, so callers evaluate them into a slice first.
func Any(changes ...bool) bool {
	for _, c := range changes {
		if c {
			return true
		}
	}
	return false
}
