package ideconfig

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/ideaprov/ideaprov/pkg/xmlconf"
)

const (
	componentJDKTable = "ProjectJdkTable"
	jdkTypeJava       = "JavaSDK"
	annotationsURL    = "jar://$APPLICATION_HOME_DIR$/lib/jdkAnnotations.jar!/"
)

// ConfigureJDK adds or refreshes the JDK called name, installed at home, in
// jdk.table.xml.
func (c *Configurator) ConfigureJDK(ctx context.Context, target Target, name, home string) (*types.Result, error) {
	defer logging.LogOperationStart(c.logger, "configure-jdk")()

	doc, err := xmlconf.Load(c.fs, target.layout().JDKTablePath(), target.loadOptions())
	if err != nil {
		return nil, err
	}

	newJDK, err := c.buildJDK(ctx, name, home)
	if err != nil {
		return nil, err
	}

	table := xmlconf.Component(doc.Root, componentJDKTable)

	changed := true
	if old := findJDK(table, name); old == nil {
		table.AddChild(newJDK)
	} else {
		changed = xmlconf.Render(old) != xmlconf.Render(newJDK)
		if changed {
			xmlconf.Replace(table, old, newJDK)
		}
	}

	c.logger.Debug().Str("jdk", name).Str("home", home).Bool("changed", changed).Msg("JDK entry compared")

	return c.finish(doc, target, changed,
		fmt.Sprintf("JDK %s has been configured", name),
		fmt.Sprintf("JDK %s was already configured", name))
}

// JDKHome looks up the homePath of the JDK called name in jdk.table.xml
func (c *Configurator) JDKHome(target Target, name string) (string, error) {
	doc, err := xmlconf.Read(c.fs, target.layout().JDKTablePath())
	if err != nil {
		return "", err
	}

	var entry *etree.Element
	if table := xmlconf.FindChild(doc.Root, "component", xmlconf.AttrName, componentJDKTable); table != nil {
		entry = findJDK(table, name)
	}
	if entry == nil {
		return "", errors.Newf(errors.ErrJDKNotFound, "Unable to find JDK with name \"%s\" in jdk.table.xml", name)
	}

	homePath := xmlconf.FindChild(entry, "homePath", "", "")
	if homePath == nil {
		return "", errors.Newf(errors.ErrInvalidXML, "Invalid XML: homePath missing for JDK: %s", name)
	}
	value := homePath.SelectAttr("value")
	if value == nil {
		return "", errors.Newf(errors.ErrInvalidXML, "Invalid XML: homePath/@value missing for JDK: %s", name)
	}
	return value.Value, nil
}

func findJDK(table *etree.Element, name string) *etree.Element {
	for _, entry := range table.SelectElements("jdk") {
		if xmlconf.FindChild(entry, "name", "value", name) != nil {
			return entry
		}
	}
	return nil
}

func (c *Configurator) buildJDK(ctx context.Context, name, home string) (*etree.Element, error) {
	version, err := c.jdk.JavaVersion(ctx, home)
	if err != nil {
		return nil, err
	}
	classRoots, err := c.jdk.ClassPathRoots(home)
	if err != nil {
		return nil, err
	}
	sourceRoots, err := c.jdk.SourcePathRoots(home)
	if err != nil {
		return nil, err
	}

	entry := etree.NewElement("jdk")
	entry.CreateAttr("version", "2")
	valueElement(entry, "name", name)
	valueElement(entry, "type", jdkTypeJava)
	valueElement(entry, "version", version)
	valueElement(entry, "homePath", home)

	roots := entry.CreateElement("roots")
	compositeRoot(roots.CreateElement("annotationsPath"), []string{annotationsURL})
	compositeRoot(roots.CreateElement("classPath"), classRoots)
	compositeRoot(roots.CreateElement("javadocPath"), nil)
	compositeRoot(roots.CreateElement("sourcePath"), sourceRoots)

	entry.CreateElement("additional")
	return entry, nil
}

func valueElement(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).CreateAttr("value", value)
}

func compositeRoot(parent *etree.Element, urls []string) {
	composite := parent.CreateElement("root")
	composite.CreateAttr("type", "composite")
	for _, url := range urls {
		r := composite.CreateElement("root")
		r.CreateAttr("url", url)
		r.CreateAttr("type", "simple")
	}
}
