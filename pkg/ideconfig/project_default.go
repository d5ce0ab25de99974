package ideconfig

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/ideaprov/ideaprov/pkg/xmlconf"
)

const (
	componentProjectManager    = "ProjectManager"
	componentProjectRoot       = "ProjectRootManager"
	componentInspectionProfile = "InspectionProjectProfileManager"
	componentMavenImport       = "MavenImportPreferences"
)

// defaultProject finds or creates ProjectManager/defaultProject
func defaultProject(root *etree.Element) *etree.Element {
	return xmlconf.Path(root,
		xmlconf.Named("component", componentProjectManager),
		xmlconf.Tag("defaultProject"),
	)
}

// SetDefaultJDK makes the already configured JDK called name the default
// for new projects, with the language level of that JDK.
func (c *Configurator) SetDefaultJDK(ctx context.Context, target Target, name string) (*types.Result, error) {
	defer logging.LogOperationStart(c.logger, "set-default-jdk")()

	doc, err := xmlconf.Load(c.fs, target.layout().ProjectDefaultPath(), target.loadOptions())
	if err != nil {
		return nil, err
	}

	home, err := c.JDKHome(target, name)
	if err != nil {
		return nil, err
	}
	spec, err := c.jdk.SpecificationVersion(ctx, home)
	if err != nil {
		return nil, err
	}
	level, err := jdk.LanguageLevel(spec)
	if err != nil {
		return nil, err
	}

	manager := xmlconf.Component(defaultProject(doc.Root), componentProjectRoot)
	changed := xmlconf.Any(
		xmlconf.SetAttr(manager, "version", "2"),
		xmlconf.SetAttr(manager, "languageLevel", level),
		xmlconf.SetAttr(manager, "default", "true"),
		xmlconf.SetAttr(manager, "assert-keyword", "true"),
		xmlconf.SetAttr(manager, "jdk-15", "true"),
		xmlconf.SetAttr(manager, "project-jdk-name", name),
		xmlconf.SetAttr(manager, "project-jdk-type", jdkTypeJava),
	)

	return c.finish(doc, target, changed,
		fmt.Sprintf("%s is now the default JDK", name),
		fmt.Sprintf("%s is already the default JDK", name))
}

// SetDefaultInspectionProfile makes profile the inspection profile new
// projects start with.
func (c *Configurator) SetDefaultInspectionProfile(target Target, profile string) (*types.Result, error) {
	defer logging.LogOperationStart(c.logger, "set-default-inspection-profile")()

	doc, err := xmlconf.Load(c.fs, target.layout().ProjectDefaultPath(), target.loadOptions())
	if err != nil {
		return nil, err
	}

	manager := xmlconf.Component(defaultProject(doc.Root), componentInspectionProfile)
	changed := xmlconf.Any(
		xmlconf.SetOption(manager, "PROJECT_PROFILE", profile),
		xmlconf.SetOption(manager, "USE_PROJECT_PROFILE", "false"),
		xmlconf.SetVersion(manager, "1.0"),
	)

	return c.finish(doc, target, changed,
		fmt.Sprintf("%s is now the default inspection profile", profile),
		fmt.Sprintf("%s is already the default inspection profile", profile))
}

// SetDefaultMaven makes mavenHome the Maven installation new projects use.
func (c *Configurator) SetDefaultMaven(target Target, mavenHome string) (*types.Result, error) {
	defer logging.LogOperationStart(c.logger, "set-default-maven")()

	doc, err := xmlconf.Load(c.fs, target.layout().ProjectDefaultPath(), target.loadOptions())
	if err != nil {
		return nil, err
	}

	option := xmlconf.Path(defaultProject(doc.Root),
		xmlconf.Named("component", componentMavenImport),
		xmlconf.Named("option", "generalSettings"),
		xmlconf.Tag("MavenGeneralSettings"),
		xmlconf.Named("option", "mavenHome"),
	)
	changed := xmlconf.SetAttr(option, "value", mavenHome)

	return c.finish(doc, target, changed,
		fmt.Sprintf("%s is now the default Maven installation", mavenHome),
		fmt.Sprintf("%s is already the default Maven installation", mavenHome))
}
