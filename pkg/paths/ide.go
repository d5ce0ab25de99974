package paths

import "path/filepath"

// File names inside an IDE configuration directory
const (
	OptionsDirName          = "options"
	PluginsDirName          = "plugins"
	JDKTableFileName        = "jdk.table.xml"
	ProjectDefaultFileName  = "project.default.xml"
	DisabledPluginsFileName = "disabled_plugins.txt"
)

// IDE describes the layout of one IDE configuration directory, the directory
// holding options/, plugins/ and disabled_plugins.txt.
type IDE struct {
	ConfigDir string
}

// NewIDE returns the layout rooted at configDir
func NewIDE(configDir string) IDE {
	return IDE{ConfigDir: filepath.Clean(configDir)}
}

func (i IDE) OptionsDir() string {
	return filepath.Join(i.ConfigDir, OptionsDirName)
}

func (i IDE) JDKTablePath() string {
	return filepath.Join(i.OptionsDir(), JDKTableFileName)
}

func (i IDE) ProjectDefaultPath() string {
	return filepath.Join(i.OptionsDir(), ProjectDefaultFileName)
}

func (i IDE) PluginsDir() string {
	return filepath.Join(i.ConfigDir, PluginsDirName)
}

func (i IDE) DisabledPluginsPath() string {
	return filepath.Join(i.ConfigDir, DisabledPluginsFileName)
}
