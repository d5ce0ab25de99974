package ideconfig

import (
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/paths"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/ideaprov/ideaprov/pkg/xmlconf"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Target identifies the configuration directory an operation edits and how
type Target struct {
	ConfigDir string
	Owner     *types.Owner
	CheckMode bool
}

func (t Target) layout() paths.IDE {
	return paths.NewIDE(t.ConfigDir)
}

func (t Target) loadOptions() xmlconf.LoadOptions {
	return xmlconf.LoadOptions{Owner: t.Owner, CheckMode: t.CheckMode}
}

// Configurator runs the configuration operations
type Configurator struct {
	fs     afero.Fs
	jdk    *jdk.Inspector
	logger zerolog.Logger
}

// New creates a Configurator. The inspector must read the same filesystem.
func New(afs afero.Fs, inspector *jdk.Inspector) *Configurator {
	return &Configurator{
		fs:     afs,
		jdk:    inspector,
		logger: logging.GetLogger("ideconfig"),
	}
}

// NewDefault works against the real filesystem and real JDK tools
func NewDefault() *Configurator {
	return New(filesystem.NewOS(), jdk.NewInspector())
}

// finish saves doc when changed and builds the result
func (c *Configurator) finish(doc *xmlconf.Document, target Target, changed bool, changedMsg, unchangedMsg string) (*types.Result, error) {
	diff := doc.Diff()
	if changed && !target.CheckMode {
		if err := doc.Save(c.fs); err != nil {
			return nil, err
		}
		c.logger.Info().Str("path", doc.Path).Msg("Configuration file updated")
	}
	return types.NewResult(changed, changedMsg, unchangedMsg, diff), nil
}
