package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/ideaprov/ideaprov/internal/version"
	"github.com/ideaprov/ideaprov/pkg/cobrax/topics"
	"github.com/ideaprov/ideaprov/pkg/config"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/manifest"
	"github.com/ideaprov/ideaprov/pkg/provision"
	"github.com/ideaprov/ideaprov/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed help/*.md
var helpFiles embed.FS

// Runtime is what commands act on. Tests swap in an in-memory filesystem
// and a fake JDK inspector.
type Runtime struct {
	FS        afero.Fs
	Inspector *jdk.Inspector
}

// DefaultRuntime works on the real filesystem
func DefaultRuntime() Runtime {
	return Runtime{FS: filesystem.NewOS(), Inspector: jdk.NewInspector()}
}

type globalOptions struct {
	verbosity     int
	check         bool
	diff          bool
	output        string
	configFile    string
	owner         string
	group         string
	intellijHome  string
	pluginsDir    string
	downloadCache string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithRuntime(DefaultRuntime())
}

// NewRootCmdWithRuntime creates the command tree over rt
func NewRootCmdWithRuntime(rt Runtime) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "ideaprov",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.check, "check", false, MsgFlagCheck)
	flags.BoolVar(&opts.diff, "diff", false, MsgFlagDiff)
	flags.StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.owner, "owner", "", MsgFlagOwner)
	flags.StringVar(&opts.group, "group", "", MsgFlagGroup)
	flags.StringVar(&opts.intellijHome, "intellij-home", "", MsgFlagIntelliJHome)
	flags.StringVar(&opts.pluginsDir, "plugins-dir", "", MsgFlagPluginsDir)
	flags.StringVar(&opts.downloadCache, "download-cache", "", MsgFlagDownloadCache)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newConfigureJDKCmd(rt, opts))
	rootCmd.AddCommand(newSetDefaultJDKCmd(rt, opts))
	rootCmd.AddCommand(newSetDefaultInspectionProfileCmd(rt, opts))
	rootCmd.AddCommand(newSetDefaultMavenCmd(rt, opts))
	rootCmd.AddCommand(newDisablePluginsCmd(rt, opts))
	rootCmd.AddCommand(newInstallPluginCmd(rt, opts))
	rootCmd.AddCommand(newApplyCmd(rt, opts))
	rootCmd.AddCommand(newManCmd(rootCmd))

	if sub, err := fs.Sub(helpFiles, "help"); err == nil {
		// Logging is not set up yet; a failure only costs the topics.
		_ = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(w, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(w, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
		},
	}
}

func newConfigureJDKCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "configure-jdk CONFIG_DIR NAME JDK_HOME",
		Short: MsgConfigureJDKShort,
		Long:  MsgConfigureJDKLong,
		Example: `  ideaprov configure-jdk .config/JetBrains/IdeaIC2023.2 17 /usr/lib/jvm/java-17-openjdk
  ideaprov --owner dev --check --diff configure-jdk .IdeaIC2019.3/config 1.8 /usr/lib/jvm/java-8-openjdk`,
		Args: cobra.ExactArgs(3),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.ConfigureJDK(cmd.Context(), args[1], args[2])
		}),
	}
}

func newSetDefaultJDKCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default-jdk CONFIG_DIR NAME",
		Short: MsgSetDefaultJDKShort,
		Long:  MsgSetDefaultJDKLong,
		Args:  cobra.ExactArgs(2),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.SetDefaultJDK(cmd.Context(), args[1])
		}),
	}
}

func newSetDefaultInspectionProfileCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default-inspection-profile CONFIG_DIR PROFILE",
		Short: MsgSetDefaultProfileShort,
		Args:  cobra.ExactArgs(2),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.SetDefaultInspectionProfile(cmd.Context(), args[1])
		}),
	}
}

func newSetDefaultMavenCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default-maven CONFIG_DIR MAVEN_HOME",
		Short: MsgSetDefaultMavenShort,
		Args:  cobra.ExactArgs(2),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.SetDefaultMaven(cmd.Context(), args[1])
		}),
	}
}

func newDisablePluginsCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disable-plugins CONFIG_DIR PLUGIN_ID...",
		Short: MsgDisablePluginsShort,
		Args:  cobra.MinimumNArgs(2),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.DisablePlugins(cmd.Context(), args[1:])
		}),
	}
}

func newInstallPluginCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "install-plugin CONFIG_DIR PLUGIN_ID",
		Short:   MsgInstallPluginShort,
		Long:    MsgInstallPluginLong,
		Example: `  ideaprov --intellij-home /opt/idea-IC install-plugin .config/JetBrains/IdeaIC2023.2 IdeaVIM`,
		Args:    cobra.ExactArgs(2),
		RunE: runOperation(rt, opts, func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error) {
			return p.InstallPlugin(cmd.Context(), args[1])
		}),
	}
}

func newApplyCmd(rt Runtime, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply MANIFEST",
		Short: MsgApplyShort,
		Long:  MsgApplyLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, opts)
			if err != nil {
				return err
			}
			return report(renderer, func() (interface{}, error) {
				m, err := manifest.Load(rt.FS, args[0])
				if err != nil {
					return nil, err
				}
				p, err := newProvisioner(cmd, rt, opts, manifestOptions(cmd, opts, m))
				if err != nil {
					return nil, err
				}
				return manifest.Apply(cmd.Context(), m, p)
			})
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate the man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "IDEAPROV",
				Section: "1",
				Source:  "ideaprov " + version.Version,
				Manual:  "ideaprov manual",
			}
			return doc.GenMan(rootCmd, header, cmd.OutOrStdout())
		},
	}
}

type operation func(cmd *cobra.Command, p *provision.Provisioner, args []string) (interface{}, error)

// runOperation builds the provisioner for args[0] and renders what op
// returns.
func runOperation(rt Runtime, opts *globalOptions, op operation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(cmd, opts)
		if err != nil {
			return err
		}
		return report(renderer, func() (interface{}, error) {
			p, err := newProvisioner(cmd, rt, opts, provision.Options{
				ConfigDir:    args[0],
				PluginsDir:   opts.pluginsDir,
				IntelliJHome: opts.intellijHome,
				Owner:        opts.owner,
				Group:        opts.group,
				CheckMode:    opts.check,
			})
			if err != nil {
				return nil, err
			}
			return op(cmd, p, args)
		})
	}
}

// report renders the outcome of run. Failures are rendered too and come
// back marked as reported.
func report(renderer ui.Renderer, run func() (interface{}, error)) error {
	result, err := run()
	if err != nil {
		if rerr := renderer.RenderError(err); rerr != nil {
			return errors.Wrap(rerr, errors.ErrInternal, MsgErrRender)
		}
		return &ReportedError{Err: err}
	}
	if err := renderer.RenderResult(result); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrRender)
	}
	return nil
}

func newRenderer(cmd *cobra.Command, opts *globalOptions) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout(), ui.Options{ShowDiff: opts.diff})
}

func newProvisioner(cmd *cobra.Command, rt Runtime, opts *globalOptions, popts provision.Options) (*provision.Provisioner, error) {
	overrides := map[string]interface{}{}
	if opts.downloadCache != "" {
		overrides["plugins.download_cache"] = opts.downloadCache
	}
	cfg, err := config.Load(opts.configFile, overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
	}

	p, err := provision.New(rt.FS, rt.Inspector, cfg.Plugins.Settings(), popts)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("command", cmd.Name()).
		Str("configDir", p.ConfigDir()).
		Str("pluginsDir", p.PluginsDir()).
		Bool("check", popts.CheckMode).
		Msg("Provisioner ready")
	return p, nil
}

// manifestOptions takes the manifest's settings, overridden by flags given
// on the command line.
func manifestOptions(cmd *cobra.Command, opts *globalOptions, m *manifest.Manifest) provision.Options {
	popts := provision.Options{
		ConfigDir:    m.ConfigDir,
		PluginsDir:   m.PluginsDir,
		IntelliJHome: m.IntelliJHome,
		Owner:        m.Owner,
		Group:        m.Group,
		CheckMode:    opts.check,
	}
	flags := cmd.Flags()
	if flags.Changed("plugins-dir") {
		popts.PluginsDir = opts.pluginsDir
	}
	if flags.Changed("intellij-home") {
		popts.IntelliJHome = opts.intellijHome
	}
	if flags.Changed("owner") {
		popts.Owner = opts.owner
	}
	if flags.Changed("group") {
		popts.Group = opts.group
	}
	return popts
}

// ReportedError is a failure that was already written to the output
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }
