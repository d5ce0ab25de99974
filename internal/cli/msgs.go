package cli

// Command descriptions
const (
	MsgRootShort = "Provision IntelliJ IDEA configuration directories"
	MsgRootLong  = `ideaprov configures IntelliJ IDEA for a user without starting the IDE.
It registers JDKs, sets project defaults, disables bundled plugins and
installs plugins from the JetBrains plugin repository.

Every command is idempotent: it reports "changed" only when a file was
modified, and --check previews the outcome without writing anything.`

	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"

	MsgConfigShort = "Print the default configuration"
	MsgConfigLong  = `Print the built-in configuration defaults as TOML.

Copy it to $XDG_CONFIG_HOME/ideaprov/config.toml, or pass a file with
--config, to change plugin repository settings. Any key can also be set
through the environment, e.g. IDEAPROV_PLUGINS__ATTEMPTS=5.`

	MsgConfigureJDKShort = "Add or update a JDK in jdk.table.xml"
	MsgConfigureJDKLong  = `Register the JDK installed at JDK_HOME under NAME in the IDE's
options/jdk.table.xml, with its class and source roots.

An existing entry with the same name is replaced when it differs.`

	MsgSetDefaultJDKShort = "Make a configured JDK the default for new projects"
	MsgSetDefaultJDKLong  = `Set the project SDK and language level of the default project in
options/project.default.xml. NAME must already be present in jdk.table.xml.`

	MsgSetDefaultProfileShort = "Set the default inspection profile"
	MsgSetDefaultMavenShort   = "Set the Maven home used by new projects"

	MsgDisablePluginsShort = "Add plugin ids to disabled_plugins.txt"

	MsgInstallPluginShort = "Download and install a plugin"
	MsgInstallPluginLong  = `Install PLUGIN_ID for the IDE at --intellij-home.

The plugin repository is asked for the build compatible with the IDE,
the download is cached and then copied (jar) or extracted (zip) into the
plugins directory.`

	MsgApplyShort = "Apply a manifest describing the desired IDE setup"
	MsgApplyLong  = `Run every operation a TOML or YAML manifest calls for, in order:
JDKs, default JDK, inspection profile, Maven home, disabled plugins and
finally plugins. The run stops at the first failure.

See "ideaprov help manifest" for the format.`
)

// Version output
const (
	MsgVersionFormat = "ideaprov version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)

// Flag descriptions
const (
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagCheck         = "Report what would change without writing anything"
	MsgFlagDiff          = "Show file contents before and after each change"
	MsgFlagOutput        = "Output format: auto, term, text or json"
	MsgFlagConfig        = "Configuration file (default $XDG_CONFIG_HOME/ideaprov/config.toml)"
	MsgFlagOwner         = "User owning the configuration files (default current user)"
	MsgFlagGroup         = "Group owning the configuration files (default owner's primary group)"
	MsgFlagIntelliJHome  = "IntelliJ IDEA installation directory"
	MsgFlagPluginsDir    = "Plugins directory (default CONFIG_DIR/plugins)"
	MsgFlagDownloadCache = "Directory caching plugin downloads"
)

// Error messages
const (
	MsgErrLoadConfig = "failed to load configuration"
	MsgErrRender     = "failed to render output"
)
