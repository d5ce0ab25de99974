// Package config loads ideaprov settings.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/ideaprov/config.toml or --config
//  3. IDEAPROV_ environment variables, "__" separating nested keys
//  4. overrides passed by the caller, usually command line flags
package config
