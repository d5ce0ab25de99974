// Package paths provides centralized path handling for ideaprov.
// It resolves the tool's own XDG directories (config, cache, state) and
// the file layout of an IDE configuration directory.
package paths
