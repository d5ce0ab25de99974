// Package ideconfig applies idempotent settings to an IDE configuration
// directory: JDK table entries, the defaults new projects inherit, and the
// list of disabled bundled plugins.
//
// Every operation loads one file, upserts a handful of nodes, and writes the
// file back only when something changed and check mode is off.
package ideconfig
