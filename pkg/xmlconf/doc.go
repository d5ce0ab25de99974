// Package xmlconf edits the IDE's persisted XML option files in place.
//
// A Document is loaded once, mutated through find-or-create helpers that
// report whether they changed anything, rendered with two-space indentation
// and written back only when the caller decides something changed.
package xmlconf
