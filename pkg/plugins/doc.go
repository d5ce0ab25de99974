// Package plugins installs IDE plugins from a plugin manager.
//
// Installing a plugin takes four steps:
//
//   - read the build number of the local IDE installation
//   - ask the plugin manager, with a HEAD request whose redirect is not
//     followed, where the plugin for that build lives
//   - download the archive into a local cache unless a file with the same
//     name is already there
//   - copy a jar into the plugins directory, or extract a zip into it,
//     unless the plugin is already present
package plugins
