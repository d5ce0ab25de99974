// Package testutil provides the shared test environment for ideaprov
// packages.
//
// Key components:
//   - TestEnvironment: isolated XDG directories plus an in-memory filesystem
//   - file helpers that fail the test instead of returning errors
//
// Usage guidelines:
//   - tests that load configuration or set up logging call NewTestEnvironment
//     so nothing is read from or written to the real user directories
//   - all file fixtures are written inline through the environment's FS
package testutil
