// Package testutil provides helpers for tests that install into temporary
// directories.
//
// Key components:
//   - File helpers: CreateFile, CreateDir, FileExists, SymlinkExists, ...
//   - SourceTree: declarative builder for a built openMSX source tree
//
// All test data is defined inline; every test gets its own t.TempDir().
package testutil
