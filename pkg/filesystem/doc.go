// Package filesystem provides the filesystem backends and the idempotent
// install primitives used by the installer.
//
// Backends implement types.FS: NewOS talks to the operating system and
// NewAferoFS wraps any afero filesystem, which tests use to run install
// steps in memory.
//
// The primitives (InstallDirs, InstallFile, ScanTree, InstallTree and
// InstallSymlink) can be repeated against the same destination without
// error, which makes re-running an install safe. Their changes are carried
// out as synthfs operations on whichever backend they are given.
package filesystem
