package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for install operations
type FS interface {
	// File operations
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error

	// Lstat falls back to Stat on backends without symlink support
	Lstat(name string) (fs.FileInfo, error)
}

// SymlinkCapable is implemented by FS backends that can report whether
// they are able to create symbolic links at all.
type SymlinkCapable interface {
	SupportsSymlinks() bool
}
