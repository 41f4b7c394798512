package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/logging"
	"github.com/openmsx/openmsx-install/pkg/types"
)

const dirPerm fs.FileMode = 0755

// InstallDirs creates path and any missing parents. Existing directories
// are left alone.
func InstallDirs(fsys types.FS, path string) error {
	if err := runOps(fsys, sfs.CreateDir(path, dirPerm)); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", path).
			WithDetail("path", path)
	}
	return nil
}

// InstallFile copies src to dst, keeping the permission bits and the
// modification time of src. An existing file at dst is replaced; the parent
// directory of dst must already exist.
func InstallFile(fsys types.FS, src, dst string) error {
	logger := logging.GetLogger("filesystem")

	info, err := fsys.Stat(src)
	if err != nil {
		code := errors.ErrFileAccess
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileNotFound
		}
		return errors.Wrapf(err, code, "cannot install %s", src).WithDetail("path", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileAccess, "cannot install %s: is a directory", src).
			WithDetail("path", src)
	}
	if !dirExists(fsys, filepath.Dir(dst)) {
		return errors.Newf(errors.ErrFileWrite, "cannot write %s: no such directory", dst).
			WithDetail("path", dst)
	}

	// Remove a previous copy first: it may be read-only, and the copy
	// operation refuses to overwrite.
	if existing, err := fsys.Lstat(dst); err == nil {
		if existing.IsDir() {
			return errors.Newf(errors.ErrFileCreate, "cannot install %s: destination is a directory", dst).
				WithDetail("path", dst)
		}
		if err := fsys.Remove(dst); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dst).WithDetail("path", dst)
		}
	}

	if err := runOps(fsys, sfs.Copy(src, dst)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst).WithDetail("path", dst)
	}
	// The copy is written through the umask and gets a fresh mtime.
	perm := info.Mode().Perm()
	if err := fsys.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set mode of %s", dst).WithDetail("path", dst)
	}
	if err := fsys.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set times of %s", dst).WithDetail("path", dst)
	}

	logger.Trace().Str("src", src).Str("dst", dst).Stringer("mode", perm).Msg("Installed file")
	return nil
}

// InstallSymlink creates a symbolic link at linkPath whose content is target,
// unresolved. An existing symlink at linkPath is replaced, so repeating the
// call is harmless. Anything else already at linkPath is an error, as is a
// missing parent directory.
//
// Callers must check Capabilities.Symlinks first.
func InstallSymlink(fsys types.FS, target, linkPath string) error {
	if info, err := fsys.Lstat(linkPath); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return errors.Newf(errors.ErrSymlinkExists, "cannot create symlink %s: path exists and is not a symlink", linkPath).
				WithDetail("path", linkPath)
		}
		if current, err := fsys.Readlink(linkPath); err == nil && current == target {
			return nil
		}
		if err := fsys.Remove(linkPath); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot replace symlink %s", linkPath).
				WithDetail("path", linkPath)
		}
	}
	if !dirExists(fsys, filepath.Dir(linkPath)) {
		return errors.Newf(errors.ErrSymlinkCreate, "cannot create symlink %s: no such directory", linkPath).
			WithDetail("path", linkPath)
	}

	if err := runOps(fsys, sfs.CreateSymlink(target, linkPath)); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s -> %s", linkPath, target).
			WithDetail("path", linkPath).
			WithDetail("target", target)
	}
	return nil
}

func dirExists(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
