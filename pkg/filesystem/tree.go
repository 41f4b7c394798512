package filesystem

import (
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"sort"

	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/logging"
	"github.com/openmsx/openmsx-install/pkg/types"
)

// TreeEntry is one file or directory found by ScanTree.
type TreeEntry struct {
	// Path is relative to the scanned root and uses forward slashes.
	Path  string
	IsDir bool
}

// vcsDirs are never installed.
var vcsDirs = map[string]bool{
	".svn": true,
	".git": true,
	"CVS":  true,
}

// ScanTree walks root and yields every file and directory below it.
// Directories come before their contents and entries of one directory are
// sorted by name. The walk happens while the sequence is consumed and
// starts over each time it is ranged over.
//
// A symlink to a file is yielded as a file and installed as a copy of its
// target. Symlinks to directories are skipped, so a link loop in the source
// cannot make the walk recurse.
func ScanTree(fsys types.FS, root string) iter.Seq2[TreeEntry, error] {
	return func(yield func(TreeEntry, error) bool) {
		scanDir(fsys, root, "", yield)
	}
}

// scanDir returns false once the consumer has stopped.
func scanDir(fsys types.FS, root, rel string, yield func(TreeEntry, error) bool) bool {
	dir := root
	if rel != "" {
		dir = filepath.Join(root, filepath.FromSlash(rel))
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		yield(TreeEntry{Path: rel}, errors.Wrapf(err, errors.ErrFileAccess, "cannot scan %s", dir).
			WithDetail("path", dir))
		return false
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		name := entry.Name()
		entryRel := path.Join(rel, name)

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := fsys.Stat(filepath.Join(dir, name))
			if err != nil {
				if !yield(TreeEntry{Path: entryRel}, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", entryRel)) {
					return false
				}
				continue
			}
			if info.IsDir() {
				logging.GetLogger("filesystem").Debug().Str("path", entryRel).Msg("Skipping symlinked directory")
				continue
			}
		}

		if isDir {
			if vcsDirs[name] {
				continue
			}
			if !yield(TreeEntry{Path: entryRel, IsDir: true}, nil) {
				return false
			}
			if !scanDir(fsys, root, entryRel, yield) {
				return false
			}
			continue
		}
		if !yield(TreeEntry{Path: entryRel}, nil) {
			return false
		}
	}
	return true
}

// InstallTree recreates the entries below dstRoot: directories are created
// and files are copied from srcRoot. The first error stops the copy.
func InstallTree(fsys types.FS, srcRoot, dstRoot string, entries iter.Seq2[TreeEntry, error]) error {
	for entry, err := range entries {
		if err != nil {
			return err
		}
		rel := filepath.FromSlash(entry.Path)
		dst := filepath.Join(dstRoot, rel)
		if entry.IsDir {
			if err := InstallDirs(fsys, dst); err != nil {
				return err
			}
			continue
		}
		if err := InstallFile(fsys, filepath.Join(srcRoot, rel), dst); err != nil {
			return err
		}
	}
	return nil
}
