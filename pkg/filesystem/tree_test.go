package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/filesystem"
	"github.com/openmsx/openmsx-install/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, seq func(func(filesystem.TreeEntry, error) bool)) []filesystem.TreeEntry {
	t.Helper()
	var entries []filesystem.TreeEntry
	for entry, err := range seq {
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	return entries
}

func shareTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.CreateFile(t, root, "init.tcl", "tcl")
	testutil.CreateFile(t, root, "machines/B/hw.xml", "b")
	testutil.CreateFile(t, root, "machines/A/hw.xml", "a")
	testutil.CreateFile(t, root, "machines/.svn/entries", "vcs")
	testutil.CreateFile(t, root, ".git/HEAD", "ref")
	testutil.CreateFile(t, root, "CVS/Root", "cvs")
	testutil.CreateDir(t, root, "empty")
	return root
}

func TestScanTreeOrder(t *testing.T) {
	root := shareTree(t)

	entries := collect(t, filesystem.ScanTree(filesystem.NewOS(), root))

	assert.Equal(t, []filesystem.TreeEntry{
		{Path: "empty", IsDir: true},
		{Path: "init.tcl"},
		{Path: "machines", IsDir: true},
		{Path: "machines/A", IsDir: true},
		{Path: "machines/A/hw.xml"},
		{Path: "machines/B", IsDir: true},
		{Path: "machines/B/hw.xml"},
	}, entries)
}

func TestScanTreeSymlinks(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := shareTree(t)
	require.NoError(t, os.Symlink(".", filepath.Join(root, "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "machines"), filepath.Join(root, "machines2")))
	require.NoError(t, os.Symlink("init.tcl", filepath.Join(root, "startup.tcl")))

	entries := collect(t, filesystem.ScanTree(filesystem.NewOS(), root))

	assert.Equal(t, []filesystem.TreeEntry{
		{Path: "empty", IsDir: true},
		{Path: "init.tcl"},
		{Path: "machines", IsDir: true},
		{Path: "machines/A", IsDir: true},
		{Path: "machines/A/hw.xml"},
		{Path: "machines/B", IsDir: true},
		{Path: "machines/B/hw.xml"},
		{Path: "startup.tcl"},
	}, entries)

	fsys := filesystem.NewOS()
	dst := t.TempDir()
	require.NoError(t, filesystem.InstallTree(fsys, root, dst, filesystem.ScanTree(fsys, root)))
	assert.Equal(t, "tcl", testutil.ReadFile(t, filepath.Join(dst, "startup.tcl")))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(dst, "startup.tcl")))
}

func TestScanTreeRestartable(t *testing.T) {
	root := shareTree(t)
	seq := filesystem.ScanTree(filesystem.NewOS(), root)

	first := collect(t, seq)
	second := collect(t, seq)
	assert.Equal(t, first, second)
}

func TestScanTreeEarlyBreak(t *testing.T) {
	root := shareTree(t)

	var seen []string
	for entry, err := range filesystem.ScanTree(filesystem.NewOS(), root) {
		require.NoError(t, err)
		seen = append(seen, entry.Path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"empty", "init.tcl"}, seen)
}

func TestScanTreeMissingRoot(t *testing.T) {
	var gotErr error
	for _, err := range filesystem.ScanTree(filesystem.NewOS(), filepath.Join(t.TempDir(), "missing")) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.True(t, errors.IsErrorCode(gotErr, errors.ErrFileAccess))
}

func TestInstallTreeMirrors(t *testing.T) {
	fsys := filesystem.NewOS()
	src := shareTree(t)
	dst := t.TempDir()

	require.NoError(t, filesystem.InstallTree(fsys, src, dst, filesystem.ScanTree(fsys, src)))

	assert.ElementsMatch(t, []string{"init.tcl", "machines/A/hw.xml", "machines/B/hw.xml"}, testutil.Files(t, dst))
	assert.True(t, testutil.DirExists(t, filepath.Join(dst, "empty")))
	assert.False(t, testutil.DirExists(t, filepath.Join(dst, ".git")))
	assert.Equal(t, "a", testutil.ReadFile(t, filepath.Join(dst, "machines", "A", "hw.xml")))

	// Installing over an existing copy gives the same result.
	require.NoError(t, filesystem.InstallTree(fsys, src, dst, filesystem.ScanTree(fsys, src)))
	assert.ElementsMatch(t, []string{"init.tcl", "machines/A/hw.xml", "machines/B/hw.xml"}, testutil.Files(t, dst))
}

func TestInstallTreeOnMemoryBackend(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/src/a/b.txt", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(mem, "/src/c.txt", []byte("c"), 0600))
	require.NoError(t, mem.MkdirAll("/dst", 0755))
	fsys := filesystem.NewAferoFS(mem)

	require.NoError(t, filesystem.InstallTree(fsys, "/src", "/dst", filesystem.ScanTree(fsys, "/src")))

	data, err := afero.ReadFile(mem, "/dst/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	info, err := mem.Stat("/dst/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}
