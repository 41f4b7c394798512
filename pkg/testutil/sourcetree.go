package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// SourceTree describes a built openMSX source tree for install tests.
type SourceTree struct {
	// Platform is the target OS; build/platform-<Platform>.mk is written.
	Platform string
	ExeExt   string
	// InstallDocs lists files under doc/ named in doc/node.mk.
	InstallDocs []string
	// SymlinkForBinary is written to build/custom.mk as is.
	SymlinkForBinary string
	// Files maps slash separated paths below the root to their content.
	Files map[string]string
}

// DefaultSourceTree returns a small but complete tree.
func DefaultSourceTree() SourceTree {
	return SourceTree{
		Platform:         "linux",
		ExeExt:           "",
		InstallDocs:      []string{"release-notes.txt"},
		SymlinkForBinary: "false",
		Files: map[string]string{
			"README":                           "readme",
			"GPL":                              "gpl",
			"AUTHORS":                          "authors",
			"doc/release-notes.txt":            "notes",
			"doc/manual/index.html":            "<html></html>",
			"doc/manual/manual.css":            "body {}",
			"doc/manual/logo.png":              "png",
			"doc/manual/notes.txt":             "not installed",
			"share/init.tcl":                   "tcl",
			"share/machines/Boosted/hw.xml":    "<hw/>",
			"share/skins/default/ui.png":       "png",
			"share/.svn/entries":               "vcs",
			"Contrib/README.cbios":             "cbios readme",
			"Contrib/cbios/C-BIOS_MSX1/hw.xml": "<msx1/>",
			"Contrib/cbios/C-BIOS_MSX2/hw.xml": "<msx2/>",
		},
	}
}

// BinaryPath is where Write puts the built executable, relative to the
// tree root.
func (s SourceTree) BinaryPath() string {
	return "derived/openmsx" + s.ExeExt
}

// Write creates the tree below root and returns the path of the built
// executable.
func (s SourceTree) Write(t *testing.T, root string) string {
	t.Helper()

	names := make([]string, 0, len(s.Files))
	for name := range s.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		CreateFile(t, root, name, s.Files[name])
	}

	CreateFile(t, root, "build/platform-"+s.Platform+".mk",
		"# File name extension of executables.\nEXEEXT:="+s.ExeExt+"\n")
	CreateFile(t, root, "doc/node.mk",
		"INSTALL_DOCS:= \\\n\t"+strings.Join(s.InstallDocs, " \\\n\t")+"\n")
	CreateFile(t, root, "build/custom.mk",
		"# Set to true to create a symlink to the binary.\nSYMLINK_FOR_BINARY:="+s.SymlinkForBinary+"\n")

	binary := CreateFile(t, root, s.BinaryPath(), "\x7fELF")
	Chmod(t, binary, 0755)
	return filepath.Clean(binary)
}
