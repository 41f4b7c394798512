package filesystem

import (
	"runtime"

	"github.com/openmsx/openmsx-install/pkg/types"
)

// Capabilities describes what the target platform can do. The installer
// receives it explicitly so tests can switch features off.
type Capabilities struct {
	Symlinks bool
}

// DetectCapabilities reports the capabilities of the running platform
// combined with those of the given backend.
func DetectCapabilities(fsys types.FS) Capabilities {
	symlinks := osSupportsSymlinks()
	if capable, ok := fsys.(types.SymlinkCapable); ok {
		symlinks = capable.SupportsSymlinks()
	}
	return Capabilities{Symlinks: symlinks}
}

// osSupportsSymlinks is false on platforms where unprivileged processes
// cannot create symbolic links.
func osSupportsSymlinks() bool {
	switch runtime.GOOS {
	case "windows", "plan9", "js", "wasip1":
		return false
	default:
		return true
	}
}
