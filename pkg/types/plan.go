package types

// InstallPlan holds the resolved paths and flags for one installer run.
// It is built once from the command line and not modified afterwards.
type InstallPlan struct {
	// Prefix is the staging root; always ends with a separator.
	Prefix string

	BinaryDestDir string
	ShareDestDir  string
	DocDestDir    string

	// BinaryBuildPath is the executable produced by the build.
	BinaryBuildPath string

	// TargetPlatform selects build/platform-<TargetPlatform>.mk.
	TargetPlatform string

	// CBIOS enables installing the bundled C-BIOS machines.
	CBIOS bool

	// SymlinkForBinary requests a symlink to the executable in a
	// directory on the search path.
	SymlinkForBinary bool
}

// LiveRoot reports whether files go straight into the live filesystem
// rather than into a staging directory.
func (p InstallPlan) LiveRoot() bool {
	return p.Prefix == "/"
}
