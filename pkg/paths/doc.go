// Package paths provides path handling for the installer.
//
// Destination paths are built by joining an install prefix with the
// destination directories given on the command line. The prefix is either
// empty (install into the live filesystem) or a staging directory used when
// packaging. Destination directories are usually absolute, so plain string
// concatenation would either double or drop separators; Join guarantees
// exactly one separator between components.
//
//	prefix := paths.NormalizePrefix("/tmp/stage")   // "/tmp/stage/"
//	paths.Join(prefix, "/usr/bin", "openmsx")       // "/tmp/stage/usr/bin/openmsx"
//	paths.Join(paths.NormalizePrefix(""), "bin")    // "/bin"
//
// Home directory expansion follows the XDG conventions of
// github.com/adrg/xdg.
package paths
