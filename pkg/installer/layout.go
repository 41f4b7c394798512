package installer

// BinaryBaseName is the executable name without platform extension.
const BinaryBaseName = "openmsx"

// Source tree layout, relative to the source root.
const (
	shareSourceDir  = "share"
	docSourceDir    = "doc"
	manualSourceDir = "doc/manual"
	cbiosReadme     = "Contrib/README.cbios"
	cbiosSourceDir  = "Contrib/cbios"
)

// Destination layout, relative to the destination directories.
const (
	manualDestDir   = "manual"
	cbiosReadmeDest = "cbios.txt"
	machinesDestDir = "machines"
)

// CoreDocs are installed from the top of the source tree.
var CoreDocs = []string{"README", "GPL", "AUTHORS"}

// ManualExtensions selects the files copied from the manual directory.
var ManualExtensions = map[string]bool{
	".html": true,
	".css":  true,
	".png":  true,
}

// MachineAlias names a short alias for a machine directory.
type MachineAlias struct {
	Machine string
	Alias   string
}

// MachineAliases are created as symlinks in the machines directory.
var MachineAliases = []MachineAlias{
	{Machine: "Toshiba_HX-10", Alias: "msx1"},
	{Machine: "Philips_NMS_8250", Alias: "msx2"},
	{Machine: "Panasonic_FS-A1FX", Alias: "msx2plus"},
	{Machine: "Panasonic_FS-A1GT", Alias: "turbor"},
}
