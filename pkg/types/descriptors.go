package types

import (
	"strings"

	"github.com/openmsx/openmsx-install/pkg/errors"
)

// Descriptor variable names
const (
	VarExeExt           = "EXEEXT"
	VarInstallDocs      = "INSTALL_DOCS"
	VarSymlinkForBinary = "SYMLINK_FOR_BINARY"
)

// MakeVars maps variable names from a make-style descriptor to their values.
type MakeVars map[string]string

// Lookup returns the value of name and whether it is defined.
func (v MakeVars) Lookup(name string) (string, bool) {
	value, ok := v[name]
	return value, ok
}

// Require returns the value of name, failing when it is not defined.
func (v MakeVars) Require(name, source string) (string, error) {
	value, ok := v.Lookup(name)
	if !ok {
		return "", errors.Newf(errors.ErrConfigValid, "variable %s is not defined", name).
			WithDetail("descriptor", source).
			WithDetail("variable", name)
	}
	return value, nil
}

// PlatformConfig holds the variables of build/platform-<os>.mk.
type PlatformConfig struct {
	Path string
	Vars MakeVars
}

// ExeExt returns the executable file extension. An empty but defined
// extension is valid.
func (c PlatformConfig) ExeExt() (string, error) {
	return c.Vars.Require(VarExeExt, c.Path)
}

// DocManifest holds the variables of doc/node.mk.
type DocManifest struct {
	Path string
	Vars MakeVars
}

// InstallDocs returns the extra documentation file names, relative to the
// doc source directory.
func (m DocManifest) InstallDocs() ([]string, error) {
	value, err := m.Vars.Require(VarInstallDocs, m.Path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(value), nil
}

// CustomConfig holds the variables of build/custom.mk.
type CustomConfig struct {
	Path string
	Vars MakeVars
}

// SymlinkForBinary returns the raw SYMLINK_FOR_BINARY token.
func (c CustomConfig) SymlinkForBinary() (string, error) {
	return c.Vars.Require(VarSymlinkForBinary, c.Path)
}
