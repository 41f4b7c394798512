// Package makevars reads variables from the make-style descriptors of the
// build system (build/platform-*.mk, build/custom.mk, doc/node.mk) and
// parses the boolean tokens used in them and on the installer command line.
package makevars

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/v2"
	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/types"
)

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// ExtractMakeVariables reads the descriptor at path and returns its
// variables.
func ExtractMakeVariables(fsys types.FS, path string) (types.MakeVars, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "descriptor %s not found", path).WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read descriptor %s", path).WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed descriptor %s", path).WithDetail("path", path)
	}

	vars := make(types.MakeVars, len(k.Keys()))
	for _, key := range k.Keys() {
		vars[key] = k.String(key)
	}
	return vars, nil
}

// LoadPlatformConfig reads a platform descriptor.
func LoadPlatformConfig(fsys types.FS, path string) (types.PlatformConfig, error) {
	vars, err := ExtractMakeVariables(fsys, path)
	if err != nil {
		return types.PlatformConfig{}, err
	}
	return types.PlatformConfig{Path: path, Vars: vars}, nil
}

// LoadDocManifest reads the documentation descriptor.
func LoadDocManifest(fsys types.FS, path string) (types.DocManifest, error) {
	vars, err := ExtractMakeVariables(fsys, path)
	if err != nil {
		return types.DocManifest{}, err
	}
	return types.DocManifest{Path: path, Vars: vars}, nil
}

// LoadCustomConfig reads the customization descriptor.
func LoadCustomConfig(fsys types.FS, path string) (types.CustomConfig, error) {
	vars, err := ExtractMakeVariables(fsys, path)
	if err != nil {
		return types.CustomConfig{}, err
	}
	return types.CustomConfig{Path: path, Vars: vars}, nil
}

var boolTokens = map[string]bool{
	"true": true, "yes": true, "1": true,
	"false": false, "no": false, "0": false,
}

// ParseBool converts true/false, yes/no or 1/0 (any case) to a boolean.
// Any other token is rejected.
func ParseBool(s string) (bool, error) {
	value, ok := boolTokens[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, errors.Newf(errors.ErrInvalidInput, "invalid boolean value %q", s).WithDetail("value", s)
	}
	return value, nil
}
