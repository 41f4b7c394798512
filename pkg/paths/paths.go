package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/openmsx/openmsx-install/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// Separator is the separator used in destination paths. Destination
// directories come from make variables and always use forward slashes.
const Separator = "/"

// NormalizePrefix makes sure the install prefix ends with exactly one
// separator. An empty prefix becomes the filesystem root.
func NormalizePrefix(prefix string) string {
	return strings.TrimRight(prefix, Separator) + Separator
}

// Join concatenates path components with exactly one separator between
// them. Leading separators of later components are dropped, so an absolute
// destination directory is placed under the prefix instead of replacing it.
// Empty components are skipped. Unlike filepath.Join, "." and ".." are kept
// as given.
func Join(prefix string, elems ...string) string {
	result := prefix
	for _, elem := range elems {
		elem = strings.Trim(elem, Separator)
		if elem == "" {
			continue
		}
		if result == "" {
			result = elem
			continue
		}
		result = strings.TrimRight(result, Separator) + Separator + elem
	}
	return filepath.FromSlash(result)
}

// Same reports whether two directory paths name the same location once
// cleaned, without touching the filesystem.
func Same(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// GetHomeDirectory returns the user's home directory.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
}

// ExpandHome expands a leading ~ to the user's home directory. Paths
// without a leading ~ are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
