package installer

import (
	"path/filepath"

	"github.com/openmsx/openmsx-install/pkg/filesystem"
	"github.com/openmsx/openmsx-install/pkg/paths"
	"github.com/openmsx/openmsx-install/pkg/types"
)

// linkBinaryOnPath puts a symlink to the installed executable into the
// first candidate directory that accepts it. Failing every candidate is
// not an error.
func (i *Installer) linkBinaryOnPath(plan types.InstallPlan, binaryName string) bool {
	binDir := paths.Join(plan.Prefix, plan.BinaryDestDir)
	target := paths.Join(binDir, binaryName)

	for _, candidate := range i.cfg.Symlink.Candidates {
		dir, err := paths.ExpandHome(candidate)
		if err != nil {
			i.logger.Debug().Err(err).Str("candidate", candidate).Msg("Cannot expand symlink candidate")
			continue
		}
		if i.tryLinkBinary(binDir, dir, target, binaryName) {
			i.logger.Info().Str("dir", dir).Str("target", target).Msg("Linked binary")
			return true
		}
	}
	i.logger.Debug().Msg("No directory accepted the binary symlink")
	return false
}

func (i *Installer) tryLinkBinary(binDir, dir, target, binaryName string) bool {
	if paths.Same(dir, binDir) {
		return false
	}
	info, err := i.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := filesystem.InstallSymlink(i.fs, target, filepath.Join(dir, binaryName)); err != nil {
		i.logger.Debug().Err(err).Str("dir", dir).Msg("Binary symlink refused")
		return false
	}
	return true
}
