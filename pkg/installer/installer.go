// Package installer copies a built openMSX into its destination
// directories and creates the convenience symlinks.
//
// InstallAll runs a fixed sequence of steps. The first failing step stops
// the run; files installed by earlier steps stay in place. Every step can
// be repeated against an existing installation.
package installer

import (
	"path"
	"path/filepath"
	"sort"

	"github.com/openmsx/openmsx-install/pkg/config"
	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/filesystem"
	"github.com/openmsx/openmsx-install/pkg/logging"
	"github.com/openmsx/openmsx-install/pkg/makevars"
	"github.com/openmsx/openmsx-install/pkg/paths"
	"github.com/openmsx/openmsx-install/pkg/style"
	"github.com/openmsx/openmsx-install/pkg/types"
	"github.com/rs/zerolog"
)

// Status lines
const (
	MsgStepExecutable = "  Executable..."
	MsgStepData       = "  Data files..."
	MsgStepDocs       = "  Documentation..."
	MsgStepCBIOS      = "  C-BIOS..."
	MsgStepSymlinks   = "  Creating symlinks..."
)

// Options configures an Installer.
type Options struct {
	FS           types.FS
	Config       *config.Config
	Capabilities filesystem.Capabilities
	// Theme receives the status lines.
	Theme *style.Theme
}

// Installer performs installations described by an InstallPlan.
type Installer struct {
	fs     types.FS
	cfg    *config.Config
	caps   filesystem.Capabilities
	theme  *style.Theme
	logger zerolog.Logger
}

// New creates an Installer.
func New(opts Options) *Installer {
	return &Installer{
		fs:     opts.FS,
		cfg:    opts.Config,
		caps:   opts.Capabilities,
		theme:  opts.Theme,
		logger: logging.GetLogger("installer"),
	}
}

// NewPlan builds the plan for one run. The prefix is normalized so that it
// ends with a separator; an empty prefix means the live filesystem.
func NewPlan(prefix, binaryDestDir, shareDestDir, docDestDir, binaryBuildPath, targetPlatform string, cbios, symlinkForBinary bool) types.InstallPlan {
	return types.InstallPlan{
		Prefix:           paths.NormalizePrefix(prefix),
		BinaryDestDir:    binaryDestDir,
		ShareDestDir:     shareDestDir,
		DocDestDir:       docDestDir,
		BinaryBuildPath:  binaryBuildPath,
		TargetPlatform:   targetPlatform,
		CBIOS:            cbios,
		SymlinkForBinary: symlinkForBinary,
	}
}

// InstallAll installs everything the plan asks for.
func (i *Installer) InstallAll(plan types.InstallPlan) error {
	i.logger.Info().
		Str("prefix", plan.Prefix).
		Str("platform", plan.TargetPlatform).
		Bool("cbios", plan.CBIOS).
		Bool("symlinkForBinary", plan.SymlinkForBinary).
		Msg("Starting installation")

	binaryName, err := i.binaryFileName(plan)
	if err != nil {
		return err
	}
	docs, err := i.docsToInstall()
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"executable", func() error { return i.installExecutable(plan, binaryName) }},
		{"data", func() error { return i.installData(plan) }},
		{"docs", func() error { return i.installDocs(plan, docs) }},
		{"cbios", func() error { return i.installCBIOS(plan) }},
		{"symlinks", func() error { return i.installSymlinks(plan, binaryName) }},
	}
	for _, step := range steps {
		done := logging.LogOperationStart(i.logger, step.name)
		if err := step.run(); err != nil {
			i.logger.Debug().Err(err).Str("operation", step.name).Msg("Step failed")
			return err
		}
		done()
	}

	i.logger.Info().Msg("Installation finished")
	return nil
}

func (i *Installer) binaryFileName(plan types.InstallPlan) (string, error) {
	platform, err := makevars.LoadPlatformConfig(i.fs, i.cfg.PlatformDescriptor(plan.TargetPlatform))
	if err != nil {
		return "", err
	}
	ext, err := platform.ExeExt()
	if err != nil {
		return "", err
	}
	return BinaryBaseName + ext, nil
}

// docsToInstall returns source paths relative to the source root.
func (i *Installer) docsToInstall() ([]string, error) {
	manifest, err := makevars.LoadDocManifest(i.fs, i.cfg.SourcePath(i.cfg.Descriptors.Docs))
	if err != nil {
		return nil, err
	}
	extra, err := manifest.InstallDocs()
	if err != nil {
		return nil, err
	}
	docs := append([]string{}, CoreDocs...)
	for _, name := range extra {
		docs = append(docs, path.Join(docSourceDir, name))
	}
	return docs, nil
}

func (i *Installer) installExecutable(plan types.InstallPlan, binaryName string) error {
	i.status(MsgStepExecutable)
	if err := filesystem.InstallDirs(i.fs, paths.Join(plan.Prefix, plan.BinaryDestDir)); err != nil {
		return err
	}
	return filesystem.InstallFile(i.fs, plan.BinaryBuildPath, paths.Join(plan.Prefix, plan.BinaryDestDir, binaryName))
}

func (i *Installer) installData(plan types.InstallPlan) error {
	i.status(MsgStepData)
	shareDest := paths.Join(plan.Prefix, plan.ShareDestDir)
	if err := filesystem.InstallDirs(i.fs, shareDest); err != nil {
		return err
	}
	src := i.cfg.SourcePath(shareSourceDir)
	return filesystem.InstallTree(i.fs, src, shareDest, filesystem.ScanTree(i.fs, src))
}

// installDocs flattens the documentation files into the doc directory;
// the manual keeps its own subdirectory.
func (i *Installer) installDocs(plan types.InstallPlan, docs []string) error {
	i.status(MsgStepDocs)
	docDest := paths.Join(plan.Prefix, plan.DocDestDir)
	if err := filesystem.InstallDirs(i.fs, docDest); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := filesystem.InstallFile(i.fs, i.cfg.SourcePath(doc), paths.Join(docDest, path.Base(doc))); err != nil {
			return err
		}
	}

	manualDest := paths.Join(docDest, manualDestDir)
	if err := filesystem.InstallDirs(i.fs, manualDest); err != nil {
		return err
	}
	manualSrc := i.cfg.SourcePath(manualSourceDir)
	entries, err := i.fs.ReadDir(manualSrc)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read manual directory %s", manualSrc).
			WithDetail("path", manualSrc)
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].Name() < entries[b].Name() })
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !ManualExtensions[filepath.Ext(name)] {
			continue
		}
		if err := filesystem.InstallFile(i.fs, filepath.Join(manualSrc, name), paths.Join(manualDest, name)); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) installCBIOS(plan types.InstallPlan) error {
	if !plan.CBIOS {
		return nil
	}
	i.status(MsgStepCBIOS)
	if err := filesystem.InstallFile(i.fs, i.cfg.SourcePath(cbiosReadme), paths.Join(plan.Prefix, plan.DocDestDir, cbiosReadmeDest)); err != nil {
		return err
	}
	machinesDest := paths.Join(plan.Prefix, plan.ShareDestDir, machinesDestDir)
	if err := filesystem.InstallDirs(i.fs, machinesDest); err != nil {
		return err
	}
	src := i.cfg.SourcePath(cbiosSourceDir)
	return filesystem.InstallTree(i.fs, src, machinesDest, filesystem.ScanTree(i.fs, src))
}

func (i *Installer) installSymlinks(plan types.InstallPlan, binaryName string) error {
	if !i.caps.Symlinks {
		i.logger.Debug().Msg("Platform has no symlinks, skipping aliases")
		return nil
	}
	i.status(MsgStepSymlinks)

	machinesDest := paths.Join(plan.Prefix, plan.ShareDestDir, machinesDestDir)
	for _, alias := range MachineAliases {
		if err := filesystem.InstallSymlink(i.fs, alias.Machine, paths.Join(machinesDest, alias.Alias)); err != nil {
			return err
		}
	}

	if plan.SymlinkForBinary && plan.LiveRoot() {
		i.linkBinaryOnPath(plan, binaryName)
	}
	return nil
}

func (i *Installer) status(msg string) {
	if i.theme != nil {
		i.theme.Println(style.Step, msg)
	}
}
