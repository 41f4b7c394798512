package filesystem

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/openmsx/openmsx-install/pkg/types"
)

var sfs = synthfs.New()

// opsFS lets synthfs operations run on any backend. Paths go through
// unchanged, so absolute paths work on the OS and in memory alike.
type opsFS struct {
	types.FS
}

var _ synthfs.FullFileSystem = opsFS{}

func (o opsFS) RemoveAll(name string) error {
	return &fs.PathError{Op: "removeall", Path: name, Err: stderrors.ErrUnsupported}
}

func (o opsFS) Rename(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: stderrors.ErrUnsupported}
}

// runOps executes ops in order. The first failure stops the run and
// nothing is rolled back.
func runOps(fsys types.FS, ops ...synthfs.Operation) error {
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false
	_, err := synthfs.RunWithOptions(context.Background(), opsFS{fsys}, options, ops...)
	return err
}
