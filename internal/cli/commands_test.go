package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/openmsx/openmsx-install/internal/cli"
	"github.com/openmsx/openmsx-install/internal/version"
	"github.com/openmsx/openmsx-install/pkg/errors"
	"github.com/openmsx/openmsx-install/pkg/installer"
	"github.com/openmsx/openmsx-install/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	code   int
	stdout string
	stderr string
}

type env struct {
	src    string
	dest   string
	binary string
}

func setup(t *testing.T, tree testutil.SourceTree) *env {
	t.Helper()

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CONFIG_DIRS", configHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "OPENMSX_INSTALL_") {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}

	src := t.TempDir()
	return &env{
		src:    src,
		dest:   t.TempDir(),
		binary: tree.Write(t, src),
	}
}

func (e *env) args(verbose, cbios string, flags ...string) []string {
	args := append([]string{"--source-root", e.src}, flags...)
	return append(args, e.dest, "/usr/bin", "/usr/share/openmsx", "/usr/share/doc/openmsx",
		e.binary, "linux", verbose, cbios)
}

func execute(args []string) run {
	var stdout, stderr bytes.Buffer
	code := cli.Execute(args, &stdout, &stderr)
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestWrongArgumentCount(t *testing.T) {
	setup(t, testutil.DefaultSourceTree())

	r := execute([]string{"a", "b", "c"})

	assert.Equal(t, errors.ExitUsageError, r.code)
	assert.Contains(t, r.stderr, "Usage:")
	assert.Contains(t, r.stderr, "DESTDIR INSTALL_BINARY_DIR INSTALL_SHARE_DIR INSTALL_DOC_DIR")
	assert.Contains(t, r.stderr, "expected 8 arguments, got 3")
	assert.Empty(t, r.stdout)
}

func TestUnknownFlag(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())

	r := execute(e.args("false", "false", "--bogus"))

	assert.Equal(t, errors.ExitUsageError, r.code)
	assert.Contains(t, r.stderr, "Usage:")
	assert.Empty(t, testutil.Files(t, e.dest))
}

func TestInvalidBoolean(t *testing.T) {
	tests := []struct {
		name    string
		verbose string
		cbios   string
		want    string
	}{
		{"verbose", "maybe", "false", "INSTALL_VERBOSE"},
		{"cbios", "true", "sometimes", "INSTALL_CONTRIB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t, testutil.DefaultSourceTree())
			logFile := filepath.Join(e.dest, "install.log")

			r := execute(e.args(tt.verbose, tt.cbios, "--log-file", logFile))

			assert.Equal(t, errors.ExitUsageError, r.code)
			assert.Contains(t, r.stderr, "Invalid argument: "+tt.want)
			assert.Empty(t, r.stdout)
			assert.Empty(t, testutil.Files(t, e.dest))
		})
	}
}

func TestInvalidSymlinkForBinary(t *testing.T) {
	tree := testutil.DefaultSourceTree()
	tree.SymlinkForBinary = "perhaps"
	e := setup(t, tree)

	r := execute(e.args("false", "false"))

	assert.Equal(t, errors.ExitUsageError, r.code)
	assert.Contains(t, r.stderr, "Invalid argument: SYMLINK_FOR_BINARY")
	assert.Empty(t, testutil.Files(t, e.dest))
}

func TestMissingCustomDescriptor(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	require.NoError(t, os.Remove(filepath.Join(e.src, "build", "custom.mk")))

	r := execute(e.args("false", "false"))

	assert.Equal(t, errors.ExitInstallError, r.code)
	assert.Contains(t, r.stderr, "Installation failed:")
	assert.Empty(t, testutil.Files(t, e.dest))
}

func TestVerboseInstall(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())

	r := execute(e.args("True", "False"))

	require.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.True(t, strings.HasPrefix(r.stdout, "Installing openMSX:\n"+installer.MsgStepExecutable+"\n"))
	assert.Contains(t, r.stdout, "Installation complete... have fun!")
	assert.Contains(t, r.stdout, "/usr/share/openmsx/systemroms")
	assert.Contains(t, r.stdout, "~/.openMSX/share/systemroms")
	assert.NotContains(t, r.stdout, installer.MsgStepCBIOS)

	assert.True(t, testutil.FileExists(t, filepath.Join(e.dest, "usr", "bin", "openmsx")))
	assert.True(t, testutil.FileExists(t, filepath.Join(e.dest, "usr", "share", "openmsx", "init.tcl")))
	assert.False(t, testutil.FileExists(t, filepath.Join(e.dest, "usr", "share", "doc", "openmsx", "cbios.txt")))
}

func TestQuietInstall(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())

	r := execute(e.args("no", "yes"))

	require.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.NotContains(t, r.stdout, "Installing openMSX:")
	assert.NotContains(t, r.stdout, "Installation complete")
	assert.Contains(t, r.stdout, installer.MsgStepData)
	assert.Contains(t, r.stdout, installer.MsgStepCBIOS)
	assert.True(t, testutil.FileExists(t, filepath.Join(e.dest, "usr", "share", "doc", "openmsx", "cbios.txt")))
}

func TestMissingBinary(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	require.NoError(t, os.Remove(e.binary))

	r := execute(e.args("1", "0"))

	assert.Equal(t, errors.ExitInstallError, r.code)
	assert.Contains(t, r.stderr, "Installation failed: cannot install "+e.binary)
	assert.NotContains(t, r.stdout, "Installation complete")
	assert.False(t, testutil.DirExists(t, filepath.Join(e.dest, "usr", "share", "openmsx")))
}

func TestMalformedPlatformDescriptorFailsInstall(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	testutil.CreateFile(t, e.src, "build/platform-linux.mk", "EXEEXT:=$(broken\n")

	r := execute(e.args("false", "false"))

	assert.Equal(t, errors.ExitInstallError, r.code)
	assert.Contains(t, r.stderr, "Installation failed: malformed descriptor")
}

func TestSourceRootFromEnvironment(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	t.Setenv("OPENMSX_INSTALL_SOURCE_ROOT", e.src)

	args := []string{e.dest, "bin", "share", "doc", e.binary, "linux", "false", "false"}
	r := execute(args)

	require.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.True(t, testutil.FileExists(t, filepath.Join(e.dest, "doc", "README")))
}

func TestConfigFile(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	cfg := testutil.CreateFile(t, t.TempDir(), "config.toml",
		fmt.Sprintf("[source]\nroot = %q\n", e.src))

	args := []string{"--config", cfg, e.dest, "bin", "share", "doc", e.binary, "linux", "false", "false"}
	r := execute(args)
	require.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.True(t, testutil.FileExists(t, filepath.Join(e.dest, "doc", "manual", "index.html")))

	r = execute(append([]string{"--config", filepath.Join(e.dest, "missing.toml")}, args[2:]...))
	assert.Equal(t, errors.ExitInstallError, r.code)
}

func TestLogFile(t *testing.T) {
	e := setup(t, testutil.DefaultSourceTree())
	logFile := filepath.Join(t.TempDir(), "install.log")

	r := execute(e.args("false", "false", "-vv", "--log-file", logFile))

	require.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Contains(t, testutil.ReadFile(t, logFile), "Starting installation")
}

func TestVersionFlag(t *testing.T) {
	setup(t, testutil.DefaultSourceTree())

	r := execute([]string{"--version"})

	assert.Equal(t, errors.ExitOK, r.code)
	assert.Contains(t, r.stdout, version.Version)
}
