package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/openmsx/openmsx-install/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"empty becomes root", "", "/"},
		{"root stays root", "/", "/"},
		{"trailing separator added", "/tmp/stage", "/tmp/stage/"},
		{"existing separator kept", "/tmp/stage/", "/tmp/stage/"},
		{"duplicate separators collapsed", "/tmp/stage//", "/tmp/stage/"},
		{"relative staging dir", "stage", "stage/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.NormalizePrefix(tt.prefix))
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		elems  []string
		want   string
	}{
		{"live root with absolute dir", "/", []string{"/usr/bin", "openmsx"}, "/usr/bin/openmsx"},
		{"staging with absolute dir", "/tmp/stage/", []string{"/usr/bin", "openmsx"}, "/tmp/stage/usr/bin/openmsx"},
		{"relative dest dir", "/", []string{"bin", "openmsx"}, "/bin/openmsx"},
		{"trailing separators on dir", "/tmp/stage/", []string{"/opt/openMSX/share/", "machines"}, "/tmp/stage/opt/openMSX/share/machines"},
		{"empty components skipped", "/tmp/", []string{"", "doc", ""}, "/tmp/doc"},
		{"prefix only", "/tmp/stage/", nil, "/tmp/stage/"},
		{"empty prefix", "", []string{"doc", "manual"}, "doc/manual"},
		{"dot segments preserved", "/", []string{"/opt/../opt", "x"}, "/opt/../opt/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), paths.Join(tt.prefix, tt.elems...))
		})
	}
}

func TestSame(t *testing.T) {
	assert.True(t, paths.Same("/usr/local/bin", "/usr/local/bin/"))
	assert.True(t, paths.Same("/usr/local/./bin", "/usr/local/bin"))
	assert.False(t, paths.Same("/usr/local/bin", "/usr/bin"))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := paths.ExpandHome("~/bin")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bin"), got)

	got, err = paths.ExpandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = paths.ExpandHome("/usr/local/bin")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin", got)

	got, err = paths.ExpandHome("~other/bin")
	require.NoError(t, err)
	assert.Equal(t, "~other/bin", got)
}
