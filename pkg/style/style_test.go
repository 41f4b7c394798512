package style_test

import (
	"bytes"
	"testing"

	"github.com/openmsx/openmsx-install/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	config, err := style.ParseConfig([]byte(`
colors:
  red:
    light: "#ff0000"
    dark: "#ff5555"
styles:
  Error:
    bold: true
    foreground: red
`))
	require.NoError(t, err)
	assert.Equal(t, "#ff5555", config.Colors["red"].Dark)
	assert.True(t, config.Styles["Error"].Bold)
}

func TestParseConfigUnknownColor(t *testing.T) {
	_, err := style.ParseConfig([]byte(`
styles:
  Error:
    foreground: missing
`))
	assert.Error(t, err)
}

func TestParseConfigInvalidYAML(t *testing.T) {
	_, err := style.ParseConfig([]byte("styles: [unclosed"))
	assert.Error(t, err)
}

func TestThemeNonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	theme := style.NewTheme(&buf)

	theme.Println(style.Header, "Installing openMSX:")
	theme.Println(style.Step, "  Executable...")
	theme.Println("Unknown", "plain text")

	assert.Equal(t, "Installing openMSX:\n  Executable...\nplain text\n", buf.String())
}

func TestPlainThemeRender(t *testing.T) {
	var buf bytes.Buffer
	theme := style.NewPlainTheme(&buf)
	assert.Equal(t, "done", theme.Render(style.Success, "done"))
	assert.Same(t, &buf, theme.Writer())
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, style.ColorEnabled(&buf))
	assert.False(t, style.IsTerminal(&buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, style.ColorEnabled(&buf))
}
