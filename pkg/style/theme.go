package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Theme renders styled lines to one writer.
type Theme struct {
	out    io.Writer
	styles map[string]lipgloss.Style
	plain  bool
}

// NewTheme binds the embedded styles to w.
func NewTheme(w io.Writer) *Theme {
	config, err := ParseConfig(stylesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded styles: %v", err))
	}
	return newTheme(w, config, !ColorEnabled(w))
}

// NewPlainTheme never emits escape sequences.
func NewPlainTheme(w io.Writer) *Theme {
	config, err := ParseConfig(stylesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded styles: %v", err))
	}
	return newTheme(w, config, true)
}

func newTheme(w io.Writer, config *Config, plain bool) *Theme {
	var opts []termenv.OutputOption
	if plain {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	renderer := lipgloss.NewRenderer(w, opts...)
	return &Theme{
		out:    w,
		styles: buildStyles(renderer, config),
		plain:  plain,
	}
}

// Render styles text with the named style. Unknown names and plain themes
// return text unchanged.
func (t *Theme) Render(name, text string) string {
	style, ok := t.styles[name]
	if !ok || t.plain {
		return text
	}
	return style.Render(text)
}

// Println writes one styled line.
func (t *Theme) Println(name, text string) {
	fmt.Fprintln(t.out, t.Render(name, text))
}

// Writer returns the writer the theme renders to.
func (t *Theme) Writer() io.Writer {
	return t.out
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
