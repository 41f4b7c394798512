// Package style defines the visual styling of the installer's status lines.
//
// Styles have semantic names (Header, Step, Success, Error, Notice) and
// adaptive colours that follow the terminal's light or dark background.
// Definitions live in the embedded styles.yaml. Output that is not a
// terminal, or any output when NO_COLOR is set, is rendered as plain text.
package style

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Semantic style names
const (
	Header  = "Header"
	Step    = "Step"
	Success = "Success"
	Error   = "Error"
	Notice  = "Notice"
)

// ParseConfig parses a styles definition.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	for name, def := range config.Styles {
		for _, ref := range []string{def.Foreground, def.Background} {
			if ref == "" {
				continue
			}
			if _, ok := config.Colors[ref]; !ok {
				return nil, fmt.Errorf("style %s uses unknown color %q", name, ref)
			}
		}
	}
	return &config, nil
}

// buildStyles constructs lipgloss styles bound to a renderer
func buildStyles(r *lipgloss.Renderer, config *Config) map[string]lipgloss.Style {
	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := r.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Foreground != "" {
			style = style.Foreground(colors[def.Foreground])
		}
		if def.Background != "" {
			style = style.Background(colors[def.Background])
		}
		styles[name] = style
	}
	return styles
}
