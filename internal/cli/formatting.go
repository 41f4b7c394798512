package cli

import (
	"io"
	"text/template"

	"github.com/openmsx/openmsx-install/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(w io.Writer, s string) string {
	// Only apply formatting if output is a terminal
	if !style.ColorEnabled(w) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting(w io.Writer) {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold": func(s string) string { return formatBold(w, s) },
	})
}
