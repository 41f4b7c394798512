package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/openmsx/openmsx-install/internal/cli"
	"github.com/openmsx/openmsx-install/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd(io.Discard, io.Discard)

	header := &doc.GenManHeader{
		Title:   "OPENMSX-INSTALL",
		Section: "1",
		Source:  "openmsx-install " + version.Version,
		Manual:  "openMSX build tools",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
