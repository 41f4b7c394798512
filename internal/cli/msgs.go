package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootUse   = "openmsx-install DESTDIR INSTALL_BINARY_DIR INSTALL_SHARE_DIR INSTALL_DOC_DIR BINARY_FULL OPENMSX_TARGET_OS INSTALL_VERBOSE INSTALL_CONTRIB"
	MsgRootShort = "Install a built openMSX"

	// Status messages
	MsgInstalling = "Installing openMSX:"
	MsgComplete   = "Installation complete... have fun!"

	// Error messages
	MsgUsagePrefix     = "Usage:"
	MsgInvalidArgument = "Invalid argument: %s"
	MsgInstallFailed   = "Installation failed: %s"
	MsgErrArgCount     = "expected %d arguments, got %d"

	// Flag descriptions
	MsgFlagVerbose    = "Increase log verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default: $XDG_CONFIG_HOME/openmsx-install/config.toml)"
	MsgFlagSourceRoot = "Root of the openMSX source tree"
	MsgFlagLogFile    = "Also write logs to this file"
)

// Long messages loaded from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/rom-notice.txt
	msgROMNoticeRaw string
	// MsgROMNotice takes the share directory.
	MsgROMNotice = strings.TrimSpace(msgROMNoticeRaw)
)
