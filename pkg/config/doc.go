// Package config handles the installer's own settings.
//
// Settings are layered with koanf, lowest priority first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file: --config, or
//     $XDG_CONFIG_HOME/openmsx-install/config.toml when present
//  3. OPENMSX_INSTALL_* environment variables, e.g.
//     OPENMSX_INSTALL_SOURCE_ROOT for source.root
//  4. command-line flag overrides
//
// The build descriptors (*.mk) are not part of this configuration; they
// are read by package makevars.
package config
