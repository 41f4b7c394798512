package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/openmsx/openmsx-install/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OPENMSX_INSTALL_"

// UserConfigFile is searched for in the XDG config directories.
const UserConfigFile = "openmsx-install/config.toml"

// Config is the installer configuration
type Config struct {
	Source      Source      `koanf:"source"`
	Descriptors Descriptors `koanf:"descriptors"`
	Symlink     Symlink     `koanf:"symlink"`
	Log         Log         `koanf:"log"`
}

// Source locates the source tree
type Source struct {
	Root string `koanf:"root"`
}

// Descriptors are the make-style files read from the source tree
type Descriptors struct {
	Platform string `koanf:"platform"`
	Docs     string `koanf:"docs"`
	Custom   string `koanf:"custom"`
}

// Symlink configures the symlink to the installed binary
type Symlink struct {
	Candidates []string `koanf:"candidates"`
}

// Log configures file logging
type Log struct {
	File string `koanf:"file"`
}

// LoadOptions selects the config file and flag overrides.
type LoadOptions struct {
	// ConfigFile must exist when set.
	ConfigFile string
	// Overrides uses dotted keys, e.g. "source.root".
	Overrides map[string]interface{}
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the configuration from all layers. It only reads files.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}

	// 2. User config file
	configPath, err := userConfigPath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
				WithDetail("path", configPath)
		}
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Source.Root == "" {
		return errors.New(errors.ErrConfigValid, "source.root must not be empty")
	}
	if strings.Count(c.Descriptors.Platform, "%s") != 1 {
		return errors.Newf(errors.ErrConfigValid, "descriptors.platform must contain %%s exactly once: %q", c.Descriptors.Platform)
	}
	if c.Descriptors.Docs == "" || c.Descriptors.Custom == "" {
		return errors.New(errors.ErrConfigValid, "descriptors.docs and descriptors.custom must be set")
	}
	return nil
}

// SourcePath resolves a path relative to the source root.
func (c *Config) SourcePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Source.Root, filepath.FromSlash(rel))
}

// PlatformDescriptor returns the descriptor path for the target OS.
func (c *Config) PlatformDescriptor(targetOS string) string {
	return c.SourcePath(strings.Replace(c.Descriptors.Platform, "%s", targetOS, 1))
}

func userConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	// Not finding a user config is normal.
	if found, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
		return found, nil
	}
	return "", nil
}
