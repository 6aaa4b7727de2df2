package config

import (
	"path/filepath"
	"strings"

	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/leeforge/plminify/logging"
	"github.com/leeforge/plminify/plugin"
	"github.com/leeforge/plminify/runtime"
	"go.uber.org/zap"
)

var validator = validatorV10.New()

// HostConfig is the pattern library configuration the host and its plugins
// read.
type HostConfig struct {
	Paths PathsConfig `mapstructure:"paths"`
	// Plugins stays nil when the file has no plugins section.
	Plugins map[string]PluginEntry `mapstructure:"plugins"`
	Logging logging.Config         `mapstructure:"logging"`
	Serve   ServeConfig            `mapstructure:"serve"`
}

type PathsConfig struct {
	Public PublicPaths `mapstructure:"public"`
}

type PublicPaths struct {
	Root     string `mapstructure:"root" validate:"required"`
	Patterns string `mapstructure:"patterns"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr" default:":3000" validate:"required"`
}

// PluginEntry is one plugin's section. Options and PluginOptions are passed
// through to the plugin untouched.
type PluginEntry struct {
	Enabled       bool `mapstructure:"enabled"`
	Initialized   bool `mapstructure:"initialized"`
	Options       any  `mapstructure:"options"`
	PluginOptions any  `mapstructure:"pluginOptions"`
}

// Validate implements Validator.
func (c *HostConfig) Validate() error {
	return validator.Struct(c)
}

// BindRaw restores plugin option values that decode as nil but are present
// in the file, such as `"options": {}`. Values already decoded are kept, so
// environment overrides still win.
func (c *HostConfig) BindRaw(raw map[string]any) error {
	section, _ := lookupFold(raw, "plugins")
	plugins, ok := section.(map[string]any)
	if !ok {
		return nil
	}

	for name, value := range plugins {
		fields, ok := value.(map[string]any)
		if !ok {
			continue
		}

		key := strings.ToLower(name)
		entry, ok := c.Plugins[key]
		if !ok {
			if c.Plugins == nil {
				c.Plugins = make(map[string]PluginEntry)
			}
			// A section holding only empty values is dropped by viper.
			if err := mapstructure.Decode(fields, &entry); err != nil {
				return err
			}
		}
		if v, ok := lookupFold(fields, "options"); ok && entry.Options == nil {
			entry.Options = v
		}
		if v, ok := lookupFold(fields, "pluginOptions"); ok && entry.PluginOptions == nil {
			entry.PluginOptions = v
		}
		c.Plugins[key] = entry
	}
	return nil
}

// Record converts the entry into the host's plugin record.
func (e PluginEntry) Record() plugin.PluginRecord {
	return plugin.PluginRecord{
		Enabled:       e.Enabled,
		Initialized:   e.Initialized,
		Options:       plugin.NewOptions(e.Options),
		PluginOptions: plugin.NewOptions(e.PluginOptions),
	}
}

// Runtime builds the runtime configuration. Relative paths are resolved
// against baseDir.
func (c *HostConfig) Runtime(baseDir string, logger *zap.Logger) runtime.Config {
	cfg := runtime.Config{
		Paths: plugin.Paths{
			PublicRoot:     resolve(baseDir, c.Paths.Public.Root),
			PublicPatterns: resolve(baseDir, c.Paths.Public.Patterns),
		},
		Logger: logger,
	}

	if c.Plugins != nil {
		cfg.Plugins = make(map[string]plugin.PluginRecord, len(c.Plugins))
		for name, entry := range c.Plugins {
			cfg.Plugins[name] = entry.Record()
		}
	}
	return cfg
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
