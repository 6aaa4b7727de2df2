package main

import (
	"github.com/leeforge/plminify/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootConfig holds flags shared by every subcommand.
type rootConfig struct {
	configDir string
	mode      string
	logLevel  string
}

// NewRootCmd creates the root command for the plminify CLI.
func NewRootCmd() *cobra.Command {
	rc := &rootConfig{}

	cmd := &cobra.Command{
		Use:   "plminify",
		Short: "Minify pattern library HTML output",
		Long: `plminify runs the plugin-node-minify-html plugin against a pattern
library's public folder: it publishes the plugin's frontend files and
minifies every written pattern.`,
		SilenceUsage: true,
	}

	rc.bindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newBuildCmd(rc))
	cmd.AddCommand(newServeCmd(rc))

	return cmd
}

func (rc *rootConfig) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&rc.configDir, "config", "", "folder holding patternlab-config.json")
	flags.StringVar(&rc.mode, "mode", "", "configuration mode (development, production, test)")
	flags.StringVar(&rc.logLevel, "log-level", "", "override logging.level")
}

// loaderOptions resolves configuration options from the flags.
func (rc *rootConfig) loaderOptions() config.Options {
	opts := config.DefaultOptions()
	if rc.configDir != "" {
		opts.BasePath = rc.configDir
	}
	if rc.mode != "" {
		opts.Mode = config.ParseMode(rc.mode)
	}
	return opts
}

// load reads and validates the host configuration.
func (rc *rootConfig) load() (*config.Loader, *config.HostConfig, error) {
	loader, err := config.NewLoader(rc.loaderOptions())
	if err != nil {
		return nil, nil, err
	}

	var hc config.HostConfig
	if err := loader.Bind(&hc); err != nil {
		return nil, nil, err
	}
	if rc.logLevel != "" {
		hc.Logging.Level = rc.logLevel
	}
	return loader, &hc, nil
}
