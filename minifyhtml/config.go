package minifyhtml

import (
	"path/filepath"

	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/json"
	"github.com/leeforge/plminify/plugin"
	"github.com/leeforge/plminify/utils"
)

const (
	componentsDir = "patternlab-components"
	packagesDir   = "packages"
	vendorDir     = "pattern-lab"
)

// Frontend returns the descriptor the pattern library UI loads for this
// plugin. Options are left empty and filled from host state at init.
func Frontend() plugin.Descriptor {
	return plugin.Descriptor{
		Name:        vendorDir + "/" + PluginName,
		Templates:   []string{},
		Stylesheets: []string{},
		Javascripts: []string{
			componentsDir + "/" + vendorDir + "/" + PluginName + "/js/" + PluginName + ".js",
		},
		OnReady:  "Plugin" + utils.UpperCamelCase(shortName) + ".init()",
		Callback: "",
	}
}

// ConfigPath is where the serialized descriptor for pluginName is written.
func ConfigPath(publicRoot, pluginName string) string {
	return filepath.Join(publicRoot, componentsDir, packagesDir, pluginName+".json")
}

// AssetRoot is the folder pluginName's frontend files are published under.
func AssetRoot(publicRoot, pluginName string) string {
	return filepath.Join(publicRoot, componentsDir, vendorDir, pluginName)
}

// WriteConfig serializes d with two-space indentation to its ConfigPath,
// creating missing folders.
func WriteConfig(publicRoot, pluginName string, d *plugin.Descriptor) (string, error) {
	path := ConfigPath(publicRoot, pluginName)

	data, err := json.MarshalPretty(d)
	if err != nil {
		return path, apperrors.NewIO("encode", path, err).WithDetail(apperrors.DetailPlugin, pluginName)
	}

	if err := utils.OutputFile(path, data); err != nil {
		return path, apperrors.NewIO("write", path, err).WithDetail(apperrors.DetailPlugin, pluginName)
	}
	return path, nil
}
