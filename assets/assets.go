// Package assets bundles the plugin's built frontend files.
//
// Files live under dist/; the leading dist segment is a packaging artifact
// and is dropped when the files are published into the site.
package assets

import "embed"

// Dist is the directory every bundled file lives under.
const Dist = "dist"

//go:embed all:dist
var FS embed.FS
