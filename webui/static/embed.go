// Package static provides the embedded panel UI assets.
package static

import (
	"embed"
	"io/fs"
)

// PanelFS contains the embedded panel assets: panel.html is the single-page
// panel UI with inline styling and script.
//
//go:embed panel.html
var PanelFS embed.FS

// GetFS returns the embedded filesystem.
func GetFS() fs.FS {
	return PanelFS
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(name string) ([]byte, error) {
	return PanelFS.ReadFile(name)
}
