// Package web holds the page assets and HTML fragments of the sector.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html style.css script.js templates/*.html
var embedded embed.FS

// EmbeddedFS returns the compiled-in copy of the assets.
func EmbeddedFS() fs.FS {
	return embedded
}
