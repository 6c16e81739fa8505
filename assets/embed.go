// Package assets embeds the static files served under /static/.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var files embed.FS

// FS returns the static files rooted at the static directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// "static" is embedded above; Sub only fails on an invalid name.
		panic(err)
	}
	return sub
}

// Handler serves the static files.
func Handler() http.Handler {
	return http.FileServerFS(FS())
}
