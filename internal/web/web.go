// Package web embeds the browser client: login, registration and the
// dashboard with the career predictor.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// FS returns the static asset tree rooted at the site root.
func FS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves the embedded client.
func Handler() http.Handler {
	return http.FileServer(http.FS(FS()))
}
