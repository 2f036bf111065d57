// Package assets carries the data files compiled into the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed songs.json
var FS embed.FS

// SongsJSON returns the embedded sample song catalog.
func SongsJSON() ([]byte, error) {
	return fs.ReadFile(FS, "songs.json")
}
