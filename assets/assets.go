// Package assets embeds the GLSL sources shipped with the tutorials.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders/*.vert shaders/*.frag
var files embed.FS

// Shaders is the built-in shader directory.
func Shaders() fs.FS {
	sub, err := fs.Sub(files, "shaders")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}
