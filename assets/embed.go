package assets

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed builtin/*.png
var builtinFS embed.FS

// Builtin returns the placeholder assets compiled into the binary. They are
// used when no assets directory is available.
func Builtin() *Catalog {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		log.Fatalf("embed: builtin assets: %v", err)
	}
	c, err := LoadFS(sub)
	if err != nil {
		log.Fatalf("embed: load builtin assets: %v", err)
	}
	return c
}
