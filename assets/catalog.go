package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrNoAssets = errors.New("no image assets found")

// Entry is one decoded asset image.
type Entry struct {
	Key    string
	Path   string
	Image  image.Image
	Width  int
	Height int
}

// Catalog maps asset keys (file stems) to images. It is read-only once
// loaded; keys are kept sorted for a stable palette order.
type Catalog struct {
	entries map[string]*Entry
	keys    []string
}

func isImageFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".bmp", ".webp":
		return true
	}
	return false
}

// KeyFor returns the asset key for a file: its base name without extension.
func KeyFor(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// LoadDir scans dir recursively for png, bmp and webp images.
func LoadDir(dir string) (*Catalog, error) {
	c, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load assets from %s: %w", dir, err)
	}
	return c, nil
}

// LoadFS is LoadDir over any file system. When two files share a stem the
// first in walk order wins.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]*Entry)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImageFile(p) {
			return nil
		}
		key := KeyFor(p)
		if _, dup := c.entries[key]; dup {
			return nil
		}
		img, err := decode(fsys, p)
		if err != nil {
			return err
		}
		b := img.Bounds()
		c.entries[key] = &Entry{Key: key, Path: p, Image: img, Width: b.Dx(), Height: b.Dy()}
		c.keys = append(c.keys, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(c.keys) == 0 {
		return nil, ErrNoAssets
	}
	sort.Strings(c.keys)
	return c, nil
}

func decode(fsys fs.FS, p string) (image.Image, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return img, nil
}

func (c *Catalog) Len() int { return len(c.keys) }

// Keys returns the asset keys in palette order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *Catalog) Get(key string) (*Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// AssetSize reports the pixel size of an asset.
func (c *Catalog) AssetSize(key string) (int, int, bool) {
	e, ok := c.entries[key]
	if !ok {
		return 0, 0, false
	}
	return e.Width, e.Height, true
}
