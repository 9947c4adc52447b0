package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileforge/assets"
)

// imageCache uploads catalog images to the GPU on first use.
type imageCache struct {
	catalog  *assets.Catalog
	images   map[string]*ebiten.Image
	fallback *ebiten.Image
}

func newImageCache(catalog *assets.Catalog, tileSize int) *imageCache {
	missing := ebiten.NewImage(tileSize, tileSize)
	missing.Fill(color.RGBA{R: 255, B: 255, A: 255})
	return &imageCache{
		catalog:  catalog,
		images:   make(map[string]*ebiten.Image),
		fallback: missing,
	}
}

// get returns the image for key, or a magenta square for unknown assets.
func (c *imageCache) get(key string) *ebiten.Image {
	if img, ok := c.images[key]; ok {
		return img
	}
	entry, ok := c.catalog.Get(key)
	if !ok {
		return c.fallback
	}
	img := ebiten.NewImageFromImage(entry.Image)
	c.images[key] = img
	return img
}
