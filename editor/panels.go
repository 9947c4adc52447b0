package editor

import (
	"math"

	"github.com/milk9111/tileforge/levels"
)

// PaletteCell is the side of one square palette cell in screen pixels.
func (c *Controller) PaletteCell() float64 {
	return c.Layout.Palette.W / float64(c.opts.AssetsPerRow)
}

func (c *Controller) paletteKeys() []string {
	if c.opts.Catalog == nil {
		return nil
	}
	return c.opts.Catalog.Keys()
}

// PaletteRect is the screen cell of the i-th catalog asset, after scrolling.
func (c *Controller) PaletteRect(i int) Rect {
	cell := c.PaletteCell()
	per := c.opts.AssetsPerRow
	p := c.Layout.Palette
	return Rect{
		X: p.X + float64(i%per)*cell,
		Y: p.Y + float64(i/per)*cell - c.PaletteScroll,
		W: cell,
		H: cell,
	}
}

// PaletteAssetAt returns the asset under a screen point in the palette.
func (c *Controller) PaletteAssetAt(x, y float64) (string, bool) {
	p := c.Layout.Palette
	if !p.Contains(x, y) {
		return "", false
	}
	cell := c.PaletteCell()
	col := int((x - p.X) / cell)
	row := int(math.Floor((y - p.Y + c.PaletteScroll) / cell))
	if col >= c.opts.AssetsPerRow || row < 0 {
		return "", false
	}
	keys := c.paletteKeys()
	i := row*c.opts.AssetsPerRow + col
	if i >= len(keys) {
		return "", false
	}
	return keys[i], true
}

func (c *Controller) maxPaletteScroll() float64 {
	n := len(c.paletteKeys())
	rows := (n + c.opts.AssetsPerRow - 1) / c.opts.AssetsPerRow
	return math.Max(0, float64(rows)*c.PaletteCell()-c.Layout.Palette.H)
}

func (c *Controller) visibleRows() int {
	return int(c.Layout.EntityList.H / c.Layout.RowHeight)
}

// EntityRows returns the off-grid objects shown in the entity list, in
// draw order, starting at the scroll position.
func (c *Controller) EntityRows() []*levels.OffGridObject {
	objs := c.doc.OffGrid.Objects()
	start := c.ListScroll
	if start > len(objs) {
		start = len(objs)
	}
	objs = objs[start:]
	if n := c.visibleRows(); len(objs) > n {
		objs = objs[:n]
	}
	return objs
}

// EntityAt returns the object on the entity list row at screen height y.
func (c *Controller) EntityAt(y float64) (*levels.OffGridObject, bool) {
	row := int((y - c.Layout.EntityList.Y) / c.Layout.RowHeight)
	rows := c.EntityRows()
	if row < 0 || row >= len(rows) {
		return nil, false
	}
	return rows[row], true
}
