package editor

import "github.com/jakecoffman/cp"

// Camera is the scroll offset of the viewport in editor units. Panning is
// unbounded.
type Camera struct {
	ScrollX float64
	ScrollY float64
}

func (c *Camera) Pan(dx, dy float64) {
	c.ScrollX += dx
	c.ScrollY += dy
}

// ScreenToScaled maps a screen point to editor space:
//
//	scaled = (screen - viewport_origin) * scaled_size / viewport_size - scroll
func (c Camera) ScreenToScaled(l Layout, x, y float64) cp.Vector {
	return cp.Vector{
		X: ((x - l.Viewport.X) * l.ScaledW / l.Viewport.W) - c.ScrollX,
		Y: ((y - l.Viewport.Y) * l.ScaledH / l.Viewport.H) - c.ScrollY,
	}
}

// ScaledToScreen is the inverse of ScreenToScaled.
func (c Camera) ScaledToScreen(l Layout, p cp.Vector) (float64, float64) {
	zx, zy := l.Zoom()
	return (p.X+c.ScrollX)*zx + l.Viewport.X, (p.Y+c.ScrollY)*zy + l.Viewport.Y
}
