package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileforge/config"
	"github.com/milk9111/tileforge/editor"
	"github.com/milk9111/tileforge/levels"
	"golang.org/x/image/font/gofont/goregular"
)

// renderer draws the controller state. It only reads from the document.
type renderer struct {
	face   text.Face
	colors config.Colors
	images *imageCache
}

func newFontFace(size float64) (text.Face, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &text.GoTextFace{Source: s, Size: size}, nil
}

func (r *renderer) measure(s string) float64 {
	return text.Advance(s, r.face)
}

func withAlpha(c color.Color, a uint8) color.Color {
	cr, cg, cb, _ := c.RGBA()
	return color.NRGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: a}
}

func subImage(screen *ebiten.Image, rc editor.Rect) *ebiten.Image {
	rect := image.Rect(int(rc.X), int(rc.Y), int(math.Ceil(rc.Right())), int(math.Ceil(rc.Bottom())))
	return screen.SubImage(rect).(*ebiten.Image)
}

func fillRect(dst *ebiten.Image, rc editor.Rect, clr color.Color) {
	vector.FillRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), clr, false)
}

func strokeRect(dst *ebiten.Image, rc editor.Rect, clr color.Color) {
	vector.StrokeRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), 2, clr, false)
}

func (r *renderer) label(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, r.face, op)
}

func (r *renderer) Draw(screen *ebiten.Image, c *editor.Controller) {
	screen.Fill(r.colors.Screen)
	r.drawViewport(subImage(screen, c.Layout.Viewport), c)
	r.drawPalette(subImage(screen, c.Layout.Palette), c)
	r.drawEntityList(subImage(screen, c.Layout.EntityList), c)
	r.drawInfo(subImage(screen, c.Layout.Info), c)
	r.drawSettings(subImage(screen, c.Layout.Settings), c)
}

// screenRect converts an editor-space box to screen pixels.
func screenRect(c *editor.Controller, box cp.BB) editor.Rect {
	x0, y0 := c.Camera.ScaledToScreen(c.Layout, cp.Vector{X: box.L, Y: box.B})
	x1, y1 := c.Camera.ScaledToScreen(c.Layout, cp.Vector{X: box.R, Y: box.T})
	return editor.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// drawAsset draws img rotated by angle degrees and scaled by scale so that
// it fills box, which is given in editor space.
func (r *renderer) drawAsset(dst *ebiten.Image, c *editor.Controller, img *ebiten.Image, angle int, scale float64, box cp.BB) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	zx, zy := c.Layout.Zoom()
	cx, cy := c.Camera.ScaledToScreen(c.Layout, box.Center())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Rotate(-float64(angle) * math.Pi / 180)
	op.GeoM.Scale(scale*zx, scale*zy)
	op.GeoM.Translate(cx, cy)
	dst.DrawImage(img, op)
}

func tileBox(t *levels.Tile, img *ebiten.Image, tileSize int) cp.BB {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if t.Angle()%180 != 0 {
		w, h = h, w
	}
	x, y := float64(t.Pos.X*tileSize), float64(t.Pos.Y*tileSize)
	return cp.BB{L: x, B: y, R: x + w, T: y + h}
}

func (r *renderer) drawViewport(dst *ebiten.Image, c *editor.Controller) {
	dst.Fill(r.colors.EditorBackground)
	doc := c.Document()

	if c.ShowGrid {
		r.drawGridLines(dst, c, doc.TileSize)
	}
	for _, t := range doc.Tiles.Tiles() {
		img := r.images.get(t.Asset)
		box := tileBox(t, img, doc.TileSize)
		r.drawAsset(dst, c, img, t.Angle(), 1, box)
		if t.Selected {
			strokeRect(dst, screenRect(c, box), r.colors.Select)
		}
	}
	for _, o := range doc.OffGrid.Objects() {
		r.drawAsset(dst, c, r.images.get(o.Asset), o.Angle(), o.Scale, o.Box)
		if o.Selected {
			strokeRect(dst, screenRect(c, o.Box), r.colors.Select)
		}
	}
}

func (r *renderer) drawGridLines(dst *ebiten.Image, c *editor.Controller, tileSize int) {
	ts := float64(tileSize)
	vp := c.Layout.Viewport
	left, top := -c.Camera.ScrollX, -c.Camera.ScrollY
	for x := math.Floor(left/ts) * ts; x <= left+c.Layout.ScaledW; x += ts {
		sx, _ := c.Camera.ScaledToScreen(c.Layout, cp.Vector{X: x})
		vector.StrokeLine(dst, float32(sx), float32(vp.Y), float32(sx), float32(vp.Bottom()), 1, r.colors.GridLines, false)
	}
	for y := math.Floor(top/ts) * ts; y <= top+c.Layout.ScaledH; y += ts {
		_, sy := c.Camera.ScaledToScreen(c.Layout, cp.Vector{Y: y})
		vector.StrokeLine(dst, float32(vp.X), float32(sy), float32(vp.Right()), float32(sy), 1, r.colors.GridLines, false)
	}
}

func (r *renderer) drawPalette(dst *ebiten.Image, c *editor.Controller) {
	dst.Fill(r.colors.Windows)
	catalog := c.Catalog()
	if catalog == nil {
		return
	}
	p := c.Layout.Palette
	for i, key := range catalog.Keys() {
		cell := c.PaletteRect(i)
		if cell.Bottom() < p.Y || cell.Y > p.Bottom() {
			continue
		}
		img := r.images.get(key)
		w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		fit := (cell.W - 8) / math.Max(w, h)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(fit, fit)
		op.GeoM.Translate(cell.X+(cell.W-w*fit)/2, cell.Y+(cell.H-h*fit)/2)
		dst.DrawImage(img, op)
		if c.Mode.Armed() && c.Mode.Asset == key {
			strokeRect(dst, cell, r.colors.Select)
		}
	}
}

func (r *renderer) drawEntityList(dst *ebiten.Image, c *editor.Controller) {
	dst.Fill(r.colors.Windows)
	l := c.Layout
	for i, o := range c.EntityRows() {
		y := l.EntityList.Y + float64(i)*l.RowHeight
		clr := r.colors.FontLight
		if o.Selected {
			clr = r.colors.Select
		}
		r.label(dst, fmt.Sprintf("%s  %s", o.Key(), o.Asset), l.EntityList.X+8, y+2, clr)
	}
	vector.StrokeLine(dst, float32(l.EntityList.X), float32(l.EntityList.Y), float32(l.EntityList.X), float32(l.EntityList.Bottom()), 1, r.colors.Screen, false)
}

func (r *renderer) field(dst *ebiten.Image, rc editor.Rect, f editor.TextField) {
	bg, fg := r.colors.Screen, r.colors.FontLight
	if f.Focused {
		bg, fg = r.colors.FontLight, r.colors.FontDark
	}
	fillRect(dst, rc, bg)
	r.label(dst, f.Text, rc.X+5, rc.Y+5, fg)
}

func (r *renderer) button(dst *ebiten.Image, rc editor.Rect, caption string, bg color.Color) {
	fillRect(dst, rc, bg)
	w := r.measure(caption)
	r.label(dst, caption, rc.X+(rc.W-w)/2, rc.Y+5, r.colors.FontDark)
}

var buttonGray = color.RGBA{180, 180, 180, 255}

func (r *renderer) drawInfo(dst *ebiten.Image, c *editor.Controller) {
	dst.Fill(r.colors.Windows)
	l := c.Layout
	title := "Nothing selected"
	doc := c.Document()
	if o, ok := doc.SingleObject(); ok {
		title = fmt.Sprintf("%s  slot %d", o.Asset, o.Slot)
	} else if t, ok := doc.SingleTile(); ok {
		title = fmt.Sprintf("%s  tile %s  %d deg", t.Asset, t.Pos.Key(), t.Angle())
	} else if n := doc.SelectedCount(); n > 1 {
		title = fmt.Sprintf("%d selected", n)
	}
	r.label(dst, title, l.Info.X+10, l.Info.Y+8, r.colors.FontLight)

	r.field(dst, l.LayerField, c.LayerField)
	r.button(dst, l.LayerApply, "Layer", buttonGray)
	r.field(dst, l.SizeField, c.SizeField)
	r.button(dst, l.SizeApply, "Size", buttonGray)
	r.button(dst, l.Rotate, "Rotate", buttonGray)
}

func (r *renderer) drawSettings(dst *ebiten.Image, c *editor.Controller) {
	dst.Fill(r.colors.Windows)
	l := c.Layout
	r.label(dst, "Settings", l.Settings.X+10, l.Settings.Y+8, r.colors.FontLight)

	r.field(dst, l.NameField, c.NameField)
	r.button(dst, l.Save, "Save", buttonGray)
	r.button(dst, l.Load, "Load", buttonGray)

	gridCaption, gridColor := "Off grid", r.colors.ButtonOff
	if c.OnGrid {
		gridCaption, gridColor = "On grid", r.colors.ButtonOn
	}
	r.button(dst, l.GridMode, gridCaption, gridColor)
	linesColor := r.colors.ButtonOff
	if c.ShowGrid {
		linesColor = r.colors.ButtonOn
	}
	r.button(dst, l.GridLines, "Grid lines", linesColor)

	y := l.GridMode.Bottom() + 16
	r.label(dst, "Armed: "+c.Mode.String(), l.Settings.X+10, y, r.colors.FontLight)
	r.label(dst, fmt.Sprintf("Scroll: %.0f, %.0f", c.Camera.ScrollX, c.Camera.ScrollY), l.Settings.X+10, y+20, r.colors.FontLight)
	r.label(dst, c.Status, l.Settings.X+10, y+40, r.colors.FontLight)
	r.label(dst, config.Version, l.Settings.X+10, l.Settings.Bottom()-24, r.colors.FontLight)
}
