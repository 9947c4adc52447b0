package levels

import (
	"math"

	"github.com/jakecoffman/cp"
)

// CopySelection encodes the selected tiles and objects as a document
// fragment in the file format.
func (d *Document) CopySelection() ([]byte, error) {
	if d.SelectedCount() == 0 {
		return nil, ErrEmptySelection
	}
	return encode(d, true)
}

// Paste decodes a fragment and adds it so that its top-left cell lands on
// at. Objects move by the same distance in pixels. Cells that are already
// occupied are skipped and objects get fresh slots. The pasted entities
// become the selection; it returns how many were added.
func (d *Document) Paste(data []byte, at GridCoord) (int, error) {
	frag, err := Decode(data, d.sizer)
	if err != nil {
		return 0, err
	}
	origin, ok := frag.origin(d.TileSize)
	if !ok {
		return 0, ErrEmptySelection
	}
	delta := at.Sub(origin)
	shift := cp.Vector{X: float64(delta.X * d.TileSize), Y: float64(delta.Y * d.TileSize)}

	d.ClearSelection()
	n := 0
	for _, t := range frag.Tiles.Tiles() {
		nt, ok := d.Tiles.Insert(t.Pos.Add(delta), t.Asset)
		if !ok {
			continue
		}
		nt.Rotation = t.Rotation
		nt.Selected = true
		n++
	}
	for _, o := range frag.OffGrid.Objects() {
		no := d.OffGrid.PlaceAt(o.Pos.Add(shift).Add(d.OffGrid.Anchor()), o.Asset)
		no.Rotation = o.Rotation
		no.Selected = true
		if err := d.OffGrid.SetScale(no.Slot, o.Scale); err != nil {
			return n, err
		}
		if o.Layer != 0 {
			if err := d.OffGrid.SetLayer(no.Slot, o.Layer); err != nil {
				return n, err
			}
		}
		n++
	}
	return n, nil
}

// origin is the smallest cell touched by the fragment.
func (d *Document) origin(tileSize int) (GridCoord, bool) {
	found := false
	lo := GridCoord{X: math.MaxInt, Y: math.MaxInt}
	take := func(c GridCoord) {
		found = true
		if c.X < lo.X {
			lo.X = c.X
		}
		if c.Y < lo.Y {
			lo.Y = c.Y
		}
	}
	for _, t := range d.Tiles.Tiles() {
		take(t.Pos)
	}
	for _, o := range d.OffGrid.Objects() {
		take(CoordAt(o.Pos.X, o.Pos.Y, tileSize))
	}
	return lo, found
}
