package levels

import (
	"errors"

	"github.com/jakecoffman/cp"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrMalformedDocument = errors.New("malformed document")
	ErrEmptySelection    = errors.New("nothing selected")
)

const DefaultTileSize = 16

// Document is the unit of persistence: both stores plus the tile size.
type Document struct {
	Tiles    *TileMap
	OffGrid  *OffGridStore
	TileSize int

	sizer AssetSizer
}

func NewDocument(tileSize int, sizer AssetSizer) *Document {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Document{
		Tiles:    NewTileMap(),
		OffGrid:  NewOffGridStore(tileSize, sizer),
		TileSize: tileSize,
		sizer:    sizer,
	}
}

// ClearSelection deselects every tile and off-grid object.
func (d *Document) ClearSelection() {
	d.Tiles.ClearSelection()
	d.OffGrid.ClearSelection()
}

// SelectedCount counts selected entities across both stores.
func (d *Document) SelectedCount() int {
	return len(d.Tiles.Selected()) + len(d.OffGrid.Selected())
}

// PlaceOrSelectTile handles a click on grid cell c. An empty cell gets a new
// selected tile when asset is non-empty (all other selections are cleared
// first); an occupied cell has its selection toggled, clearing everything
// else unless multi is set. It returns the affected tile, if any.
func (d *Document) PlaceOrSelectTile(c GridCoord, asset string, multi bool) (*Tile, bool) {
	if t, ok := d.Tiles.At(c); ok {
		d.toggle(&t.Selected, multi)
		return t, true
	}
	if asset == "" {
		return nil, false
	}
	d.ClearSelection()
	t, _ := d.Tiles.Insert(c, asset)
	t.Selected = true
	return t, true
}

// PlaceOrSelectObject handles a click on an off-grid point. With no asset
// the topmost object under the point has its selection toggled; with an
// asset a new selected object is created after clearing all selections.
func (d *Document) PlaceOrSelectObject(point cp.Vector, asset string, multi bool) (*OffGridObject, bool) {
	if asset == "" {
		o, ok := d.OffGrid.HitTest(point)
		if !ok {
			return nil, false
		}
		d.toggle(&o.Selected, multi)
		return o, true
	}
	d.ClearSelection()
	o := d.OffGrid.PlaceAt(point, asset)
	o.Selected = true
	return o, true
}

// ToggleObject toggles selection of the object in slot, as a click on its
// row in the entity list does.
func (d *Document) ToggleObject(slot int, multi bool) (*OffGridObject, bool) {
	o, ok := d.OffGrid.BySlot(slot)
	if !ok {
		return nil, false
	}
	d.toggle(&o.Selected, multi)
	return o, true
}

func (d *Document) toggle(selected *bool, multi bool) {
	was := *selected
	if !multi {
		d.ClearSelection()
	}
	*selected = !was
}

// RotateSelected rotates the selection in both stores.
func (d *Document) RotateSelected() int {
	return d.Tiles.RotateSelected() + d.OffGrid.RotateSelected()
}

// SetLayerSelected re-keys every selected off-grid object onto layer.
func (d *Document) SetLayerSelected(layer int) (int, error) {
	sel := d.OffGrid.Selected()
	if len(sel) == 0 {
		return 0, ErrEmptySelection
	}
	for _, o := range sel {
		if err := d.OffGrid.SetLayer(o.Slot, layer); err != nil {
			return 0, err
		}
	}
	return len(sel), nil
}

// SingleObject returns the only selected entity when it is an off-grid object.
func (d *Document) SingleObject() (*OffGridObject, bool) {
	if d.SelectedCount() != 1 {
		return nil, false
	}
	sel := d.OffGrid.Selected()
	if len(sel) != 1 {
		return nil, false
	}
	return sel[0], true
}

// SingleTile returns the only selected entity when it is a tile.
func (d *Document) SingleTile() (*Tile, bool) {
	if d.SelectedCount() != 1 {
		return nil, false
	}
	sel := d.Tiles.Selected()
	if len(sel) != 1 {
		return nil, false
	}
	return sel[0], true
}
