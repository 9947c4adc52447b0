package editor

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileforge/levels"
)

// Storage persists documents by slot name. levels.Dir implements it.
type Storage interface {
	Save(name string, d *levels.Document) error
	Load(name string) (*levels.Document, error)
}

// Clipboard moves copied selections in and out of the editor.
type Clipboard interface {
	Read() []byte
	Write(data []byte)
}

// Catalog is the read-only asset set shown in the palette.
type Catalog interface {
	levels.AssetSizer
	Keys() []string
}

type Options struct {
	Layout             Layout
	AssetsPerRow       int
	PanSpeed           int
	PaletteScrollSpeed int
	SaveName           string

	// Measure returns the rendered width of a string in pixels.
	Measure func(string) float64

	Storage   Storage
	Clipboard Clipboard
	Catalog   Catalog
}

// Controller turns per-frame input into document mutations. It owns the
// modal editor state: the armed asset, the grid toggle, text fields, the
// camera and an in-progress drag.
type Controller struct {
	Layout Layout
	Camera Camera

	Mode     PlacementMode
	OnGrid   bool
	ShowGrid bool
	Shift    bool

	LayerField TextField
	SizeField  TextField
	NameField  TextField

	PaletteScroll float64
	ListScroll    int

	Status string

	doc      *levels.Document
	dragging bool
	buffer   []byte
	opts     Options
}

func NewController(doc *levels.Document, opts Options) *Controller {
	if opts.Layout.Viewport.W == 0 {
		opts.Layout = DefaultLayout(1280, 720)
	}
	if opts.AssetsPerRow <= 0 {
		opts.AssetsPerRow = 13
	}
	if opts.PanSpeed <= 0 {
		opts.PanSpeed = 2
	}
	if opts.PaletteScrollSpeed <= 0 {
		opts.PaletteScrollSpeed = 3
	}
	if opts.Measure == nil {
		opts.Measure = func(s string) float64 { return float64(7 * len([]rune(s))) }
	}
	if doc == nil {
		doc = levels.NewDocument(levels.DefaultTileSize, opts.Catalog)
	}
	l := opts.Layout
	return &Controller{
		Layout:     l,
		OnGrid:     true,
		ShowGrid:   true,
		LayerField: TextField{Kind: Digits, Width: l.LayerField.W},
		SizeField:  TextField{Kind: Decimal, Width: l.SizeField.W},
		NameField:  TextField{Kind: FreeText, Width: l.NameField.W, Text: opts.SaveName},
		doc:        doc,
		opts:       opts,
	}
}

func (c *Controller) Document() *levels.Document { return c.doc }

// Replace swaps in a whole document, e.g. after a load.
func (c *Controller) Replace(d *levels.Document) {
	c.doc = d
	c.dragging = false
}

// Dragging reports whether selected objects follow the pointer.
func (c *Controller) Dragging() bool { return c.dragging }

func (c *Controller) Catalog() Catalog { return c.opts.Catalog }

func (c *Controller) focused() *TextField {
	for _, f := range []*TextField{&c.LayerField, &c.SizeField, &c.NameField} {
		if f.Focused {
			return f
		}
	}
	return nil
}

func (c *Controller) blur() {
	c.LayerField.Focused = false
	c.SizeField.Focused = false
	c.NameField.Focused = false
}

// Update applies one frame of input.
func (c *Controller) Update(in Input) {
	c.Shift = in.Shift

	if f := c.focused(); f != nil {
		f.Type(in.Chars, in.Backspace, c.opts.Measure)
		switch {
		case in.Enter:
			c.commit(f)
		case in.Has(ActionCancel):
			c.blur()
		}
	} else {
		for _, a := range in.Actions {
			c.Do(a, in)
		}
	}

	if in.WheelY != 0 {
		c.scroll(in)
	}

	if in.JustPressed {
		c.press(in)
	} else if c.dragging && in.Pressed {
		c.doc.OffGrid.MoveSelectedTo(c.pointer(in))
	}
	if in.JustReleased || !in.Pressed {
		c.dragging = false
	}

	if in.RightJustPressed && c.Layout.RegionAt(in.X, in.Y) == RegionViewport {
		c.erase(c.pointer(in))
	}

	c.syncFields()
}

// Do runs a keyboard action. Actions handled by the window layer are ignored.
func (c *Controller) Do(a Action, in Input) {
	step := float64(c.opts.PanSpeed * c.doc.TileSize)
	switch a {
	case ActionPanLeft:
		c.Camera.Pan(step, 0)
	case ActionPanRight:
		c.Camera.Pan(-step, 0)
	case ActionPanUp:
		c.Camera.Pan(0, step)
	case ActionPanDown:
		c.Camera.Pan(0, -step)
	case ActionRotate:
		c.doc.RotateSelected()
	case ActionSave:
		c.Save()
	case ActionLoad:
		c.Load(c.NameField.Text)
	case ActionCopy:
		c.Copy()
	case ActionPaste:
		c.Paste(c.pasteTarget(in))
	case ActionCancel:
		c.Mode = Disarmed()
		c.doc.ClearSelection()
	case ActionToggleGrid:
		c.toggleGrid()
	case ActionToggleGridLines:
		c.ShowGrid = !c.ShowGrid
	}
}

func (c *Controller) pointer(in Input) cp.Vector {
	return c.Camera.ScreenToScaled(c.Layout, in.X, in.Y)
}

// Cell returns the grid cell under a screen point.
func (c *Controller) Cell(x, y float64) levels.GridCoord {
	p := c.Camera.ScreenToScaled(c.Layout, x, y)
	return levels.CoordAt(p.X, p.Y, c.doc.TileSize)
}

func (c *Controller) press(in Input) {
	l := c.Layout
	region := l.RegionAt(in.X, in.Y)
	c.blur()
	switch region {
	case RegionViewport:
		c.pressViewport(in)
	case RegionPalette:
		if key, ok := c.PaletteAssetAt(in.X, in.Y); ok {
			c.Mode = c.Mode.Pick(key, c.OnGrid)
		}
	case RegionEntityList:
		if o, ok := c.EntityAt(in.Y); ok {
			c.doc.ToggleObject(o.Slot, c.Shift)
		}
	case RegionInfo:
		switch {
		case l.LayerField.Contains(in.X, in.Y):
			c.LayerField.Focused = true
		case l.SizeField.Contains(in.X, in.Y):
			c.SizeField.Focused = true
		case l.LayerApply.Contains(in.X, in.Y):
			c.ApplyLayer()
		case l.SizeApply.Contains(in.X, in.Y):
			c.ApplySize()
		case l.Rotate.Contains(in.X, in.Y):
			c.doc.RotateSelected()
		}
	case RegionSettings:
		switch {
		case l.NameField.Contains(in.X, in.Y):
			c.NameField.Focused = true
		case l.Save.Contains(in.X, in.Y):
			c.Save()
		case l.Load.Contains(in.X, in.Y):
			c.Load(c.NameField.Text)
		case l.GridMode.Contains(in.X, in.Y):
			c.toggleGrid()
		case l.GridLines.Contains(in.X, in.Y):
			c.ShowGrid = !c.ShowGrid
		}
	}
}

// targetsGrid decides which store a viewport click addresses: the armed
// mode when an asset is armed, the grid toggle otherwise.
func (c *Controller) targetsGrid() bool {
	if c.Mode.Armed() {
		return c.Mode.Kind == PlaceOnGrid
	}
	return c.OnGrid
}

func (c *Controller) pressViewport(in Input) {
	p := c.pointer(in)
	if c.targetsGrid() {
		cell := levels.CoordAt(p.X, p.Y, c.doc.TileSize)
		c.doc.PlaceOrSelectTile(cell, c.Mode.TileAsset(), c.Shift)
		return
	}
	if o, ok := c.doc.PlaceOrSelectObject(p, c.Mode.ObjectAsset(), c.Shift); ok && o.Selected {
		c.dragging = true
	}
}

// erase is a right click: it deletes the tile under the pointer on the grid,
// or every off-grid object whose box contains it.
func (c *Controller) erase(p cp.Vector) {
	if c.targetsGrid() {
		c.doc.Tiles.Remove(levels.CoordAt(p.X, p.Y, c.doc.TileSize))
		return
	}
	c.doc.OffGrid.RemoveHit(p)
}

func (c *Controller) toggleGrid() {
	c.OnGrid = !c.OnGrid
	c.Mode = c.Mode.Regrid(c.OnGrid)
}

func (c *Controller) commit(f *TextField) {
	switch f {
	case &c.LayerField:
		c.ApplyLayer()
	case &c.SizeField:
		c.ApplySize()
	case &c.NameField:
		c.Save()
	}
	c.blur()
}

// ApplyLayer moves the selected objects to the layer typed in the layer
// field. Unparsable text leaves the document untouched.
func (c *Controller) ApplyLayer() error {
	layer, err := c.LayerField.Int()
	if err != nil {
		return c.fail("layer", err)
	}
	n, err := c.doc.SetLayerSelected(layer)
	if err != nil {
		return c.fail("layer", err)
	}
	c.Status = fmt.Sprintf("moved %d object(s) to layer %d", n, layer)
	return nil
}

// ApplySize scales the selected objects by the size field.
func (c *Controller) ApplySize() error {
	scale, err := c.SizeField.Float()
	if err != nil {
		return c.fail("size", err)
	}
	n, err := c.doc.OffGrid.ResizeSelected(scale)
	if err != nil {
		return c.fail("size", err)
	}
	c.Status = fmt.Sprintf("resized %d object(s)", n)
	return nil
}

// Save writes the document to the slot named in the name field.
func (c *Controller) Save() error {
	if c.opts.Storage == nil {
		return c.fail("save", errors.New("no documents directory"))
	}
	name := c.NameField.Text
	if err := c.opts.Storage.Save(name, c.doc); err != nil {
		return c.fail("save", err)
	}
	c.Status = "saved " + name
	return nil
}

// Load replaces the document with the named slot. On any failure the
// current document is kept.
func (c *Controller) Load(name string) error {
	if c.opts.Storage == nil {
		return c.fail("load", errors.New("no documents directory"))
	}
	d, err := c.opts.Storage.Load(name)
	if err != nil {
		return c.fail("load", err)
	}
	c.Replace(d)
	c.NameField.Text = name
	c.Status = "loaded " + name
	return nil
}

// Copy puts the current selection on the clipboard.
func (c *Controller) Copy() error {
	data, err := c.doc.CopySelection()
	if err != nil {
		return c.fail("copy", err)
	}
	c.buffer = data
	if c.opts.Clipboard != nil {
		c.opts.Clipboard.Write(data)
	}
	c.Status = fmt.Sprintf("copied %d entities", c.doc.SelectedCount())
	return nil
}

// Paste inserts the clipboard contents with their top-left cell on at. The
// in-process buffer is used when the system clipboard has nothing.
func (c *Controller) Paste(at levels.GridCoord) error {
	var data []byte
	if c.opts.Clipboard != nil {
		data = c.opts.Clipboard.Read()
	}
	if len(data) == 0 {
		data = c.buffer
	}
	if len(data) == 0 {
		return c.fail("paste", levels.ErrEmptySelection)
	}
	n, err := c.doc.Paste(data, at)
	if err != nil {
		return c.fail("paste", err)
	}
	c.Status = fmt.Sprintf("pasted %d entities", n)
	return nil
}

// pasteTarget is the cell under the pointer, or the top-left visible cell
// when the pointer is outside the viewport.
func (c *Controller) pasteTarget(in Input) levels.GridCoord {
	if c.Layout.Viewport.Contains(in.X, in.Y) {
		return c.Cell(in.X, in.Y)
	}
	return c.Cell(c.Layout.Viewport.X, c.Layout.Viewport.Y)
}

func (c *Controller) fail(op string, err error) error {
	c.Status = op + " failed: " + err.Error()
	return err
}

// syncFields mirrors the single selected object into the info fields while
// the user is not editing them.
func (c *Controller) syncFields() {
	o, ok := c.doc.SingleObject()
	if !ok {
		return
	}
	if !c.LayerField.Focused {
		c.LayerField.Text = strconv.Itoa(o.Layer)
	}
	if !c.SizeField.Focused {
		c.SizeField.Text = strconv.FormatFloat(o.Scale, 'f', -1, 64)
	}
}

func (c *Controller) scroll(in Input) {
	switch c.Layout.RegionAt(in.X, in.Y) {
	case RegionPalette:
		step := float64(c.opts.PaletteScrollSpeed * c.doc.TileSize)
		c.PaletteScroll -= in.WheelY * step
		c.PaletteScroll = math.Max(0, math.Min(c.PaletteScroll, c.maxPaletteScroll()))
	case RegionEntityList:
		c.ListScroll -= int(math.Round(in.WheelY))
		last := c.doc.OffGrid.Len() - c.visibleRows()
		if c.ListScroll > last {
			c.ListScroll = last
		}
		if c.ListScroll < 0 {
			c.ListScroll = 0
		}
	}
}
