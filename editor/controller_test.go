package editor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileforge/levels"
)

type fakeCatalog []string

func (f fakeCatalog) Keys() []string { return f }

func (f fakeCatalog) AssetSize(key string) (int, int, bool) {
	for _, k := range f {
		if k == key {
			return 16, 16, true
		}
	}
	return 0, 0, false
}

type memClipboard struct{ data []byte }

func (m *memClipboard) Read() []byte      { return m.data }
func (m *memClipboard) Write(data []byte) { m.data = append([]byte(nil), data...) }

func newTestController(t *testing.T, opts Options) *Controller {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = fakeCatalog{"crate", "grass", "tree"}
	}
	return NewController(levels.NewDocument(16, opts.Catalog), opts)
}

func click(x, y float64) Input {
	return Input{X: x, Y: y, Pressed: true, JustPressed: true}
}

func TestScreenToScaledExact(t *testing.T) {
	c := newTestController(t, Options{})
	c.Camera = Camera{ScrollX: 5, ScrollY: -3}
	got := c.Camera.ScreenToScaled(c.Layout, 100, 50)
	if want := (cp.Vector{X: 45, Y: 28}); got != want {
		t.Fatalf("ScreenToScaled = %v, want %v", got, want)
	}
	x, y := c.Camera.ScaledToScreen(c.Layout, got)
	if x != 100 || y != 50 {
		t.Fatalf("ScaledToScreen = (%v, %v)", x, y)
	}
	if cell := c.Cell(100, 50); cell != (levels.GridCoord{X: 2, Y: 1}) {
		t.Fatalf("Cell = %v", cell)
	}
}

func TestRegionAt(t *testing.T) {
	l := DefaultLayout(1280, 720)
	cases := []struct {
		x, y float64
		want Region
	}{
		{0, 0, RegionViewport},
		{959, 431, RegionViewport},
		{960, 0, RegionEntityList},
		{100, 432, RegionPalette},
		{1000, 300, RegionInfo},
		{1000, 500, RegionSettings},
		{1280, 720, RegionNone},
		{-1, 10, RegionNone},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			if got := l.RegionAt(c.x, c.y); got != c.want {
				t.Fatalf("RegionAt(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestDragTracksPointerWhileHeld(t *testing.T) {
	c := newTestController(t, Options{})
	c.OnGrid = false
	c.Mode = OffGrid("crate")

	c.Update(click(100, 100))
	objs := c.Document().OffGrid.Objects()
	if len(objs) != 1 || !c.Dragging() {
		t.Fatalf("expected one placed object being dragged")
	}
	o := objs[0]

	for i := 1; i <= 10; i++ {
		x, y := 100+2*float64(i), 100+2*float64(i)
		c.Update(Input{X: x, Y: y, Pressed: true})
		want := cp.Vector{X: 50 + float64(i), Y: 50 + float64(i) - 16}
		if o.Pos != want {
			t.Fatalf("tick %d: pos = %v, want %v", i, o.Pos, want)
		}
	}
	frozen := o.Pos
	c.Update(Input{X: 300, Y: 300, JustReleased: true})
	c.Update(Input{X: 400, Y: 200})
	if o.Pos != frozen || c.Dragging() {
		t.Fatalf("object moved after release: %v", o.Pos)
	}
}

func TestClickOnMissDoesNotDrag(t *testing.T) {
	c := newTestController(t, Options{})
	c.OnGrid = false
	o := c.Document().OffGrid.PlaceAt(cp.Vector{X: 10, Y: 26}, "crate")
	o.Selected = true

	c.Update(click(600, 400))
	c.Update(Input{X: 610, Y: 410, Pressed: true})
	if c.Dragging() || o.Pos != (cp.Vector{X: 10, Y: 10}) {
		t.Fatalf("selection followed a press that hit nothing")
	}
}

func TestLoadFailureKeepsDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"tile_map": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := newTestController(t, Options{})
	c.opts.Storage = levels.Dir{Path: dir, Sizer: c.Catalog()}
	doc := c.Document()
	doc.PlaceOrSelectTile(levels.GridCoord{X: 1, Y: 1}, "grass", false)
	before, err := levels.Encode(doc)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		slot string
		is   error
	}{
		{"corrupt", "broken", levels.ErrMalformedDocument},
		{"missing", "absent", os.ErrNotExist},
		{"bad_name", "", levels.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := c.Load(tc.slot); !errors.Is(err, tc.is) {
				t.Fatalf("Load(%q) = %v, want %v", tc.slot, err, tc.is)
			}
			if c.Document() != doc {
				t.Fatalf("document was replaced")
			}
			after, _ := levels.Encode(c.Document())
			if !bytes.Equal(before, after) {
				t.Fatalf("document changed:\n%s\n%s", before, after)
			}
			if !strings.HasPrefix(c.Status, "load failed") {
				t.Fatalf("status = %q", c.Status)
			}
		})
	}
}

func TestSaveThenLoadReplacesDocument(t *testing.T) {
	dir := t.TempDir()
	c := newTestController(t, Options{SaveName: "one"})
	c.opts.Storage = levels.Dir{Path: dir, Sizer: c.Catalog()}
	c.Document().Tiles.Insert(levels.GridCoord{}, "grass")

	c.Update(Input{Actions: []Action{ActionSave}})
	if c.Status != "saved one" {
		t.Fatalf("status = %q", c.Status)
	}
	c.Replace(levels.NewDocument(16, nil))
	c.Update(Input{Actions: []Action{ActionLoad}})
	if c.Document().Tiles.Len() != 1 {
		t.Fatalf("load did not replace the document")
	}
}

func TestPaletteArming(t *testing.T) {
	c := newTestController(t, Options{})
	p := c.Layout.Palette
	first := click(p.X+5, p.Y+5)
	second := click(p.X+c.PaletteCell()+5, p.Y+5)

	c.Update(first)
	if c.Mode != OnGrid("crate") {
		t.Fatalf("mode = %v", c.Mode)
	}
	c.Update(Input{Actions: []Action{ActionToggleGrid}})
	if c.Mode != OffGrid("crate") || c.OnGrid {
		t.Fatalf("grid toggle should keep the asset: %v", c.Mode)
	}
	c.Update(second)
	if c.Mode != OffGrid("grass") {
		t.Fatalf("switching asset should keep mode: %v", c.Mode)
	}
	c.Update(second)
	if c.Mode.Armed() {
		t.Fatalf("clicking the armed asset should disarm: %v", c.Mode)
	}
	c.Update(click(p.Right()-1, p.Y+5))
	if c.Mode.Armed() {
		t.Fatalf("empty palette cell armed %v", c.Mode)
	}
}

func TestViewportPlacementAndErase(t *testing.T) {
	c := newTestController(t, Options{})
	c.Mode = OnGrid("grass")
	c.Update(click(40, 40))
	doc := c.Document()
	tile, ok := doc.Tiles.At(levels.GridCoord{X: 1, Y: 1})
	if !ok || !tile.Selected {
		t.Fatalf("expected a selected tile at 1;1")
	}
	c.Update(Input{X: 40, Y: 40, RightJustPressed: true})
	if doc.Tiles.Len() != 0 {
		t.Fatalf("right click should delete the tile")
	}

	c.Mode = OffGrid("crate")
	c.Update(click(40, 40))
	c.Update(click(44, 44))
	c.Update(Input{X: 46, Y: 20, RightJustPressed: true})
	if doc.OffGrid.Len() != 0 {
		t.Fatalf("right click should delete every overlapping object, %d left", doc.OffGrid.Len())
	}
}

func TestShiftClickMultiSelect(t *testing.T) {
	c := newTestController(t, Options{})
	doc := c.Document()
	a, _ := doc.Tiles.Insert(levels.GridCoord{X: 0, Y: 0}, "grass")
	b, _ := doc.Tiles.Insert(levels.GridCoord{X: 2, Y: 0}, "grass")

	c.Update(click(4, 4))
	in := click(68, 4)
	in.Shift = true
	c.Update(in)
	if !a.Selected || !b.Selected {
		t.Fatalf("shift click should extend the selection")
	}
	c.Update(click(68, 4))
	if a.Selected || b.Selected {
		t.Fatalf("plain click on a selected tile leaves nothing selected")
	}
}

func TestEntityListToggles(t *testing.T) {
	c := newTestController(t, Options{})
	doc := c.Document()
	first := doc.OffGrid.PlaceAt(cp.Vector{}, "crate")
	second := doc.OffGrid.PlaceAt(cp.Vector{X: 40}, "tree")

	l := c.Layout
	c.Update(click(l.EntityList.X+5, l.EntityList.Y+l.RowHeight+2))
	if first.Selected || !second.Selected {
		t.Fatalf("expected only the second row selected")
	}
	if c.LayerField.Text != "0" || c.SizeField.Text != "1" {
		t.Fatalf("info fields not synced: %q %q", c.LayerField.Text, c.SizeField.Text)
	}
	c.Update(click(l.EntityList.X+5, l.EntityList.Y+10*l.RowHeight))
	if !second.Selected {
		t.Fatalf("click below the last row must be a no-op")
	}
}

func TestInfoPanelApply(t *testing.T) {
	c := newTestController(t, Options{})
	doc := c.Document()
	o, _ := doc.PlaceOrSelectObject(cp.Vector{X: 10, Y: 30}, "crate", false)
	l := c.Layout

	c.Update(click(l.LayerField.X+5, l.LayerField.Y+5))
	if !c.LayerField.Focused {
		t.Fatalf("layer field should take focus")
	}
	c.Update(Input{Chars: []rune("3x"), Actions: []Action{ActionRotate}})
	if c.LayerField.Text != "3" {
		t.Fatalf("layer text = %q", c.LayerField.Text)
	}
	if o.Rotation != 0 {
		t.Fatalf("hotkeys must be suppressed while a field is focused")
	}
	c.Update(Input{Enter: true})
	if o.Layer != 3 || c.LayerField.Focused {
		t.Fatalf("enter should apply the layer and blur, layer=%d", o.Layer)
	}

	c.SizeField.Text = ""
	if err := c.ApplySize(); !errors.Is(err, levels.ErrInvalidInput) {
		t.Fatalf("empty size: %v", err)
	}
	c.SizeField.Text = "0"
	if err := c.ApplySize(); !errors.Is(err, levels.ErrInvalidInput) {
		t.Fatalf("zero size: %v", err)
	}
	if o.Scale != 1 {
		t.Fatalf("rejected size changed scale to %v", o.Scale)
	}
	c.SizeField.Text = "2.5"
	c.Update(click(l.SizeApply.X+1, l.SizeApply.Y+1))
	if o.Scale != 2.5 {
		t.Fatalf("scale = %v", o.Scale)
	}
	c.Update(click(l.Rotate.X+1, l.Rotate.Y+1))
	if o.Rotation != 1 {
		t.Fatalf("rotate button did not rotate")
	}
}

func TestPanMovesByTileMultiple(t *testing.T) {
	c := newTestController(t, Options{PanSpeed: 3})
	c.Update(Input{Actions: []Action{ActionPanLeft, ActionPanLeft, ActionPanDown}})
	if c.Camera.ScrollX != 96 || c.Camera.ScrollY != -48 {
		t.Fatalf("camera = %+v", c.Camera)
	}
	c.Update(Input{Actions: []Action{ActionPanRight, ActionPanUp}})
	if c.Camera.ScrollX != 48 || c.Camera.ScrollY != 0 {
		t.Fatalf("camera = %+v", c.Camera)
	}
}

func TestCopyPasteThroughClipboard(t *testing.T) {
	cb := &memClipboard{}
	c := newTestController(t, Options{Clipboard: cb})
	doc := c.Document()
	doc.PlaceOrSelectTile(levels.GridCoord{X: 0, Y: 0}, "grass", false)

	c.Update(Input{Actions: []Action{ActionCopy}})
	if len(cb.data) == 0 {
		t.Fatalf("clipboard not written")
	}
	c.Update(Input{X: 100, Y: 36, Actions: []Action{ActionPaste}})
	if _, ok := doc.Tiles.At(levels.GridCoord{X: 3, Y: 1}); !ok {
		t.Fatalf("paste did not land under the pointer: %s", c.Status)
	}

	// Without a system clipboard the in-process buffer is used.
	c2 := newTestController(t, Options{})
	c2.Document().PlaceOrSelectTile(levels.GridCoord{}, "grass", false)
	if err := c2.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if err := c2.Paste(levels.GridCoord{X: 5}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if c2.Document().Tiles.Len() != 2 {
		t.Fatalf("expected 2 tiles")
	}
}

func TestCancelDisarmsAndClears(t *testing.T) {
	c := newTestController(t, Options{})
	c.Mode = OnGrid("grass")
	c.Update(click(4, 4))
	c.Update(Input{Actions: []Action{ActionCancel}})
	if c.Mode.Armed() || c.Document().SelectedCount() != 0 {
		t.Fatalf("cancel should disarm and clear selection")
	}
}

func TestSaveWithoutStorageReportsFailure(t *testing.T) {
	c := newTestController(t, Options{})
	l := c.Layout
	c.Update(click(l.Save.X+1, l.Save.Y+1))
	if !strings.HasPrefix(c.Status, "save failed") {
		t.Fatalf("status = %q", c.Status)
	}
}
