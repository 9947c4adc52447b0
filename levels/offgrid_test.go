package levels

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func slots(objs []*OffGridObject) []int {
	out := make([]int, len(objs))
	for i, o := range objs {
		out[i] = o.Slot
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOffGridSetLayerStableReorder(t *testing.T) {
	s := NewOffGridStore(16, nil)
	o0 := s.PlaceAt(cp.Vector{X: 0, Y: 16}, "a")
	o1 := s.PlaceAt(cp.Vector{X: 10, Y: 16}, "b")
	o2 := s.PlaceAt(cp.Vector{X: 20, Y: 16}, "c")
	if err := s.SetLayer(o2.Slot, 1); err != nil {
		t.Fatalf("SetLayer: %v", err)
	}

	if err := s.SetLayer(o1.Slot, 1); err != nil {
		t.Fatalf("SetLayer: %v", err)
	}
	got := slots(s.Objects())
	want := []int{o0.Slot, o2.Slot, o1.Slot}
	if !equalInts(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if _, ok := s.Get(ObjectKey{Slot: o1.Slot, Layer: 0}); ok {
		t.Fatalf("old key still resolves after re-key")
	}
	if o, ok := s.Get(ObjectKey{Slot: o1.Slot, Layer: 1}); !ok || o != o1 {
		t.Fatalf("new key does not resolve")
	}
}

func TestOffGridSetLayerOrdering(t *testing.T) {
	cases := []struct {
		name   string
		layers []int
		moves  [][2]int // slot, layer
		want   []int
	}{
		{"lower_layer_moves_first", []int{0, 0, 0}, [][2]int{{2, -1}}, []int{2, 0, 1}},
		{"raise_to_top", []int{0, 1, 2}, [][2]int{{0, 5}}, []int{1, 2, 0}},
		{"same_layer_goes_last", []int{0, 0, 0}, [][2]int{{0, 0}}, []int{1, 2, 0}},
		{"interleaved", []int{1, 0, 1, 0}, [][2]int{{3, 1}}, []int{1, 0, 2, 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewOffGridStore(16, nil)
			for range c.layers {
				s.PlaceAt(cp.Vector{}, "a")
			}
			for slot, layer := range c.layers {
				if layer != 0 {
					if err := s.SetLayer(slot, layer); err != nil {
						t.Fatalf("setup SetLayer: %v", err)
					}
				}
			}
			for _, m := range c.moves {
				if err := s.SetLayer(m[0], m[1]); err != nil {
					t.Fatalf("SetLayer: %v", err)
				}
			}
			if got := slots(s.Objects()); !equalInts(got, c.want) {
				t.Fatalf("order = %v, want %v", got, c.want)
			}
		})
	}
}

func TestOffGridSetLayerUnknownSlot(t *testing.T) {
	s := NewOffGridStore(16, nil)
	if err := s.SetLayer(4, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOffGridHitTestTopmost(t *testing.T) {
	s := NewOffGridStore(16, sizes{"big": {32, 32}})
	low := s.PlaceAt(cp.Vector{X: 0, Y: 32}, "big")
	high := s.PlaceAt(cp.Vector{X: 0, Y: 32}, "big")
	newest := s.PlaceAt(cp.Vector{X: 0, Y: 32}, "big")
	if err := s.SetLayer(high.Slot, 3); err != nil {
		t.Fatalf("SetLayer: %v", err)
	}

	hit, ok := s.HitTest(cp.Vector{X: 5, Y: 20})
	if !ok || hit != high {
		t.Fatalf("expected highest layer to win, got %+v", hit)
	}
	s.Remove(high.Key())
	hit, _ = s.HitTest(cp.Vector{X: 5, Y: 20})
	if hit != newest {
		t.Fatalf("expected newest within layer, got slot %d (low=%d)", hit.Slot, low.Slot)
	}
	if _, ok := s.HitTest(cp.Vector{X: 100, Y: 100}); ok {
		t.Fatalf("expected miss")
	}
}

func TestOffGridRemoveHitRemovesAllOverlapping(t *testing.T) {
	s := NewOffGridStore(16, nil)
	s.PlaceAt(cp.Vector{X: 0, Y: 16}, "a")
	s.PlaceAt(cp.Vector{X: 8, Y: 16}, "a")
	far := s.PlaceAt(cp.Vector{X: 100, Y: 16}, "a")

	if n := s.RemoveHit(cp.Vector{X: 10, Y: 4}); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	objs := s.Objects()
	if len(objs) != 1 || objs[0] != far {
		t.Fatalf("unexpected survivors %v", slots(objs))
	}
	if n := s.RemoveHit(cp.Vector{X: -50, Y: -50}); n != 0 {
		t.Fatalf("expected no-op, got %d", n)
	}
}

func TestOffGridResize(t *testing.T) {
	s := NewOffGridStore(16, sizes{"crate": {10, 20}})
	o := s.PlaceAt(cp.Vector{X: 0, Y: 16}, "crate")
	o.Selected = true

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := s.ResizeSelected(bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ResizeSelected(%v) err = %v, want ErrInvalidInput", bad, err)
		}
	}
	if o.Scale != 1 {
		t.Fatalf("rejected resize mutated scale to %v", o.Scale)
	}

	n, err := s.ResizeSelected(2)
	if err != nil || n != 1 {
		t.Fatalf("ResizeSelected = %d, %v", n, err)
	}
	if w, h := o.Box.R-o.Box.L, o.Box.T-o.Box.B; w != 20 || h != 40 {
		t.Fatalf("box %vx%v, want 20x40", w, h)
	}
}

func TestOffGridRotateSwapsBox(t *testing.T) {
	s := NewOffGridStore(16, sizes{"crate": {10, 20}})
	o := s.PlaceAt(cp.Vector{X: 0, Y: 16}, "crate")
	o.Selected = true
	s.RotateSelected()
	if w, h := o.Box.R-o.Box.L, o.Box.T-o.Box.B; w != 20 || h != 10 {
		t.Fatalf("box %vx%v after quarter turn, want 20x10", w, h)
	}
	s.RotateSelected()
	if o.Angle() != 180 {
		t.Fatalf("angle = %d", o.Angle())
	}
}

func TestOffGridPlacementAnchor(t *testing.T) {
	s := NewOffGridStore(16, nil)
	o := s.PlaceAt(cp.Vector{X: 40, Y: 50}, "a")
	if o.Pos != (cp.Vector{X: 40, Y: 34}) {
		t.Fatalf("pos = %v", o.Pos)
	}
	if o.Layer != 0 || o.Scale != 1 || o.Rotation != 0 {
		t.Fatalf("unexpected defaults %+v", o)
	}
	o.Selected = true
	s.MoveSelectedTo(cp.Vector{X: 70, Y: 90})
	if o.Pos != (cp.Vector{X: 70, Y: 74}) {
		t.Fatalf("moved pos = %v", o.Pos)
	}
	if !o.Box.ContainsVect(cp.Vector{X: 71, Y: 80}) {
		t.Fatalf("box not rebuilt after move: %v", o.Box)
	}
}

func TestOffGridSlotsNeverReused(t *testing.T) {
	s := NewOffGridStore(16, nil)
	a := s.PlaceAt(cp.Vector{}, "a")
	b := s.PlaceAt(cp.Vector{}, "a")
	s.Remove(a.Key())
	c := s.PlaceAt(cp.Vector{}, "a")
	if c.Slot == b.Slot || c.Slot == a.Slot {
		t.Fatalf("slot %d reused", c.Slot)
	}
}
