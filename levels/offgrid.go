package levels

import (
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// AssetSizer reports the pixel size of an asset image.
type AssetSizer interface {
	AssetSize(key string) (w, h int, ok bool)
}

// ObjectKey is the composite identity of an off-grid object.
type ObjectKey struct {
	Slot  int
	Layer int
}

// String returns the "slot;layer" form used as the offgrid key on disk.
func (k ObjectKey) String() string {
	return fmt.Sprintf("%d;%d", k.Slot, k.Layer)
}

// ParseObjectKey parses a "slot;layer" key.
func ParseObjectKey(key string) (ObjectKey, error) {
	s, l, err := parsePair(key)
	if err != nil {
		return ObjectKey{}, err
	}
	return ObjectKey{Slot: s, Layer: l}, nil
}

// OffGridObject is a freely positioned, scalable, rotatable, layered entity.
// Pos is the top-left corner in scaled editor space. Box is derived from
// Pos, the asset size, Scale and Rotation and is never persisted.
type OffGridObject struct {
	Slot     int
	Layer    int
	Pos      cp.Vector
	Asset    string
	Rotation int
	Scale    float64
	Selected bool

	// Box uses L/R for min/max x and B/T for min/max y (y grows downward).
	Box cp.BB
}

func (o *OffGridObject) Key() ObjectKey { return ObjectKey{Slot: o.Slot, Layer: o.Layer} }

func (o *OffGridObject) Angle() int { return Angle(o.Rotation) }

// OffGridStore keeps objects in iteration (draw) order: non-decreasing layer,
// ties in insertion order. Later entries are drawn on top.
type OffGridStore struct {
	objects  []*OffGridObject
	nextSlot int
	tileSize int
	sizer    AssetSizer
}

func NewOffGridStore(tileSize int, sizer AssetSizer) *OffGridStore {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &OffGridStore{tileSize: tileSize, sizer: sizer}
}

// Anchor is the fixed correction between the pointer and an object's
// top-left corner: the pointer marks the bottom-left of the first tile row.
func (s *OffGridStore) Anchor() cp.Vector {
	return cp.Vector{X: 0, Y: float64(s.tileSize)}
}

func (s *OffGridStore) Len() int { return len(s.objects) }

// Objects returns the objects in iteration order.
func (s *OffGridStore) Objects() []*OffGridObject {
	out := make([]*OffGridObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *OffGridStore) Get(k ObjectKey) (*OffGridObject, bool) {
	for _, o := range s.objects {
		if o.Slot == k.Slot && o.Layer == k.Layer {
			return o, true
		}
	}
	return nil, false
}

// BySlot finds an object by slot id alone; slots are never reused.
func (s *OffGridStore) BySlot(slot int) (*OffGridObject, bool) {
	for _, o := range s.objects {
		if o.Slot == slot {
			return o, true
		}
	}
	return nil, false
}

// PlaceAt creates an unselected object whose anchor sits on point, at
// layer 0, scale 1 and rotation 0.
func (s *OffGridStore) PlaceAt(point cp.Vector, asset string) *OffGridObject {
	o := &OffGridObject{
		Slot:  s.nextSlot,
		Pos:   point.Sub(s.Anchor()),
		Asset: asset,
		Scale: 1,
	}
	s.nextSlot++
	s.refreshBox(o)
	s.objects = append(s.objects, o)
	s.reorder()
	return o
}

// Insert adds a fully specified object, as read from a document. It fails
// when the key is taken or the scale is not a positive finite number.
func (s *OffGridStore) Insert(o *OffGridObject) error {
	if !validScale(o.Scale) {
		return fmt.Errorf("object %s: scale %v: %w", o.Key(), o.Scale, ErrInvalidInput)
	}
	if _, ok := s.BySlot(o.Slot); ok {
		return fmt.Errorf("object %s: slot already used", o.Key())
	}
	if o.Slot >= s.nextSlot {
		s.nextSlot = o.Slot + 1
	}
	s.refreshBox(o)
	s.objects = append(s.objects, o)
	s.reorder()
	return nil
}

// Remove deletes the object with key k; absence is a no-op.
func (s *OffGridStore) Remove(k ObjectKey) bool {
	for i, o := range s.objects {
		if o.Slot == k.Slot && o.Layer == k.Layer {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// HitTest returns the topmost object containing point: the last match in
// iteration order, so higher layers win and, within a layer, the newest.
func (s *OffGridStore) HitTest(point cp.Vector) (*OffGridObject, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].Box.ContainsVect(point) {
			return s.objects[i], true
		}
	}
	return nil, false
}

// RemoveHit deletes every object whose box contains point.
func (s *OffGridStore) RemoveHit(point cp.Vector) int {
	kept := s.objects[:0]
	removed := 0
	for _, o := range s.objects {
		if o.Box.ContainsVect(point) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept
	return removed
}

// MoveSelectedTo puts the anchor of every selected object on point.
func (s *OffGridStore) MoveSelectedTo(point cp.Vector) int {
	n := 0
	pos := point.Sub(s.Anchor())
	for _, o := range s.objects {
		if !o.Selected {
			continue
		}
		o.Pos = pos
		s.refreshBox(o)
		n++
	}
	return n
}

// Translate shifts every selected object by delta.
func (s *OffGridStore) Translate(delta cp.Vector) int {
	n := 0
	for _, o := range s.objects {
		if !o.Selected {
			continue
		}
		o.Pos = o.Pos.Add(delta)
		s.refreshBox(o)
		n++
	}
	return n
}

func (s *OffGridStore) RotateSelected() int {
	n := 0
	for _, o := range s.objects {
		if !o.Selected {
			continue
		}
		o.Rotation++
		s.refreshBox(o)
		n++
	}
	return n
}

// ResizeSelected sets the scale of every selected object. Non-positive,
// NaN and infinite scales are rejected without touching any object.
func (s *OffGridStore) ResizeSelected(scale float64) (int, error) {
	if !validScale(scale) {
		return 0, fmt.Errorf("scale %v: %w", scale, ErrInvalidInput)
	}
	n := 0
	for _, o := range s.objects {
		if !o.Selected {
			continue
		}
		o.Scale = scale
		s.refreshBox(o)
		n++
	}
	return n, nil
}

// SetScale resizes the object in slot regardless of selection.
func (s *OffGridStore) SetScale(slot int, scale float64) error {
	if !validScale(scale) {
		return fmt.Errorf("scale %v: %w", scale, ErrInvalidInput)
	}
	o, ok := s.BySlot(slot)
	if !ok {
		return fmt.Errorf("slot %d: %w", slot, ErrNotFound)
	}
	o.Scale = scale
	s.refreshBox(o)
	return nil
}

// SetLayer re-keys the object with the given slot: it leaves its old
// position and is appended under (slot, layer), then the collection is
// stably re-sorted by layer. The moved object therefore lands after the
// objects already on the target layer.
func (s *OffGridStore) SetLayer(slot, layer int) error {
	idx := -1
	for i, o := range s.objects {
		if o.Slot == slot {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("slot %d: %w", slot, ErrNotFound)
	}
	o := s.objects[idx]
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)
	o.Layer = layer
	s.objects = append(s.objects, o)
	s.reorder()
	return nil
}

func (s *OffGridStore) ClearSelection() {
	for _, o := range s.objects {
		o.Selected = false
	}
}

func (s *OffGridStore) Selected() []*OffGridObject {
	var out []*OffGridObject
	for _, o := range s.objects {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// Refresh rebuilds every hit box, e.g. after the sizer changed.
func (s *OffGridStore) Refresh() {
	for _, o := range s.objects {
		s.refreshBox(o)
	}
}

func (s *OffGridStore) reorder() {
	sort.SliceStable(s.objects, func(i, j int) bool {
		return s.objects[i].Layer < s.objects[j].Layer
	})
}

// assetSize falls back to one tile when the asset is unknown.
func (s *OffGridStore) assetSize(key string) (float64, float64) {
	if s.sizer != nil {
		if w, h, ok := s.sizer.AssetSize(key); ok && w > 0 && h > 0 {
			return float64(w), float64(h)
		}
	}
	return float64(s.tileSize), float64(s.tileSize)
}

func (s *OffGridStore) refreshBox(o *OffGridObject) {
	w, h := s.assetSize(o.Asset)
	if o.Angle()%180 != 0 {
		w, h = h, w
	}
	scale := o.Scale
	if !validScale(scale) {
		scale = 1
	}
	o.Box = cp.BB{
		L: o.Pos.X,
		B: o.Pos.Y,
		R: o.Pos.X + w*scale,
		T: o.Pos.Y + h*scale,
	}
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
