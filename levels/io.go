package levels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
)

type tileRecord struct {
	Pos      [2]int `json:"pos"`
	Type     string `json:"type"`
	Rotate   int    `json:"rotate"`
	Selected bool   `json:"selected"`
}

type objectRecord struct {
	Pos      [2]float64 `json:"pos"`
	Layer    int        `json:"layer"`
	Type     string     `json:"type"`
	Rotate   int        `json:"rotate"`
	Size     float64    `json:"size"`
	Selected bool       `json:"selected"`
}

type documentFile struct {
	TileMap  map[string]tileRecord   `json:"tile_map"`
	OffGrid  map[string]objectRecord `json:"offgrid"`
	TileSize int                     `json:"tile_size"`
}

// Encode serializes d in the on-disk format.
func Encode(d *Document) ([]byte, error) {
	return encode(d, false)
}

func encode(d *Document, selectedOnly bool) ([]byte, error) {
	f := documentFile{
		TileMap:  make(map[string]tileRecord),
		OffGrid:  make(map[string]objectRecord),
		TileSize: d.TileSize,
	}
	for _, t := range d.Tiles.Tiles() {
		if selectedOnly && !t.Selected {
			continue
		}
		f.TileMap[t.Pos.Key()] = tileRecord{
			Pos:      [2]int{t.Pos.X, t.Pos.Y},
			Type:     t.Asset,
			Rotate:   t.Rotation,
			Selected: t.Selected,
		}
	}
	for _, o := range d.OffGrid.Objects() {
		if selectedOnly && !o.Selected {
			continue
		}
		f.OffGrid[o.Key().String()] = objectRecord{
			Pos:      [2]float64{o.Pos.X, o.Pos.Y},
			Layer:    o.Layer,
			Type:     o.Asset,
			Rotate:   o.Rotation,
			Size:     o.Scale,
			Selected: o.Selected,
		}
	}
	return json.MarshalIndent(f, "", "  ")
}

// Decode parses a document. Hit boxes are rebuilt from sizer. Objects are
// ordered by (layer, slot) since JSON objects carry no order.
func Decode(data []byte, sizer AssetSizer) (*Document, error) {
	var f documentFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if f.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile_size %d", ErrMalformedDocument, f.TileSize)
	}
	d := NewDocument(f.TileSize, sizer)

	for key, rec := range f.TileMap {
		c, err := ParseGridKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: tile_map: %v", ErrMalformedDocument, err)
		}
		if c.X != rec.Pos[0] || c.Y != rec.Pos[1] {
			return nil, fmt.Errorf("%w: tile_map key %q does not match pos %v", ErrMalformedDocument, key, rec.Pos)
		}
		t, ok := d.Tiles.Insert(c, rec.Type)
		if !ok {
			return nil, fmt.Errorf("%w: tile_map: duplicate cell %q", ErrMalformedDocument, key)
		}
		t.Rotation = rec.Rotate
		t.Selected = rec.Selected
	}

	objs := make([]*OffGridObject, 0, len(f.OffGrid))
	for key, rec := range f.OffGrid {
		k, err := ParseObjectKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: offgrid: %v", ErrMalformedDocument, err)
		}
		if k.Layer != rec.Layer {
			return nil, fmt.Errorf("%w: offgrid key %q does not match layer %d", ErrMalformedDocument, key, rec.Layer)
		}
		objs = append(objs, &OffGridObject{
			Slot:     k.Slot,
			Layer:    rec.Layer,
			Pos:      cp.Vector{X: rec.Pos[0], Y: rec.Pos[1]},
			Asset:    rec.Type,
			Rotation: rec.Rotate,
			Scale:    rec.Size,
			Selected: rec.Selected,
		})
	}
	sort.Slice(objs, func(i, j int) bool {
		if objs[i].Layer != objs[j].Layer {
			return objs[i].Layer < objs[j].Layer
		}
		return objs[i].Slot < objs[j].Slot
	})
	for _, o := range objs {
		if err := d.OffGrid.Insert(o); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
	}
	return d, nil
}

// SlotName normalizes a user supplied save name: directories and a trailing
// .json are dropped.
func SlotName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, ".json")
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("save name %q: %w", name, ErrInvalidInput)
	}
	return base, nil
}

// SlotPath returns <dir>/<name>.json for a save slot.
func SlotPath(dir, name string) (string, error) {
	slot, err := SlotName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, slot+".json"), nil
}

// Save writes d to its slot. The file is replaced atomically so a failed
// write never leaves a truncated document behind.
func Save(dir, name string, d *Document) error {
	path, err := SlotPath(dir, name)
	if err != nil {
		return err
	}
	data, err := Encode(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create documents dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads a slot and returns a fresh document; the caller swaps it in.
func Load(dir, name string, sizer AssetSizer) (*Document, error) {
	path, err := SlotPath(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	d, err := Decode(data, sizer)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// ListSlots returns the sorted names of the documents saved in dir. A
// missing directory yields no slots.
func ListSlots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	slots := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isDocumentFile(entry.Name()) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(slots)
	return slots, nil
}

func isDocumentFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".json") && !strings.HasPrefix(base, ".")
}

// Dir is a documents directory bound to an asset sizer.
type Dir struct {
	Path  string
	Sizer AssetSizer
}

func (d Dir) Save(name string, doc *Document) error { return Save(d.Path, name, doc) }

func (d Dir) Load(name string) (*Document, error) { return Load(d.Path, name, d.Sizer) }

func (d Dir) Slots() ([]string, error) { return ListSlots(d.Path) }
