package levels

import "sort"

// Tile is an entity snapped to the grid. At most one exists per GridCoord.
type Tile struct {
	Pos      GridCoord
	Asset    string
	Rotation int
	Selected bool
}

// Angle returns the effective rotation in degrees.
func (t *Tile) Angle() int { return Angle(t.Rotation) }

// TileMap is the sparse on-grid store. Lookup by coordinate is the only query.
type TileMap struct {
	tiles map[GridCoord]*Tile
}

func NewTileMap() *TileMap {
	return &TileMap{tiles: make(map[GridCoord]*Tile)}
}

func (m *TileMap) Len() int { return len(m.tiles) }

func (m *TileMap) At(c GridCoord) (*Tile, bool) {
	t, ok := m.tiles[c]
	return t, ok
}

// Insert creates an unselected tile at c. It reports false and leaves the
// map untouched when c is already occupied.
func (m *TileMap) Insert(c GridCoord, asset string) (*Tile, bool) {
	if _, ok := m.tiles[c]; ok {
		return nil, false
	}
	t := &Tile{Pos: c, Asset: asset}
	m.tiles[c] = t
	return t, true
}

// Remove deletes the tile at c. Removing an empty cell is a no-op.
func (m *TileMap) Remove(c GridCoord) bool {
	if _, ok := m.tiles[c]; !ok {
		return false
	}
	delete(m.tiles, c)
	return true
}

// RotateSelected advances every selected tile by one quarter turn and
// returns how many tiles were rotated.
func (m *TileMap) RotateSelected() int {
	n := 0
	for _, t := range m.tiles {
		if t.Selected {
			t.Rotation++
			n++
		}
	}
	return n
}

func (m *TileMap) ClearSelection() {
	for _, t := range m.tiles {
		t.Selected = false
	}
}

// Tiles returns every tile in row-major order (y, then x).
func (m *TileMap) Tiles() []*Tile {
	out := make([]*Tile, 0, len(m.tiles))
	for _, t := range m.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Y != out[j].Pos.Y {
			return out[i].Pos.Y < out[j].Pos.Y
		}
		return out[i].Pos.X < out[j].Pos.X
	})
	return out
}

func (m *TileMap) Selected() []*Tile {
	var out []*Tile
	for _, t := range m.Tiles() {
		if t.Selected {
			out = append(out, t)
		}
	}
	return out
}
