package levels

import "testing"

type sizes map[string][2]int

func (s sizes) AssetSize(key string) (int, int, bool) {
	v, ok := s[key]
	return v[0], v[1], ok
}

func TestTileMapSingleOccupancy(t *testing.T) {
	d := NewDocument(16, nil)
	c := GridCoord{X: 3, Y: -2}

	if _, ok := d.PlaceOrSelectTile(c, "grass", false); !ok {
		t.Fatalf("expected placement on empty cell")
	}
	tile, ok := d.PlaceOrSelectTile(c, "stone", false)
	if !ok {
		t.Fatalf("expected occupied cell to be handled")
	}
	if d.Tiles.Len() != 1 {
		t.Fatalf("expected 1 tile, got %d", d.Tiles.Len())
	}
	if tile.Asset != "grass" {
		t.Fatalf("occupied cell was overwritten with %q", tile.Asset)
	}
	if tile.Selected {
		t.Fatalf("second click should toggle selection off")
	}
	d.PlaceOrSelectTile(c, "stone", false)
	if !tile.Selected {
		t.Fatalf("third click should toggle selection back on")
	}
}

func TestTileMapPlaceWithoutAsset(t *testing.T) {
	d := NewDocument(16, nil)
	if _, ok := d.PlaceOrSelectTile(GridCoord{}, "", false); ok {
		t.Fatalf("expected no-op with nothing armed")
	}
	if d.Tiles.Len() != 0 {
		t.Fatalf("expected empty map")
	}
}

func TestTileMapRemove(t *testing.T) {
	m := NewTileMap()
	m.Insert(GridCoord{X: 1, Y: 1}, "a")

	cases := []struct {
		name string
		at   GridCoord
		want bool
	}{
		{"present", GridCoord{X: 1, Y: 1}, true},
		{"already_removed", GridCoord{X: 1, Y: 1}, false},
		{"never_present", GridCoord{X: 9, Y: 9}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.Remove(c.at); got != c.want {
				t.Fatalf("Remove(%v) = %v, want %v", c.at, got, c.want)
			}
		})
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d", m.Len())
	}
}

func TestTileRotationWrapsVisuallyOnly(t *testing.T) {
	d := NewDocument(16, nil)
	tile, _ := d.PlaceOrSelectTile(GridCoord{}, "a", false)
	other, _ := d.Tiles.Insert(GridCoord{X: 1}, "b")

	for i := 0; i < 4; i++ {
		d.Tiles.RotateSelected()
	}
	if tile.Rotation != 4 {
		t.Fatalf("expected counter 4, got %d", tile.Rotation)
	}
	if tile.Angle() != 0 {
		t.Fatalf("expected angle 0, got %d", tile.Angle())
	}
	if other.Rotation != 0 {
		t.Fatalf("unselected tile rotated")
	}
	for steps := 0; steps < 12; steps++ {
		if Angle(steps) != Angle(steps%4) || Angle(steps) != (steps%4)*90 {
			t.Fatalf("Angle(%d) = %d", steps, Angle(steps))
		}
	}
}

func TestCoordAtFloors(t *testing.T) {
	cases := []struct {
		x, y float64
		want GridCoord
	}{
		{0, 0, GridCoord{0, 0}},
		{15.9, 16, GridCoord{0, 1}},
		{-0.5, -16.1, GridCoord{-1, -2}},
	}
	for _, c := range cases {
		if got := CoordAt(c.x, c.y, 16); got != c.want {
			t.Fatalf("CoordAt(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestParseGridKey(t *testing.T) {
	c, err := ParseGridKey("-3;7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (GridCoord{X: -3, Y: 7}) || c.Key() != "-3;7" {
		t.Fatalf("unexpected coord %v", c)
	}
	for _, bad := range []string{"", "1", "a;2", "1;b"} {
		if _, err := ParseGridKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
