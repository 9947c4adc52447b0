package levels

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GridCoord is an integer tile-grid coordinate.
type GridCoord struct {
	X, Y int
}

// Key returns the "x;y" form used as the tile_map key on disk.
func (c GridCoord) Key() string {
	return fmt.Sprintf("%d;%d", c.X, c.Y)
}

func (c GridCoord) Add(o GridCoord) GridCoord {
	return GridCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c GridCoord) Sub(o GridCoord) GridCoord {
	return GridCoord{X: c.X - o.X, Y: c.Y - o.Y}
}

// CoordAt quantizes a scaled editor-space point to the grid cell containing it.
func CoordAt(x, y float64, tileSize int) GridCoord {
	if tileSize <= 0 {
		tileSize = 1
	}
	ts := float64(tileSize)
	return GridCoord{X: int(math.Floor(x / ts)), Y: int(math.Floor(y / ts))}
}

// parsePair splits an "a;b" key into two integers.
func parsePair(key string) (int, int, error) {
	a, b, ok := strings.Cut(key, ";")
	if !ok {
		return 0, 0, fmt.Errorf("key %q: missing ';'", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("key %q: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("key %q: %w", key, err)
	}
	return x, y, nil
}

// ParseGridKey parses an "x;y" tile key.
func ParseGridKey(key string) (GridCoord, error) {
	x, y, err := parsePair(key)
	if err != nil {
		return GridCoord{}, err
	}
	return GridCoord{X: x, Y: y}, nil
}

// Angle converts an unbounded quarter-turn counter into degrees in [0, 360).
func Angle(steps int) int {
	a := (steps % 4) * 90
	if a < 0 {
		a += 360
	}
	return a
}
