package scripting

import (
	"context"
	"embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tileforge/levels"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a generator script from disk, falling back to the
// embedded scripts by base name.
func LoadScript(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(clean, ".tengo") {
		clean += ".tengo"
	}
	data, err := ScriptsFS.ReadFile("scripts/" + clean)
	if err != nil {
		return nil, fmt.Errorf("scripting: load %s: %w", name, err)
	}
	return data, nil
}

// Stats counts the edits a script made.
type Stats struct {
	Tiles   int
	Removed int
	Objects int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d tiles, %d removed, %d objects", s.Tiles, s.Removed, s.Objects)
}

// Run executes a tengo generator script against doc. The script sees:
//
//	place_tile(x, y, asset)                -> bool, false if the cell is taken
//	remove_tile(x, y)                      -> bool
//	place_object(x, y, asset[, layer[, scale]]) -> slot; x, y is the top-left corner
//	tile_size                              -> int
//
// plus the tengo standard library. Edits are applied as the script runs, so
// a failing script keeps whatever it did before the error.
func Run(ctx context.Context, doc *levels.Document, src []byte) (Stats, error) {
	var stats Stats
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, v := range map[string]any{
		"tile_size":    doc.TileSize,
		"place_tile":   placeTile(doc, &stats),
		"remove_tile":  removeTile(doc, &stats),
		"place_object": placeObject(doc, &stats),
	} {
		if err := script.Add(name, v); err != nil {
			return stats, fmt.Errorf("scripting: bind %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return stats, fmt.Errorf("scripting: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return stats, fmt.Errorf("scripting: run: %w", err)
	}
	return stats, nil
}

func placeTile(doc *levels.Document, stats *Stats) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "place_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := intPair(args)
		if err != nil {
			return nil, err
		}
		asset, err := stringArg(args[2], "asset")
		if err != nil {
			return nil, err
		}
		if _, ok := doc.Tiles.Insert(levels.GridCoord{X: x, Y: y}, asset); !ok {
			return tengo.FalseValue, nil
		}
		stats.Tiles++
		return tengo.TrueValue, nil
	}}
}

func removeTile(doc *levels.Document, stats *Stats) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "remove_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := intPair(args)
		if err != nil {
			return nil, err
		}
		if !doc.Tiles.Remove(levels.GridCoord{X: x, Y: y}) {
			return tengo.FalseValue, nil
		}
		stats.Removed++
		return tengo.TrueValue, nil
	}}
}

func placeObject(doc *levels.Document, stats *Stats) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "place_object", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 || len(args) > 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, err := floatArg(args[0], "x")
		if err != nil {
			return nil, err
		}
		y, err := floatArg(args[1], "y")
		if err != nil {
			return nil, err
		}
		asset, err := stringArg(args[2], "asset")
		if err != nil {
			return nil, err
		}
		layer, scale := 0, 1.0
		if len(args) > 3 {
			v, ok := tengo.ToInt(args[3])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "layer", Expected: "int", Found: args[3].TypeName()}
			}
			layer = v
		}
		if len(args) > 4 {
			if scale, err = floatArg(args[4], "scale"); err != nil {
				return nil, err
			}
		}

		if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return nil, fmt.Errorf("place_object: scale %v: %w", scale, levels.ErrInvalidInput)
		}

		store := doc.OffGrid
		o := store.PlaceAt(cp.Vector{X: x, Y: y}.Add(store.Anchor()), asset)
		if err := store.SetScale(o.Slot, scale); err != nil {
			return nil, err
		}
		if layer != 0 {
			if err := store.SetLayer(o.Slot, layer); err != nil {
				return nil, err
			}
		}
		stats.Objects++
		return &tengo.Int{Value: int64(o.Slot)}, nil
	}}
}

func intPair(args []tengo.Object) (int, int, error) {
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func floatArg(obj tengo.Object, name string) (float64, error) {
	v, ok := tengo.ToFloat64(obj)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "float", Found: obj.TypeName()}
	}
	return v, nil
}

func stringArg(obj tengo.Object, name string) (string, error) {
	s, ok := obj.(*tengo.String)
	if !ok || s.Value == "" {
		return "", tengo.ErrInvalidArgumentType{Name: name, Expected: "non-empty string", Found: obj.TypeName()}
	}
	return s.Value, nil
}
