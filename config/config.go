package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const Version = "V1.0.0"

var ErrInvalidConfig = errors.New("invalid config")

// Color is a color read from YAML as "#rrggbb", "#rrggbbaa" or an SVG
// color name such as "cornflowerblue".
type Color struct {
	color.Color
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor accepts hex notation with an optional alpha byte, or a name
// from golang.org/x/image/colornames.
func ParseColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		n, err := parse(2 * i)
		if err != nil {
			return nil, fmt.Errorf("invalid color format: %s", v)
		}
		rgba[i] = n
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}

func rgb(r, g, b uint8) Color { return Color{color.NRGBA{R: r, G: g, B: b, A: 255}} }

type Colors struct {
	Screen           Color `yaml:"screen"`
	EditorBackground Color `yaml:"editor_background"`
	Select           Color `yaml:"select"`
	Windows          Color `yaml:"windows"`
	FontLight        Color `yaml:"font_light"`
	FontDark         Color `yaml:"font_dark"`
	ButtonOff        Color `yaml:"button_off"`
	ButtonOn         Color `yaml:"button_on"`
	GridLines        Color `yaml:"grid_lines"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config holds the editor settings. Keys maps action names to key names,
// optionally prefixed with "ctrl+".
type Config struct {
	TileSize           int               `yaml:"tile_size"`
	AssetsPerRow       int               `yaml:"assets_per_row"`
	PanSpeed           int               `yaml:"tile_map_scroll_speed"`
	PaletteScrollSpeed int               `yaml:"assets_scroll_speed"`
	AssetsDir          string            `yaml:"assets_dir"`
	LevelsDir          string            `yaml:"levels_dir"`
	Window             Window            `yaml:"window"`
	Colors             Colors            `yaml:"colors"`
	Keys               map[string]string `yaml:"keys"`
}

func Default() Config {
	return Config{
		TileSize:           16,
		AssetsPerRow:       13,
		PanSpeed:           2,
		PaletteScrollSpeed: 3,
		AssetsDir:          "assets",
		LevelsDir:          "levels",
		Window:             Window{Width: 1280, Height: 720, Title: "Tileforge " + Version},
		Colors: Colors{
			Screen:           rgb(28, 28, 27),
			EditorBackground: rgb(96, 130, 182),
			Select:           rgb(255, 255, 0),
			Windows:          rgb(58, 58, 57),
			FontLight:        rgb(255, 255, 255),
			FontDark:         rgb(0, 0, 0),
			ButtonOff:        rgb(255, 0, 0),
			ButtonOn:         rgb(0, 255, 0),
			GridLines:        rgb(0, 0, 0),
		},
		Keys: map[string]string{
			"pan_left":          "ArrowLeft",
			"pan_right":         "ArrowRight",
			"pan_up":            "ArrowUp",
			"pan_down":          "ArrowDown",
			"rotate":            "R",
			"save":              "ctrl+S",
			"load":              "ctrl+L",
			"copy":              "ctrl+C",
			"paste":             "ctrl+V",
			"cancel":            "Escape",
			"toggle_grid":       "Tab",
			"toggle_grid_lines": "G",
			"browse":            "ctrl+O",
			"run_script":        "F5",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, v := range []struct {
		name string
		val  int
	}{
		{"tile_size", c.TileSize},
		{"assets_per_row", c.AssetsPerRow},
		{"tile_map_scroll_speed", c.PanSpeed},
		{"assets_scroll_speed", c.PaletteScrollSpeed},
		{"window.width", c.Window.Width},
		{"window.height", c.Window.Height},
	} {
		if v.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d: %w", v.name, v.val, ErrInvalidConfig)
		}
	}
	return nil
}
