package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileforge/assets"
	"github.com/milk9111/tileforge/config"
	"github.com/milk9111/tileforge/editor"
	"github.com/milk9111/tileforge/levels"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file (defaults are used when empty)")
	assetsDir := flag.String("dir", "", "Directory containing asset images (overrides assets_dir)")
	levelName := flag.String("level", "demo", "Level to open from the levels directory (basename, .json optional)")
	scriptPath := flag.String("script", "ground", "Generator script run by the run_script key")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}

	catalog, err := assets.LoadDir(cfg.AssetsDir)
	if err != nil {
		log.Printf("Failed to load assets from %s, using built-in set: %v", cfg.AssetsDir, err)
		catalog = assets.Builtin()
	}
	log.Printf("Loaded %d assets", catalog.Len())

	storage := levels.Dir{Path: cfg.LevelsDir, Sizer: catalog}
	doc, err := storage.Load(*levelName)
	if err != nil {
		doc, err = levels.LoadFromFS(levels.LevelsFS, *levelName, catalog)
		if err != nil {
			log.Printf("Starting with an empty level: %v", err)
			doc = levels.NewDocument(cfg.TileSize, catalog)
		}
	}

	face, err := newFontFace(14)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	bindings, err := parseBindings(cfg.Keys)
	if err != nil {
		log.Fatalf("Failed to parse key bindings: %v", err)
	}

	r := &renderer{face: face, colors: cfg.Colors, images: newImageCache(catalog, cfg.TileSize)}
	ctrl := editor.NewController(doc, editor.Options{
		Layout:             editor.DefaultLayout(cfg.Window.Width, cfg.Window.Height),
		AssetsPerRow:       cfg.AssetsPerRow,
		PanSpeed:           cfg.PanSpeed,
		PaletteScrollSpeed: cfg.PaletteScrollSpeed,
		SaveName:           *levelName,
		Measure:            r.measure,
		Storage:            storage,
		Clipboard:          newClipboard(),
		Catalog:            catalog,
	})

	g := &Game{
		ctrl:     ctrl,
		cfg:      cfg,
		render:   r,
		bindings: bindings,
		script:   *scriptPath,
	}
	g.browser = newSlotBrowser(&face, cfg.Colors, func(name string) {
		ctrl.Load(name)
	})

	if err := os.MkdirAll(cfg.LevelsDir, 0o755); err != nil {
		log.Printf("Failed to create levels directory: %v", err)
	} else if w, err := levels.NewWatcher(cfg.LevelsDir); err != nil {
		log.Printf("Level watcher disabled: %v", err)
	} else {
		g.watcher = w
		defer w.Close()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
