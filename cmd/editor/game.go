package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tileforge/config"
	"github.com/milk9111/tileforge/editor"
	"github.com/milk9111/tileforge/levels"
	"github.com/milk9111/tileforge/scripting"
)

const scriptTimeout = 2 * time.Second

// Game adapts the controller to ebiten's Update/Draw loop. Overlays and
// actions that need the filesystem or the script runtime live here.
type Game struct {
	ctrl     *editor.Controller
	cfg      config.Config
	render   *renderer
	bindings []binding
	browser  *slotBrowser
	watcher  *levels.Watcher
	script   string
	chars    []rune
}

func (g *Game) Update() error {
	in := pollInput(g.bindings, g.chars)
	g.chars = in.Chars

	if g.watcher != nil {
		if changed := g.watcher.Drain(); len(changed) > 0 && g.browser.IsOpen() {
			g.refreshSlots()
		}
	}

	if g.browser.IsOpen() {
		if in.Has(editor.ActionCancel) {
			g.browser.Close()
			return nil
		}
		g.browser.Update()
		return nil
	}

	if in.Has(editor.ActionBrowse) && !g.typing() {
		g.openBrowser()
		return nil
	}
	if in.Has(editor.ActionRunScript) && !g.typing() {
		g.runScript()
	}
	g.ctrl.Update(in)
	return nil
}

func (g *Game) typing() bool {
	return g.ctrl.LayerField.Focused || g.ctrl.SizeField.Focused || g.ctrl.NameField.Focused
}

func (g *Game) openBrowser() {
	slots, err := levels.ListSlots(g.cfg.LevelsDir)
	if err != nil {
		g.ctrl.Status = "browse failed: " + err.Error()
		return
	}
	g.browser.Open(slots)
}

func (g *Game) refreshSlots() {
	slots, err := levels.ListSlots(g.cfg.LevelsDir)
	if err != nil {
		log.Printf("Failed to list levels: %v", err)
		return
	}
	g.browser.SetSlots(slots)
}

func (g *Game) runScript() {
	src, err := scripting.LoadScript(g.script)
	if err != nil {
		g.ctrl.Status = "script failed: " + err.Error()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	stats, err := scripting.Run(ctx, g.ctrl.Document(), src)
	if err != nil {
		g.ctrl.Status = "script failed after " + stats.String() + ": " + err.Error()
		log.Printf("Script %s: %v", g.script, err)
		return
	}
	g.ctrl.Status = "script: " + stats.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(screen, g.ctrl)
	g.browser.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
