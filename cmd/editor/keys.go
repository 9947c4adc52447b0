package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tileforge/editor"
)

// binding is one key chord, e.g. "ctrl+S".
type binding struct {
	action editor.Action
	key    ebiten.Key
	ctrl   bool
}

// parseBindings turns the config's action -> key name map into chords.
// Key names are the ones ebiten.Key understands, case-insensitive.
func parseBindings(keys map[string]string) ([]binding, error) {
	var out []binding
	for name, chord := range keys {
		action, err := editor.ParseAction(name)
		if err != nil {
			return nil, err
		}
		b := binding{action: action}
		keyName := strings.TrimSpace(chord)
		if rest, ok := cutPrefixFold(keyName, "ctrl+"); ok {
			b.ctrl = true
			keyName = rest
		}
		if err := b.key.UnmarshalText([]byte(keyName)); err != nil {
			return nil, fmt.Errorf("key binding %s=%q: %w", name, chord, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// pollInput snapshots this frame's pointer and keyboard state.
func pollInput(bindings []binding, chars []rune) editor.Input {
	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	ctrl := ctrlHeld()

	in := editor.Input{
		X:                float64(x),
		Y:                float64(y),
		Pressed:          ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:      inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased:     inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightJustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Shift:            ebiten.IsKeyPressed(ebiten.KeyShift),
		WheelY:           wheelY,
		Backspace:        inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		Enter:            inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
	}
	if !ctrl {
		in.Chars = ebiten.AppendInputChars(chars[:0])
	}
	for _, b := range bindings {
		if b.ctrl != ctrl {
			continue
		}
		if inpututil.IsKeyJustPressed(b.key) {
			in.Actions = append(in.Actions, b.action)
		}
	}
	return in
}
