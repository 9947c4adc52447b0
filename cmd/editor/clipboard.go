package main

import (
	"log"

	"github.com/milk9111/tileforge/editor"
	"golang.design/x/clipboard"
)

type systemClipboard struct{}

func (systemClipboard) Read() []byte { return clipboard.Read(clipboard.FmtText) }

func (systemClipboard) Write(data []byte) { clipboard.Write(clipboard.FmtText, data) }

// newClipboard returns the system clipboard, or nil when it cannot be used;
// the controller then keeps copies in process.
func newClipboard() editor.Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, copies stay in the editor: %v", err)
		return nil
	}
	return systemClipboard{}
}
