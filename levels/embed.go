package levels

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// LoadFromFS reads a document from fsys, e.g. the embedded demo levels.
func LoadFromFS(fsys fs.FS, name string, sizer AssetSizer) (*Document, error) {
	slot, err := SlotName(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, slot+".json")
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	d, err := Decode(data, sizer)
	if err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return d, nil
}
