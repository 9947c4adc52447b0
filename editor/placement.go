package editor

// PlacementKind tags what a viewport click with an armed asset creates.
type PlacementKind int

const (
	PlaceNone PlacementKind = iota
	PlaceOnGrid
	PlaceOffGrid
)

// PlacementMode is the armed asset: None, OnGrid(asset) or OffGrid(asset).
type PlacementMode struct {
	Kind  PlacementKind
	Asset string
}

func Disarmed() PlacementMode { return PlacementMode{} }

func OnGrid(asset string) PlacementMode {
	return PlacementMode{Kind: PlaceOnGrid, Asset: asset}
}

func OffGrid(asset string) PlacementMode {
	return PlacementMode{Kind: PlaceOffGrid, Asset: asset}
}

func (m PlacementMode) Armed() bool { return m.Kind != PlaceNone && m.Asset != "" }

// Pick is a palette click on asset: clicking the armed asset disarms,
// any other asset is armed in the mode selected by onGrid.
func (m PlacementMode) Pick(asset string, onGrid bool) PlacementMode {
	if m.Armed() && m.Asset == asset {
		return Disarmed()
	}
	if onGrid {
		return OnGrid(asset)
	}
	return OffGrid(asset)
}

// Regrid keeps the armed asset and switches its target store.
func (m PlacementMode) Regrid(onGrid bool) PlacementMode {
	if !m.Armed() {
		return m
	}
	return PlacementMode{}.Pick(m.Asset, onGrid)
}

// TileAsset is the asset to place on the grid, empty unless armed OnGrid.
func (m PlacementMode) TileAsset() string {
	if m.Kind == PlaceOnGrid {
		return m.Asset
	}
	return ""
}

// ObjectAsset is the asset to place off the grid, empty unless armed OffGrid.
func (m PlacementMode) ObjectAsset() string {
	if m.Kind == PlaceOffGrid {
		return m.Asset
	}
	return ""
}

func (m PlacementMode) String() string {
	switch m.Kind {
	case PlaceOnGrid:
		return "on grid: " + m.Asset
	case PlaceOffGrid:
		return "off grid: " + m.Asset
	default:
		return "none"
	}
}
