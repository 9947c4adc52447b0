package editor

// Rect is an axis-aligned screen rectangle. Contains is half-open so that
// adjacent panels never both claim a point.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Region names a top-level panel of the editor window.
type Region int

const (
	RegionNone Region = iota
	RegionViewport
	RegionPalette
	RegionEntityList
	RegionInfo
	RegionSettings
)

func (r Region) String() string {
	switch r {
	case RegionViewport:
		return "viewport"
	case RegionPalette:
		return "palette"
	case RegionEntityList:
		return "entity list"
	case RegionInfo:
		return "info"
	case RegionSettings:
		return "settings"
	default:
		return "none"
	}
}

// Layout is the fixed screen geometry. The viewport shows ScaledW x ScaledH
// units of editor space stretched over its screen rectangle.
type Layout struct {
	Screen   Rect
	Viewport Rect
	ScaledW  float64
	ScaledH  float64

	Palette    Rect
	EntityList Rect
	Info       Rect
	Settings   Rect

	// info panel widgets
	LayerField Rect
	LayerApply Rect
	SizeField  Rect
	SizeApply  Rect
	Rotate     Rect

	// settings panel widgets
	NameField Rect
	Save      Rect
	Load      Rect
	GridMode  Rect
	GridLines Rect

	RowHeight float64
}

// DefaultLayout splits a w x h window: the viewport and palette stack on
// the left three quarters, the entity list, info and settings panels on the
// right. The viewport is drawn at twice the editor scale.
func DefaultLayout(w, h int) Layout {
	fw, fh := float64(w), float64(h)
	leftW := fw * 3 / 4
	rightW := fw - leftW
	vpH := fh * 3 / 5

	l := Layout{
		Screen:     Rect{0, 0, fw, fh},
		Viewport:   Rect{0, 0, leftW, vpH},
		ScaledW:    leftW / 2,
		ScaledH:    vpH / 2,
		Palette:    Rect{0, vpH, leftW, fh - vpH},
		EntityList: Rect{leftW, 0, rightW, vpH / 2},
		Info:       Rect{leftW, vpH / 2, rightW, vpH / 2},
		Settings:   Rect{leftW, vpH, rightW, fh - vpH},
		RowHeight:  18,
	}

	const pad, rowH, btnW = 10, 24, 90
	fieldW := rightW - 3*pad - btnW
	in := l.Info
	l.LayerField = Rect{in.X + pad, in.Y + 30, fieldW, rowH}
	l.LayerApply = Rect{in.X + 2*pad + fieldW, in.Y + 30, btnW, rowH}
	l.SizeField = Rect{in.X + pad, in.Y + 70, fieldW, rowH}
	l.SizeApply = Rect{in.X + 2*pad + fieldW, in.Y + 70, btnW, rowH}
	l.Rotate = Rect{in.X + pad, in.Y + 110, rightW - 2*pad, rowH}

	st := l.Settings
	half := (rightW - 3*pad) / 2
	l.NameField = Rect{st.X + pad, st.Y + 30, fieldW, rowH}
	l.Save = Rect{st.X + 2*pad + fieldW, st.Y + 30, btnW, rowH}
	l.Load = Rect{st.X + 2*pad + fieldW, st.Y + 64, btnW, rowH}
	l.GridMode = Rect{st.X + pad, st.Y + 100, half, rowH}
	l.GridLines = Rect{st.X + 2*pad + half, st.Y + 100, half, rowH}
	return l
}

// RegionAt resolves the panel under a screen point. Regions are checked in
// a fixed order and the first match wins.
func (l Layout) RegionAt(x, y float64) Region {
	for _, r := range []struct {
		region Region
		rect   Rect
	}{
		{RegionViewport, l.Viewport},
		{RegionPalette, l.Palette},
		{RegionEntityList, l.EntityList},
		{RegionInfo, l.Info},
		{RegionSettings, l.Settings},
	} {
		if r.rect.Contains(x, y) {
			return r.region
		}
	}
	return RegionNone
}

// Zoom is the number of screen pixels per editor unit along each axis.
func (l Layout) Zoom() (float64, float64) {
	return l.Viewport.W / l.ScaledW, l.Viewport.H / l.ScaledH
}
