package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tileforge/config"
)

// slotBrowser is a modal list of saved documents. Picking an entry hands its
// slot name to onPick and closes the overlay.
type slotBrowser struct {
	ui      *ebitenui.UI
	overlay *widget.Container
	list    *widget.List
	title   *widget.Label
	open    bool
	onPick  func(name string)

	// suppress ignores selection events caused by SetEntries.
	suppress bool
}

func newSlotBrowser(fontFace *text.Face, colors config.Colors, onPick func(name string)) *slotBrowser {
	b := &slotBrowser{ui: &ebitenui.UI{}, onPick: onPick}
	b.ui.PrimaryTheme = newEditorTheme(fontFace, colors)
	theme := b.ui.PrimaryTheme

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	b.overlay = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(withAlpha(colors.Screen, 200))),
	)

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(360, 380),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colors.Windows)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	b.title = widget.NewLabel(
		widget.LabelOpts.Text("Open level", fontFace, &widget.LabelColor{Idle: colors.FontLight, Disabled: colors.FontLight}),
	)
	b.list = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(336, 280),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		)),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if b.suppress {
				return
			}
			name, ok := args.Entry.(string)
			if !ok {
				return
			}
			b.Close()
			if b.onPick != nil {
				b.onPick(name)
			}
		}),
	)
	cancelBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			b.Close()
		}),
	)

	dialog.AddChild(b.title)
	dialog.AddChild(b.list)
	dialog.AddChild(cancelBtn)
	b.overlay.AddChild(dialog)
	root.AddChild(b.overlay)
	b.ui.Container = root
	b.overlay.GetWidget().Visibility = widget.Visibility_Hide
	return b
}

func (b *slotBrowser) IsOpen() bool { return b.open }

func (b *slotBrowser) Open(slots []string) {
	b.SetSlots(slots)
	b.open = true
	b.overlay.GetWidget().Visibility = widget.Visibility_Show
}

func (b *slotBrowser) Close() {
	b.open = false
	b.overlay.GetWidget().Visibility = widget.Visibility_Hide
}

// SetSlots replaces the listed slot names, e.g. after the watcher reported a
// change in the documents directory.
func (b *slotBrowser) SetSlots(slots []string) {
	entries := make([]any, len(slots))
	for i, s := range slots {
		entries[i] = s
	}
	b.suppress = true
	b.list.SetEntries(entries)
	b.suppress = false
	label := "Open level"
	if len(slots) == 0 {
		label = "No saved levels"
	}
	b.title.Label = label
}

func (b *slotBrowser) Update() {
	if b.open {
		b.ui.Update()
	}
}

func (b *slotBrowser) Draw(screen *ebiten.Image) {
	if b.open {
		b.ui.Draw(screen)
	}
}
