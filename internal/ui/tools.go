package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/transfer"
)

// colorSwatch is a tappable color square for the stroke palette.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(hex string)) *colorSwatch {
	c, err := board.ParseHexColor(hex)
	if err != nil {
		c = color.NRGBA{A: 0xff}
	}
	s := &colorSwatch{Color: c, Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// NewToolbar assembles the tool buttons, palette, stroke slider and the
// command actions.
func NewToolbar(a *App) fyne.CanvasObject {
	tools := []struct {
		label string
		tool  board.Tool
	}{
		{"Select", board.ToolSelect},
		{"Pen", board.ToolPen},
		{"Line", board.ToolLine},
		{"Rect", board.ToolRect},
		{"Ellipse", board.ToolEllipse},
		{"Circle", board.ToolCircle},
	}
	toolBox := container.NewHBox()
	for _, t := range tools {
		tool := t.tool
		toolBox.Add(widget.NewButton(t.label, func() { a.SetTool(tool) }))
	}

	colorBox := container.NewHBox(
		newColorSwatch("#000000", a.Engine.SetStroke),
		newColorSwatch("#ff0000", a.Engine.SetStroke),
		newColorSwatch("#00aa00", a.Engine.SetStroke),
		newColorSwatch("#0000ff", a.Engine.SetStroke),
		newColorSwatch("#ffaa00", a.Engine.SetStroke),
	)

	strokeSlider := widget.NewSlider(1.0, 30.0)
	strokeSlider.SetValue(a.Engine.Style().StrokeWidth)
	strokeSlider.OnChanged = func(val float64) { a.SetStrokeWidth(val) }
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), strokeSlider)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), a.Redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentCopyIcon(), a.Copy),
		widget.NewToolbarAction(theme.ContentPasteIcon(), a.Paste),
		widget.NewToolbarAction(theme.DeleteIcon(), a.Remove),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderIcon(), a.Group),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.Ungroup),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaReplayIcon(), a.ClearBoard),
	)

	exportSelect := widget.NewSelect(
		[]string{"png", "jpeg", "svg", "json", "pdf"},
		func(choice string) { a.Export(transfer.Format(choice)) },
	)
	exportSelect.PlaceHolder = "Export…"

	importBtn := widget.NewButtonWithIcon("Import", theme.UploadIcon(), a.Import)

	return container.NewHBox(
		toolBox,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		actions,
		widget.NewSeparator(),
		exportSelect,
		importBtn,
		layout.NewSpacer(),
	)
}
