package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
)

// BoardWidget is the drawing surface. It feeds pointer input to the
// engine and renders the canvas arena with fyne canvas primitives.
type BoardWidget struct {
	widget.BaseWidget
	Canvas *board.Canvas
	Engine *board.Engine
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(c *board.Canvas, e *board.Engine) *BoardWidget {
	b := &BoardWidget{Canvas: c, Engine: e}
	b.ExtendBaseWidget(b)

	// repaint on every observable mutation
	repaint := func(board.Event) { b.Refresh() }
	for _, key := range []board.Key{
		board.EventObjectAdded,
		board.EventObjectRemoved,
		board.EventObjectModified,
		board.EventGrouped,
		board.EventUngrouped,
		board.EventCleared,
		board.EventPasted,
	} {
		c.Bus().Subscribe(key, repaint)
	}
	return b
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p := board.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}
		if e.Modifier&fyne.KeyModifierShift != 0 {
			b.Engine.PointerDownAdditive(p)
		} else {
			b.Engine.PointerDown(p)
		}
		b.Refresh()
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.Engine.PointerUp(board.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)})
		b.Refresh()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.Engine.PointerMove(board.Point{X: float64(e.Position.X), Y: float64(e.Position.Y)})
	b.Refresh()
}

func (b *BoardWidget) DragEnd()                       {}
func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	for _, s := range r.board.Canvas.Objects() {
		objects = append(objects, shapeObjects(s)...)
		if r.board.Canvas.Selected(s.ID) {
			objects = append(objects, selectionMarker(s))
		}
	}
	return objects
}

func shapeObjects(s *board.Shape) []fyne.CanvasObject {
	stroke := strokeColor(s.Attrs.Stroke)
	width := float32(s.Attrs.StrokeWidth)

	switch s.Kind {
	case board.KindPath:
		var lines []fyne.CanvasObject
		pts := s.Attrs.Points
		for i := 1; i < len(pts); i++ {
			seg := canvas.NewLine(stroke)
			seg.StrokeWidth = width
			seg.Position1 = fyne.NewPos(float32(pts[i-1].X), float32(pts[i-1].Y))
			seg.Position2 = fyne.NewPos(float32(pts[i].X), float32(pts[i].Y))
			lines = append(lines, seg)
		}
		return lines
	case board.KindLine:
		l := canvas.NewLine(stroke)
		l.StrokeWidth = width
		l.Position1 = fyne.NewPos(float32(s.Attrs.X1), float32(s.Attrs.Y1))
		l.Position2 = fyne.NewPos(float32(s.Attrs.X2), float32(s.Attrs.Y2))
		return []fyne.CanvasObject{l}
	case board.KindRect:
		rect := canvas.NewRectangle(fillColor(s.Attrs.Fill))
		rect.StrokeColor = stroke
		rect.StrokeWidth = width
		rect.Move(fyne.NewPos(float32(s.Attrs.Left), float32(s.Attrs.Top)))
		rect.Resize(fyne.NewSize(float32(s.Attrs.Width), float32(s.Attrs.Height)))
		return []fyne.CanvasObject{rect}
	case board.KindEllipse, board.KindCircle:
		circ := canvas.NewCircle(fillColor(s.Attrs.Fill))
		circ.StrokeColor = stroke
		circ.StrokeWidth = width
		circ.Position1 = fyne.NewPos(float32(s.Attrs.Left), float32(s.Attrs.Top))
		circ.Position2 = fyne.NewPos(
			float32(s.Attrs.Left+s.Attrs.Width),
			float32(s.Attrs.Top+s.Attrs.Height))
		return []fyne.CanvasObject{circ}
	case board.KindImage:
		if s.Src != "" {
			img := canvas.NewImageFromFile(s.Src)
			img.FillMode = canvas.ImageFillContain
			img.Move(fyne.NewPos(float32(s.Attrs.Left), float32(s.Attrs.Top)))
			img.Resize(fyne.NewSize(float32(s.Attrs.Width), float32(s.Attrs.Height)))
			return []fyne.CanvasObject{img}
		}
	}
	return nil
}

func selectionMarker(s *board.Shape) fyne.CanvasObject {
	marker := canvas.NewRectangle(color.Transparent)
	marker.StrokeColor = color.NRGBA{R: 0x2d, G: 0x7f, B: 0xf6, A: 0xff}
	marker.StrokeWidth = 1
	marker.Move(fyne.NewPos(float32(s.Attrs.Left)-3, float32(s.Attrs.Top)-3))
	marker.Resize(fyne.NewSize(float32(s.Attrs.Width)+6, float32(s.Attrs.Height)+6))
	return marker
}

func strokeColor(hex string) color.Color {
	c, err := board.ParseHexColor(hex)
	if err != nil {
		return color.Black
	}
	return c
}

func fillColor(hex string) color.Color {
	if hex == "" {
		return color.Transparent
	}
	c, err := board.ParseHexColor(hex)
	if err != nil {
		return color.Transparent
	}
	return c
}

func (r *boardRenderer) Layout(size fyne.Size) { r.background.Resize(size) }
func (r *boardRenderer) MinSize() fyne.Size    { return fyne.NewSize(300, 300) }
func (r *boardRenderer) Refresh()              { canvas.Refresh(r.board) }
func (r *boardRenderer) Destroy()              {}
