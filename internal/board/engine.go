package board

import "math"

// Tool is the active interaction mode.
type Tool string

const (
	ToolSelect  Tool = "select"
	ToolPen     Tool = "pen"
	ToolLine    Tool = "line"
	ToolRect    Tool = "rect"
	ToolEllipse Tool = "ellipse"
	ToolCircle  Tool = "circle"
)

// Engine interprets pointer input against the canvas according to the
// active tool. One gesture at a time: a pointer-down while a gesture is
// in flight is ignored.
type Engine struct {
	canvas *Canvas
	mode   Tool
	style  Style

	// current creation gesture
	start *Point
	draft string

	// current select-mode drag
	dragID     string
	dragLast   Point
	dragBefore Attrs
	dragMoved  bool
}

func NewEngine(c *Canvas, style Style) *Engine {
	return &Engine{canvas: c, mode: ToolSelect, style: style}
}

func (e *Engine) Mode() Tool { return e.mode }

// SetMode switches the interaction mode. Outside select mode shape
// creation is exclusive: existing shapes stop hit-testing and any active
// selection is discarded.
func (e *Engine) SetMode(t Tool) {
	if t == e.mode {
		return
	}
	e.abortGesture()
	e.mode = t
	e.canvas.SetSelectable(t == ToolSelect)
	e.canvas.Deselect()
}

func (e *Engine) Style() Style             { return e.style }
func (e *Engine) SetStyle(s Style)         { e.style = s }
func (e *Engine) SetStrokeWidth(w float64) { e.style.StrokeWidth = w }
func (e *Engine) SetStroke(hex string)     { e.style.Stroke = hex }
func (e *Engine) SetFill(hex string)       { e.style.Fill = hex }

func (e *Engine) abortGesture() {
	if e.draft != "" {
		e.canvas.discard(e.draft)
	}
	e.start = nil
	e.draft = ""
	e.dragID = ""
	e.dragMoved = false
}

// PointerDown starts a gesture at p.
func (e *Engine) PointerDown(p Point) {
	e.pointerDown(p, false)
}

// PointerDownAdditive is a modifier-click. In select mode the hit shape
// toggles in and out of the selection instead of replacing it, which is
// how a multi-object selection for grouping is built up. Outside select
// mode it behaves like PointerDown.
func (e *Engine) PointerDownAdditive(p Point) {
	e.pointerDown(p, true)
}

func (e *Engine) pointerDown(p Point, additive bool) {
	if e.start != nil || e.dragID != "" {
		// overlapping gesture, ignore until pointer-up
		return
	}
	if e.mode == ToolSelect {
		e.selectDown(p, additive)
		return
	}
	s := &Shape{Kind: kindForTool(e.mode), Attrs: e.newAttrs(p)}
	e.draft = e.canvas.stage(s)
	start := p
	e.start = &start
}

func (e *Engine) newAttrs(p Point) Attrs {
	a := Attrs{
		Left: p.X, Top: p.Y,
		ScaleX: 1, ScaleY: 1,
		Stroke:      e.style.Stroke,
		StrokeWidth: e.style.StrokeWidth,
		Fill:        e.style.Fill,
	}
	switch e.mode {
	case ToolLine:
		a.X1, a.Y1, a.X2, a.Y2 = p.X, p.Y, p.X, p.Y
	case ToolPen:
		a.Points = []Point{p}
	}
	return a
}

func kindForTool(t Tool) Kind {
	switch t {
	case ToolPen:
		return KindPath
	case ToolLine:
		return KindLine
	case ToolRect:
		return KindRect
	case ToolEllipse:
		return KindEllipse
	case ToolCircle:
		return KindCircle
	}
	return KindRect
}

func (e *Engine) selectDown(p Point, additive bool) {
	id, ok := e.canvas.HitTest(p)
	if !ok {
		if !additive {
			e.canvas.Deselect()
		}
		return
	}
	if additive {
		// toggle membership; an additive click never starts a drag
		if e.canvas.Selected(id) {
			sel := e.canvas.Selection()
			kept := sel[:0]
			for _, sid := range sel {
				if sid != id {
					kept = append(kept, sid)
				}
			}
			e.canvas.Select(kept...)
		} else {
			e.canvas.Select(append(e.canvas.Selection(), id)...)
		}
		return
	}
	if !e.canvas.Selected(id) {
		e.canvas.Select(id)
	}
	before, _ := e.canvas.Attrs(id)
	e.dragID = id
	e.dragLast = p
	e.dragBefore = before
	e.dragMoved = false
}

// PointerMove updates the gesture geometry from the start/current deltas.
func (e *Engine) PointerMove(p Point) {
	if e.dragID != "" {
		dx, dy := p.X-e.dragLast.X, p.Y-e.dragLast.Y
		if dx != 0 || dy != 0 {
			e.canvas.translateSilent(e.dragID, dx, dy)
			e.dragLast = p
			e.dragMoved = true
		}
		return
	}
	if e.start == nil || e.draft == "" {
		return
	}
	s := e.canvas.shapes[e.draft]
	if s == nil {
		return
	}
	start := *e.start
	switch s.Kind {
	case KindRect:
		s.Attrs.Left = math.Min(start.X, p.X)
		s.Attrs.Top = math.Min(start.Y, p.Y)
		s.Attrs.Width = math.Abs(p.X - start.X)
		s.Attrs.Height = math.Abs(p.Y - start.Y)
	case KindEllipse:
		s.Attrs.RX = math.Abs(p.X-start.X) / 2
		s.Attrs.RY = math.Abs(p.Y-start.Y) / 2
		s.Attrs.Left = math.Min(start.X, p.X)
		s.Attrs.Top = math.Min(start.Y, p.Y)
		s.Attrs.Width = s.Attrs.RX * 2
		s.Attrs.Height = s.Attrs.RY * 2
	case KindCircle:
		r := math.Hypot(p.X-start.X, p.Y-start.Y) / 2
		s.Attrs.Radius = r
		s.Attrs.Left = (start.X+p.X)/2 - r
		s.Attrs.Top = (start.Y+p.Y)/2 - r
		s.Attrs.Width = r * 2
		s.Attrs.Height = r * 2
	case KindLine:
		s.Attrs.X2, s.Attrs.Y2 = p.X, p.Y
		s.Attrs.Left = math.Min(s.Attrs.X1, s.Attrs.X2)
		s.Attrs.Top = math.Min(s.Attrs.Y1, s.Attrs.Y2)
		s.Attrs.Width = math.Abs(s.Attrs.X2 - s.Attrs.X1)
		s.Attrs.Height = math.Abs(s.Attrs.Y2 - s.Attrs.Y1)
	case KindPath:
		s.Attrs.Points = append(s.Attrs.Points, p)
	}
}

// PointerUp finalizes the gesture. A zero-drag creation is discarded; a
// finalized shape is selected and object.added fires exactly once. A
// select-mode drag fires one object.modified drag event.
func (e *Engine) PointerUp(p Point) {
	if e.dragID != "" {
		if e.dragMoved {
			e.canvas.publishModified(e.dragID, e.dragBefore, ActionDrag)
		}
		e.dragID = ""
		e.dragMoved = false
		return
	}
	if e.start == nil || e.draft == "" {
		return
	}
	start := *e.start
	id := e.draft
	e.start = nil
	e.draft = ""
	if e.degenerate(id, start, p) {
		e.canvas.discard(id)
		return
	}
	if s := e.canvas.shapes[id]; s != nil && s.Kind == KindPath {
		normalizePath(&s.Attrs)
	}
	e.canvas.Select(id)
	e.canvas.bus.Publish(EventObjectAdded, Event{
		ID:     id,
		Shape:  e.canvas.shapes[id].Clone(),
		Action: ActionAdd,
	})
}

func (e *Engine) degenerate(id string, start, end Point) bool {
	if start == end {
		return true
	}
	if s := e.canvas.shapes[id]; s != nil && s.Kind == KindPath {
		return len(s.Attrs.Points) < 2
	}
	return false
}

// normalizePath settles a freehand path's bounding box once the point
// list is complete.
func normalizePath(a *Attrs) {
	if len(a.Points) == 0 {
		return
	}
	minX, minY := a.Points[0].X, a.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range a.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	a.Left, a.Top = minX, minY
	a.Width, a.Height = maxX-minX, maxY-minY
}
