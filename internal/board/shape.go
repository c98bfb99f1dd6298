package board

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Kind identifies what a shape draws.
type Kind string

const (
	KindPath    Kind = "path"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindCircle  Kind = "circle"
	KindGroup   Kind = "group"
	KindImage   Kind = "image"
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Attrs is the attribute record of a shape. Left/Top is always the
// top-left of the shape's bounding box; kind-specific fields (Radius,
// endpoints, point list) are kept consistent with it by the mutation
// paths in Canvas and Engine.
type Attrs struct {
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	RX          float64 `json:"rx,omitempty"`
	RY          float64 `json:"ry,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	X1          float64 `json:"x1,omitempty"`
	Y1          float64 `json:"y1,omitempty"`
	X2          float64 `json:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty"`
	Points      []Point `json:"points,omitempty"`
	Angle       float64 `json:"angle,omitempty"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Fill        string  `json:"fill,omitempty"`
	Selectable  bool    `json:"selectable"`
}

// Shift translates every positional field by (dx, dy).
func (a *Attrs) Shift(dx, dy float64) {
	a.Left += dx
	a.Top += dy
	a.X1 += dx
	a.Y1 += dy
	a.X2 += dx
	a.Y2 += dy
	for i := range a.Points {
		a.Points[i].X += dx
		a.Points[i].Y += dy
	}
}

// Clone returns a value copy with its own point slice.
func (a Attrs) Clone() Attrs {
	out := a
	if a.Points != nil {
		out.Points = make([]Point, len(a.Points))
		copy(out.Points, a.Points)
	}
	return out
}

// Shape is one entry in the canvas arena. Groups reference their members
// by ID; members point back through Parent. Nothing outside the arena
// holds a *Shape for longer than a single call.
type Shape struct {
	ID      string   `json:"id"`
	Kind    Kind     `json:"kind"`
	Attrs   Attrs    `json:"attrs"`
	Parent  string   `json:"parent,omitempty"`
	Members []string `json:"members,omitempty"`
	// Src is the file an image shape was imported from.
	Src string `json:"src,omitempty"`
}

// Clone copies the shape, keeping its identity. Callers that need a fresh
// identity (clipboard, import) assign a new ID themselves.
func (s *Shape) Clone() *Shape {
	out := *s
	out.Attrs = s.Attrs.Clone()
	if s.Members != nil {
		out.Members = make([]string, len(s.Members))
		copy(out.Members, s.Members)
	}
	return &out
}

// NewID returns a fresh arena identifier.
func NewID() string { return uuid.NewString() }

// Style is the construction-time stroke/fill configuration the engine
// stamps onto new shapes. Passed by value; there are no shared defaults.
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
}

// DefaultStyle matches the toolbar's initial state.
func DefaultStyle() Style {
	return Style{Stroke: "#000000", StrokeWidth: 3, Fill: ""}
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}
	if err != nil {
		return color.NRGBA{A: 0xff}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Union grows r to also cover o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Bounds returns the shape's bounding box in canvas coordinates.
func (s *Shape) Bounds() Rect {
	return Rect{Left: s.Attrs.Left, Top: s.Attrs.Top, Width: s.Attrs.Width, Height: s.Attrs.Height}
}

// Contains reports whether p hits the shape, with a small tolerance for
// stroked outlines.
func (s *Shape) Contains(p Point) bool {
	tol := math.Max(s.Attrs.StrokeWidth, 4)
	switch s.Kind {
	case KindLine:
		return segmentDistance(p, Point{s.Attrs.X1, s.Attrs.Y1}, Point{s.Attrs.X2, s.Attrs.Y2}) <= tol
	case KindPath:
		pts := s.Attrs.Points
		for i := 1; i < len(pts); i++ {
			if segmentDistance(p, pts[i-1], pts[i]) <= tol {
				return true
			}
		}
		return false
	case KindCircle:
		cx := s.Attrs.Left + s.Attrs.Radius
		cy := s.Attrs.Top + s.Attrs.Radius
		return math.Hypot(p.X-cx, p.Y-cy) <= s.Attrs.Radius+tol
	case KindEllipse:
		rx, ry := s.Attrs.RX, s.Attrs.RY
		if rx <= 0 || ry <= 0 {
			return false
		}
		dx := (p.X - (s.Attrs.Left + rx)) / rx
		dy := (p.Y - (s.Attrs.Top + ry)) / ry
		return dx*dx+dy*dy <= 1.1
	default:
		b := s.Bounds()
		return p.X >= b.Left-tol && p.X <= b.Right()+tol &&
			p.Y >= b.Top-tol && p.Y <= b.Bottom()+tol
	}
}

func segmentDistance(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*abx), p.Y-(a.Y+t*aby))
}
