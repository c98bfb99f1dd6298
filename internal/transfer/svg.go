package transfer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"SketchBoard/internal/board"
)

const svgGenerator = "Created with SketchBoard"

// WriteSVG serializes the canvas as SVG markup, one element per shape in
// z-order. Group entries are logical and carry no geometry of their own,
// so members are written flat at their absolute coordinates.
func WriteSVG(c *board.Canvas, w io.Writer, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		c.Width, c.Height, c.Width, c.Height)
	fmt.Fprintf(&b, "<desc>%s</desc>\n", svgGenerator)
	if opts.KeepBlank {
		fmt.Fprintf(&b, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", c.Background)
	}
	for _, s := range c.Objects() {
		writeSVGShape(&b, s)
	}
	fmt.Fprintf(&b, "</svg>\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeSVGShape(b *strings.Builder, s *board.Shape) {
	a := s.Attrs
	style := svgStyle(a)
	switch s.Kind {
	case board.KindPath:
		if len(a.Points) < 2 {
			return
		}
		pts := make([]string, len(a.Points))
		for i, p := range a.Points {
			pts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		fmt.Fprintf(b, "<polyline points=\"%s\" %s/>\n", strings.Join(pts, " "), style)
	case board.KindLine:
		fmt.Fprintf(b, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" %s/>\n", a.X1, a.Y1, a.X2, a.Y2, style)
	case board.KindRect:
		fmt.Fprintf(b, "<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" %s/>\n", a.Left, a.Top, a.Width, a.Height, style)
	case board.KindEllipse:
		fmt.Fprintf(b, "<ellipse cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\" %s/>\n", a.Left+a.RX, a.Top+a.RY, a.RX, a.RY, style)
	case board.KindCircle:
		fmt.Fprintf(b, "<circle cx=\"%g\" cy=\"%g\" r=\"%g\" %s/>\n", a.Left+a.Radius, a.Top+a.Radius, a.Radius, style)
	case board.KindImage:
		fmt.Fprintf(b, "<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" %s/>\n", a.Left, a.Top, a.Width, a.Height, style)
	}
}

func svgStyle(a board.Attrs) string {
	fill := a.Fill
	if fill == "" {
		fill = "none"
	}
	style := fmt.Sprintf("stroke=\"%s\" stroke-width=\"%g\" fill=\"%s\"", a.Stroke, a.StrokeWidth, fill)
	if a.Angle != 0 {
		style += fmt.Sprintf(" transform=\"rotate(%g %g %g)\"", a.Angle, a.Left+a.Width/2, a.Top+a.Height/2)
	}
	return style
}

// ImportSVG parses SVG markup and adds the recognized shapes to the
// canvas, grouped together when the file contained more than one. Without
// KeepSVGBlank the generator wrapper (desc/title) and a background rect
// spanning the whole drawing are stripped. A parse error leaves the
// canvas unmodified.
func ImportSVG(c *board.Canvas, r io.Reader, opts Options) (int, error) {
	dec := xml.NewDecoder(r)
	var shapes []*board.Shape
	var svgW, svgH float64
	sawSVG := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("import svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attrs := make(map[string]string, len(start.Attr))
		for _, at := range start.Attr {
			attrs[at.Name.Local] = at.Value
		}
		switch start.Name.Local {
		case "svg":
			sawSVG = true
			svgW = svgFloat(attrs["width"])
			svgH = svgFloat(attrs["height"])
		case "desc", "title":
			if !opts.KeepSVGBlank {
				dec.Skip()
			}
		case "rect":
			if !opts.KeepSVGBlank && isBackgroundRect(attrs, svgW, svgH) {
				continue
			}
			shapes = append(shapes, svgRect(attrs))
		case "line":
			shapes = append(shapes, svgLine(attrs))
		case "circle":
			shapes = append(shapes, svgCircle(attrs))
		case "ellipse":
			shapes = append(shapes, svgEllipse(attrs))
		case "polyline", "polygon":
			s, err := svgPolyline(attrs)
			if err != nil {
				return 0, err
			}
			shapes = append(shapes, s)
		}
	}
	if !sawSVG {
		return 0, fmt.Errorf("import svg: no <svg> root element")
	}

	ids := make([]string, 0, len(shapes))
	for _, s := range shapes {
		ids = append(ids, c.Add(s))
	}
	if len(ids) > 1 {
		c.Group(ids...)
	}
	return len(shapes), nil
}

// isBackgroundRect spots the incidental blank-canvas rect some exporters
// emit as the first element.
func isBackgroundRect(attrs map[string]string, svgW, svgH float64) bool {
	if attrs["width"] == "100%" && attrs["height"] == "100%" {
		return true
	}
	x, y := svgFloat(attrs["x"]), svgFloat(attrs["y"])
	w, h := svgFloat(attrs["width"]), svgFloat(attrs["height"])
	return x == 0 && y == 0 && svgW > 0 && svgH > 0 && w == svgW && h == svgH && attrs["stroke"] == ""
}

func svgFloat(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func svgBase(attrs map[string]string) board.Attrs {
	a := board.Attrs{ScaleX: 1, ScaleY: 1, Selectable: true}
	a.Stroke = attrs["stroke"]
	if a.Stroke == "" || a.Stroke == "none" {
		a.Stroke = "#000000"
	}
	a.StrokeWidth = svgFloat(attrs["stroke-width"])
	if a.StrokeWidth == 0 {
		a.StrokeWidth = 1
	}
	if fill := attrs["fill"]; fill != "" && fill != "none" {
		a.Fill = fill
	}
	return a
}

func svgRect(attrs map[string]string) *board.Shape {
	a := svgBase(attrs)
	a.Left = svgFloat(attrs["x"])
	a.Top = svgFloat(attrs["y"])
	a.Width = svgFloat(attrs["width"])
	a.Height = svgFloat(attrs["height"])
	return &board.Shape{Kind: board.KindRect, Attrs: a}
}

func svgLine(attrs map[string]string) *board.Shape {
	a := svgBase(attrs)
	a.X1, a.Y1 = svgFloat(attrs["x1"]), svgFloat(attrs["y1"])
	a.X2, a.Y2 = svgFloat(attrs["x2"]), svgFloat(attrs["y2"])
	a.Left = min(a.X1, a.X2)
	a.Top = min(a.Y1, a.Y2)
	a.Width = max(a.X1, a.X2) - a.Left
	a.Height = max(a.Y1, a.Y2) - a.Top
	return &board.Shape{Kind: board.KindLine, Attrs: a}
}

func svgCircle(attrs map[string]string) *board.Shape {
	a := svgBase(attrs)
	r := svgFloat(attrs["r"])
	a.Radius = r
	a.Left = svgFloat(attrs["cx"]) - r
	a.Top = svgFloat(attrs["cy"]) - r
	a.Width, a.Height = 2*r, 2*r
	return &board.Shape{Kind: board.KindCircle, Attrs: a}
}

func svgEllipse(attrs map[string]string) *board.Shape {
	a := svgBase(attrs)
	a.RX = svgFloat(attrs["rx"])
	a.RY = svgFloat(attrs["ry"])
	a.Left = svgFloat(attrs["cx"]) - a.RX
	a.Top = svgFloat(attrs["cy"]) - a.RY
	a.Width, a.Height = 2*a.RX, 2*a.RY
	return &board.Shape{Kind: board.KindEllipse, Attrs: a}
}

func svgPolyline(attrs map[string]string) (*board.Shape, error) {
	a := svgBase(attrs)
	raw := strings.Fields(strings.ReplaceAll(attrs["points"], ",", " "))
	if len(raw) < 4 || len(raw)%2 != 0 {
		return nil, fmt.Errorf("import svg: malformed points list %q", attrs["points"])
	}
	pts := make([]board.Point, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		x, errX := strconv.ParseFloat(raw[i], 64)
		y, errY := strconv.ParseFloat(raw[i+1], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("import svg: malformed point %q,%q", raw[i], raw[i+1])
		}
		pts = append(pts, board.Point{X: x, Y: y})
	}
	a.Points = pts
	a.Left, a.Top = pts[0].X, pts[0].Y
	for _, p := range pts {
		a.Left = min(a.Left, p.X)
		a.Top = min(a.Top, p.Y)
	}
	var right, bottom float64 = pts[0].X, pts[0].Y
	for _, p := range pts {
		right = max(right, p.X)
		bottom = max(bottom, p.Y)
	}
	a.Width, a.Height = right-a.Left, bottom-a.Top
	return &board.Shape{Kind: board.KindPath, Attrs: a}, nil
}
