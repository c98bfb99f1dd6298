package transfer

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/board"
)

// WritePDF renders the shape graph onto a single PDF page sized to the
// canvas.
func WritePDF(c *board.Canvas, path string) error {
	return buildPDF(c).OutputFileAndClose(path)
}

// WritePDFTo streams the PDF onto w.
func WritePDFTo(c *board.Canvas, w io.Writer) error {
	return buildPDF(c).Output(w)
}

func buildPDF(c *board.Canvas) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: c.Width, Ht: c.Height},
	})
	p.AddPage()

	for _, s := range c.Objects() {
		drawPDFShape(p, s)
	}
	return p
}

func drawPDFShape(p *gofpdf.Fpdf, s *board.Shape) {
	a := s.Attrs
	stroke, err := board.ParseHexColor(a.Stroke)
	if err != nil {
		stroke.R, stroke.G, stroke.B = 0, 0, 0
	}
	p.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
	width := a.StrokeWidth
	if width <= 0 {
		width = 1
	}
	p.SetLineWidth(width)

	style := "D"
	if a.Fill != "" {
		if fill, err := board.ParseHexColor(a.Fill); err == nil {
			p.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			style = "FD"
		}
	}

	switch s.Kind {
	case board.KindPath:
		for i := 1; i < len(a.Points); i++ {
			p.Line(a.Points[i-1].X, a.Points[i-1].Y, a.Points[i].X, a.Points[i].Y)
		}
	case board.KindLine:
		p.Line(a.X1, a.Y1, a.X2, a.Y2)
	case board.KindRect, board.KindImage:
		p.Rect(a.Left, a.Top, a.Width, a.Height, style)
	case board.KindEllipse:
		p.Ellipse(a.Left+a.RX, a.Top+a.RY, a.RX, a.RY, a.Angle, style)
	case board.KindCircle:
		p.Circle(a.Left+a.Radius, a.Top+a.Radius, a.Radius, style)
	}
}
