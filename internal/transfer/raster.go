package transfer

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fogleman/gg"

	"SketchBoard/internal/board"
)

const tightPadding = 10

// Render rasterizes the shape graph. With KeepBlank set the image covers
// the whole canvas including its background; otherwise it tightly bounds
// the drawn objects plus a small padding.
func Render(c *board.Canvas, opts Options) image.Image {
	var ox, oy float64
	var w, h int
	if opts.KeepBlank {
		w, h = int(c.Width), int(c.Height)
	} else if bounds, ok := c.ContentBounds(); ok {
		ox = bounds.Left - tightPadding
		oy = bounds.Top - tightPadding
		w = int(bounds.Width) + 2*tightPadding
		h = int(bounds.Height) + 2*tightPadding
	} else {
		w, h = int(c.Width), int(c.Height)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	bg, err := board.ParseHexColor(c.Background)
	if err == nil {
		dc.SetColor(bg)
	} else {
		dc.SetRGB(1, 1, 1)
	}
	dc.Clear()

	for _, s := range c.Objects() {
		drawShape(dc, s, ox, oy)
	}
	return dc.Image()
}

func drawShape(dc *gg.Context, s *board.Shape, ox, oy float64) {
	if s.Kind == board.KindGroup {
		return
	}
	a := s.Attrs
	dc.Push()
	defer dc.Pop()

	if a.Angle != 0 {
		cx := a.Left + a.Width/2 - ox
		cy := a.Top + a.Height/2 - oy
		dc.RotateAbout(gg.Radians(a.Angle), cx, cy)
	}
	if a.ScaleX != 1 || a.ScaleY != 1 {
		cx := a.Left + a.Width/2 - ox
		cy := a.Top + a.Height/2 - oy
		dc.Translate(cx, cy)
		dc.Scale(a.ScaleX, a.ScaleY)
		dc.Translate(-cx, -cy)
	}

	switch s.Kind {
	case board.KindPath:
		if len(a.Points) < 2 {
			return
		}
		dc.MoveTo(a.Points[0].X-ox, a.Points[0].Y-oy)
		for _, p := range a.Points[1:] {
			dc.LineTo(p.X-ox, p.Y-oy)
		}
	case board.KindLine:
		dc.MoveTo(a.X1-ox, a.Y1-oy)
		dc.LineTo(a.X2-ox, a.Y2-oy)
	case board.KindRect:
		dc.DrawRectangle(a.Left-ox, a.Top-oy, a.Width, a.Height)
	case board.KindEllipse:
		dc.DrawEllipse(a.Left+a.RX-ox, a.Top+a.RY-oy, a.RX, a.RY)
	case board.KindCircle:
		dc.DrawCircle(a.Left+a.Radius-ox, a.Top+a.Radius-oy, a.Radius)
	case board.KindImage:
		if im := loadImage(s.Src); im != nil {
			dc.DrawImage(im, int(a.Left-ox), int(a.Top-oy))
			return
		}
		dc.DrawRectangle(a.Left-ox, a.Top-oy, a.Width, a.Height)
	}

	if a.Fill != "" {
		if fill, err := board.ParseHexColor(a.Fill); err == nil {
			dc.SetColor(fill)
			dc.FillPreserve()
		}
	}
	stroke, err := board.ParseHexColor(a.Stroke)
	if err != nil {
		stroke.R, stroke.G, stroke.B = 0, 0, 0
	}
	dc.SetColor(stroke)
	width := a.StrokeWidth
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width)
	dc.Stroke()
}

func loadImage(path string) image.Image {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	im, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return im
}
