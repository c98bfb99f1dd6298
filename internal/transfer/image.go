package transfer

import (
	"fmt"
	"image"
	"os"

	"SketchBoard/internal/board"
)

// ImportImage decodes a raster file and adds an image shape sized to its
// pixel bounds. The decode validates the file up front; a broken image
// never reaches the canvas.
func ImportImage(c *board.Canvas, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("import image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("import image %q: %w", path, err)
	}

	s := &board.Shape{
		Kind: board.KindImage,
		Src:  path,
		Attrs: board.Attrs{
			Width: float64(cfg.Width), Height: float64(cfg.Height),
			ScaleX: 1, ScaleY: 1,
			Stroke: "#000000", StrokeWidth: 1,
			Selectable: true,
		},
	}
	return c.Add(s), nil
}
