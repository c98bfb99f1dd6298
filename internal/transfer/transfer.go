// Package transfer serializes the canvas to PNG, JPEG, SVG, JSON and PDF,
// and imports drawings from image, SVG and JSON files.
package transfer

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"SketchBoard/internal/board"
)

// Format is an export target format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ErrMissingName rejects an export without a target name.
var ErrMissingName = errors.New("export: missing file name")

// Options configures export and import behavior.
type Options struct {
	// KeepBlank keeps the full canvas extent and background in raster
	// exports; when false the image tightly bounds the drawn objects.
	KeepBlank bool
	// KeepSVGBlank keeps generator wrapper artifacts and background
	// elements when importing SVG.
	KeepSVGBlank bool
	// JPEGQuality in 1..100; 0 means the default of 90.
	JPEGQuality int
}

// Export writes the canvas to name.<format>. The extension is appended
// when absent.
func Export(c *board.Canvas, name string, format Format, opts Options) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	path := name
	ext := "." + string(format)
	if !strings.HasSuffix(strings.ToLower(path), ext) {
		path += ext
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	return ExportTo(c, f, format, opts)
}

// ExportTo serializes the canvas in the given format onto w.
func ExportTo(c *board.Canvas, w io.Writer, format Format, opts Options) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, Render(c, opts))
	case FormatJPEG:
		q := opts.JPEGQuality
		if q == 0 {
			q = 90
		}
		return jpeg.Encode(w, Render(c, opts), &jpeg.Options{Quality: q})
	case FormatSVG:
		return WriteSVG(c, w, opts)
	case FormatJSON:
		return WriteJSON(c, w)
	case FormatPDF:
		return WritePDFTo(c, w)
	default:
		return fmt.Errorf("export: unknown format %q", format)
	}
}
