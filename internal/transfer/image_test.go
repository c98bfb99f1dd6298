package transfer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"SketchBoard/internal/board"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pic.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func TestImportImageSizesShapeToPixels(t *testing.T) {
	c := board.NewCanvas(800, 600)
	path := writePNG(t, 120, 90)

	id, err := ImportImage(c, path)
	if err != nil {
		t.Fatalf("import image: %v", err)
	}
	s, ok := c.Get(id)
	if !ok {
		t.Fatal("imported shape missing")
	}
	if s.Kind != board.KindImage || s.Src != path {
		t.Fatalf("shape = %+v", s)
	}
	if s.Attrs.Width != 120 || s.Attrs.Height != 90 {
		t.Fatalf("shape is %gx%g, want 120x90", s.Attrs.Width, s.Attrs.Height)
	}
}

func TestImportImageRejectsBrokenFiles(t *testing.T) {
	c := board.NewCanvas(800, 600)
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := ImportImage(c, path); err == nil {
		t.Fatal("broken image accepted")
	}
	if c.Len() != 0 {
		t.Fatal("failed import landed a shape")
	}

	if _, err := ImportImage(c, filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("missing file accepted")
	}
}
