package clipboard

import (
	"testing"

	"SketchBoard/internal/board"
)

func rect(left, top, w, h float64) *board.Shape {
	return &board.Shape{Kind: board.KindRect, Attrs: board.Attrs{
		Left: left, Top: top, Width: w, Height: h,
		ScaleX: 1, ScaleY: 1, Stroke: "#000000", StrokeWidth: 3, Selectable: true,
	}}
}

func TestCopyWithoutSelectionIsNoop(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	c.Add(rect(0, 0, 10, 10))

	cb.Copy()
	if !cb.Empty() {
		t.Fatal("copy without a selection filled the buffer")
	}
}

func TestPasteWithEmptyBufferIsNoop(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})

	pasted := false
	c.Bus().Subscribe(board.EventPasted, func(board.Event) { pasted = true })
	cb.Paste()

	if c.Len() != 0 || pasted {
		t.Fatal("paste on an empty buffer mutated the canvas")
	}
}

func TestPasteOffsetsStairStep(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	id := c.Add(rect(100, 100, 50, 50))
	c.Select(id)

	cb.Copy()
	cb.Paste()
	cb.Paste()
	cb.Paste()

	if c.Len() != 4 {
		t.Fatalf("canvas has %d shapes, want original plus three pastes", c.Len())
	}
	wantLeft := []float64{100, 110, 120, 130}
	for i, s := range c.Objects() {
		if s.Attrs.Left != wantLeft[i] || s.Attrs.Top != wantLeft[i] {
			t.Fatalf("shape %d at (%g,%g), want (%g,%g)",
				i, s.Attrs.Left, s.Attrs.Top, wantLeft[i], wantLeft[i])
		}
	}
}

func TestPasteCustomOffsets(t *testing.T) {
	c := board.NewCanvas(800, 600)
	x, y := 25.0, 5.0
	cb := New(c, Options{OffsetX: &x, OffsetY: &y})
	id := c.Add(rect(0, 0, 10, 10))
	c.Select(id)

	cb.Copy()
	cb.Paste()

	objs := c.Objects()
	got := objs[len(objs)-1].Attrs
	if got.Left != 25 || got.Top != 5 {
		t.Fatalf("pasted at (%g,%g), want (25,5)", got.Left, got.Top)
	}
}

func TestPasteZeroOffsetLandsInPlace(t *testing.T) {
	c := board.NewCanvas(800, 600)
	zero := 0.0
	cb := New(c, Options{OffsetX: &zero, OffsetY: &zero})
	id := c.Add(rect(40, 30, 10, 10))
	c.Select(id)

	cb.Copy()
	cb.Paste()
	cb.Paste()

	objs := c.Objects()
	for _, s := range objs[1:] {
		if s.Attrs.Left != 40 || s.Attrs.Top != 30 {
			t.Fatalf("zero-offset paste drifted to (%g,%g)", s.Attrs.Left, s.Attrs.Top)
		}
	}
}

func TestPasteOnceDrainsBuffer(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{Once: true})
	id := c.Add(rect(0, 0, 10, 10))
	c.Select(id)

	cb.Copy()
	cb.Paste()
	cb.Paste()

	if c.Len() != 2 {
		t.Fatalf("canvas has %d shapes, want original plus one paste", c.Len())
	}
	if !cb.Empty() {
		t.Fatal("buffer survives a single-use paste")
	}
}

func TestPasteAssignsFreshIdentities(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	id := c.Add(rect(0, 0, 10, 10))
	c.Select(id)

	cb.Copy()
	cb.Paste()
	cb.Paste()

	seen := make(map[string]bool)
	for _, s := range c.Objects() {
		if seen[s.ID] {
			t.Fatalf("duplicate shape ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestPasteSelectsClonesOnly(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	id := c.Add(rect(0, 0, 10, 10))
	c.Select(id)

	cb.Copy()
	cb.Paste()

	sel := c.Selection()
	if len(sel) != 1 {
		t.Fatalf("selection size = %d, want 1", len(sel))
	}
	if sel[0] == id {
		t.Fatal("paste left the source selected instead of the clone")
	}
	s, _ := c.Get(sel[0])
	if s.Attrs.Selectable {
		t.Fatal("pasted clone starts out selectable")
	}
}

func TestCopyPasteGroupCarriesMembers(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	gid, err := c.Group(a, b)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	cb.Copy()
	cb.Paste()

	if c.Len() != 6 {
		t.Fatalf("canvas has %d shapes, want two groups of three", c.Len())
	}
	sel := c.Selection()
	if len(sel) != 1 || sel[0] == gid {
		t.Fatalf("selection = %v, want the pasted group only", sel)
	}
	g, ok := c.Get(sel[0])
	if !ok || g.Kind != board.KindGroup {
		t.Fatalf("selected shape is not a group: %+v", g)
	}
	if len(g.Members) != 2 {
		t.Fatalf("pasted group has %d members", len(g.Members))
	}
	for _, mid := range g.Members {
		if mid == a || mid == b {
			t.Fatal("pasted group references the source members")
		}
		m, ok := c.Get(mid)
		if !ok {
			t.Fatalf("pasted member %q missing from canvas", mid)
		}
		if m.Parent != g.ID {
			t.Fatalf("pasted member parent = %q, want %q", m.Parent, g.ID)
		}
	}
}

func TestCopyIsDetachedFromLaterEdits(t *testing.T) {
	c := board.NewCanvas(800, 600)
	cb := New(c, Options{})
	id := c.Add(rect(0, 0, 10, 10))
	c.Select(id)
	cb.Copy()

	c.Translate(id, 500, 500)
	cb.Paste()

	objs := c.Objects()
	got := objs[len(objs)-1].Attrs
	if got.Left != 10 || got.Top != 10 {
		t.Fatalf("paste at (%g,%g) reflects post-copy edits, want (10,10)", got.Left, got.Top)
	}
}
