package board

import (
	"reflect"
	"testing"
)

func rect(left, top, w, h float64) *Shape {
	return &Shape{Kind: KindRect, Attrs: Attrs{
		Left: left, Top: top, Width: w, Height: h,
		ScaleX: 1, ScaleY: 1, Stroke: "#000000", StrokeWidth: 3, Selectable: true,
	}}
}

func TestAddReturnsCopies(t *testing.T) {
	c := NewCanvas(800, 600)
	id := c.Add(rect(10, 10, 50, 40))

	got, ok := c.Get(id)
	if !ok {
		t.Fatal("added shape not found")
	}
	got.Attrs.Left = 999

	again, _ := c.Get(id)
	if again.Attrs.Left != 10 {
		t.Fatalf("arena shape mutated through returned copy: Left = %g", again.Attrs.Left)
	}
}

func TestAddKeepsCallerShapeDetached(t *testing.T) {
	c := NewCanvas(800, 600)
	s := rect(0, 0, 10, 10)
	id := c.Add(s)
	s.Attrs.Left = 999

	got, _ := c.Get(id)
	if got.Attrs.Left != 0 {
		t.Fatalf("arena shares attrs with caller: Left = %g", got.Attrs.Left)
	}
}

func TestRemovePublishesCopiesAndIndices(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	c.Add(rect(40, 0, 10, 10))

	var ev Event
	c.Bus().Subscribe(EventObjectRemoved, func(e Event) { ev = e })
	c.Remove(b)

	if len(ev.Shapes) != 1 || ev.Shapes[0].ID != b {
		t.Fatalf("removed event shapes = %v", ev.IDs)
	}
	if len(ev.Indices) != 1 || ev.Indices[0] != 1 {
		t.Fatalf("removed event indices = %v, want [1]", ev.Indices)
	}
	if c.Len() != 2 {
		t.Fatalf("canvas has %d shapes after remove, want 2", c.Len())
	}
	if c.IndexOf(a) != 0 {
		t.Fatalf("surviving shape moved: index %d", c.IndexOf(a))
	}
}

func TestRemoveGroupCascades(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	gid, err := c.Group(a, b)
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	events := 0
	var removed []string
	c.Bus().Subscribe(EventObjectRemoved, func(e Event) {
		events++
		removed = e.IDs
	})
	c.Remove(gid)

	if events != 1 {
		t.Fatalf("object.removed fired %d times, want 1", events)
	}
	if len(removed) != 3 {
		t.Fatalf("removed %d shapes, want group plus two members", len(removed))
	}
	if c.Len() != 0 {
		t.Fatalf("canvas has %d shapes after group removal", c.Len())
	}
}

func TestAddAtRestoresStackPosition(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	top := c.Add(rect(40, 0, 10, 10))

	mid, _ := c.Get(b)
	c.Remove(b)
	c.AddAt(mid, 1)

	want := []string{a, b, top}
	if got := c.Order(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReadyObservableAfterWiring(t *testing.T) {
	c := NewCanvas(800, 600)
	fired := 0
	c.Bus().Subscribe(EventReady, func(Event) { fired++ })
	c.Ready()
	if fired != 1 {
		t.Fatalf("board.ready fired %d times, want 1", fired)
	}
}

func TestRemoveFlatReleasesMembers(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	gid, _ := c.Group(a, b)

	var ev Event
	c.Bus().Subscribe(EventObjectRemoved, func(e Event) { ev = e })
	c.RemoveFlat(gid)

	if c.Len() != 2 {
		t.Fatalf("canvas has %d shapes after flat removal, want the members", c.Len())
	}
	if len(ev.IDs) != 1 || ev.IDs[0] != gid {
		t.Fatalf("removed event IDs = %v, want only the group", ev.IDs)
	}
	sa, _ := c.Get(a)
	if sa.Parent != "" {
		t.Fatalf("released member still carries parent %q", sa.Parent)
	}
}

func TestStageGroupRepairsMemberLinks(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))

	g := &Shape{
		ID:      NewID(),
		Kind:    KindGroup,
		Attrs:   Attrs{Width: 30, Height: 10, ScaleX: 1, ScaleY: 1, Selectable: true},
		Members: []string{a, b},
	}
	c.Add(g)

	sa, _ := c.Get(a)
	if sa.Parent != g.ID {
		t.Fatalf("member parent = %q, want %q", sa.Parent, g.ID)
	}
}

func TestGroupMoveShiftsMembers(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))
	gid, _ := c.Group(a, b)

	ga, _ := c.Attrs(gid)
	ga.Shift(5, 7)
	if err := c.SetAttrs(gid, ga, ActionDrag); err != nil {
		t.Fatalf("set attrs: %v", err)
	}

	aa, _ := c.Attrs(a)
	if aa.Left != 5 || aa.Top != 7 {
		t.Fatalf("member a at (%g,%g), want (5,7)", aa.Left, aa.Top)
	}
	ba, _ := c.Attrs(b)
	if ba.Left != 25 || ba.Top != 7 {
		t.Fatalf("member b at (%g,%g), want (25,7)", ba.Left, ba.Top)
	}
}

func TestGroupErrors(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	b := c.Add(rect(20, 0, 10, 10))

	if _, err := c.Group(a); err == nil {
		t.Fatal("grouping one shape did not fail")
	}
	if _, err := c.Group(a, "missing"); err == nil {
		t.Fatal("grouping an unknown shape did not fail")
	}

	if _, err := c.Group(a, b); err != nil {
		t.Fatalf("group: %v", err)
	}
	x := c.Add(rect(50, 50, 10, 10))
	if _, err := c.Group(a, x); err == nil {
		t.Fatal("regrouping an already-grouped member did not fail")
	}
}

func TestGroupBoundsAndSelection(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(10, 10, 20, 20))
	b := c.Add(rect(50, 40, 30, 30))
	gid, _ := c.Group(a, b)

	ga, _ := c.Attrs(gid)
	if ga.Left != 10 || ga.Top != 10 || ga.Width != 70 || ga.Height != 60 {
		t.Fatalf("group bbox = (%g,%g %gx%g), want (10,10 70x60)", ga.Left, ga.Top, ga.Width, ga.Height)
	}
	if sel := c.Selection(); len(sel) != 1 || sel[0] != gid {
		t.Fatalf("selection after group = %v, want [%s]", sel, gid)
	}

	members, err := c.Ungroup(gid)
	if err != nil {
		t.Fatalf("ungroup: %v", err)
	}
	if !reflect.DeepEqual(members, []string{a, b}) {
		t.Fatalf("ungroup members = %v", members)
	}
	if sel := c.Selection(); !reflect.DeepEqual(sel, []string{a, b}) {
		t.Fatalf("selection after ungroup = %v", sel)
	}
	sa, _ := c.Get(a)
	if sa.Parent != "" {
		t.Fatalf("released member still carries parent %q", sa.Parent)
	}
}

func TestHitTestTopmostAndGroupResolution(t *testing.T) {
	c := NewCanvas(800, 600)
	bottom := c.Add(rect(0, 0, 100, 100))
	top := c.Add(rect(40, 40, 100, 100))

	if id, ok := c.HitTest(Point{X: 50, Y: 50}); !ok || id != top {
		t.Fatalf("hit overlapping region on %q, want topmost %q", id, top)
	}
	if id, ok := c.HitTest(Point{X: 10, Y: 10}); !ok || id != bottom {
		t.Fatalf("hit = %q, want %q", id, bottom)
	}
	if _, ok := c.HitTest(Point{X: 500, Y: 500}); ok {
		t.Fatal("hit reported on empty region")
	}

	gid, _ := c.Group(bottom, top)
	if id, ok := c.HitTest(Point{X: 10, Y: 10}); !ok || id != gid {
		t.Fatalf("member hit resolved to %q, want group %q", id, gid)
	}
}

func TestSelectFiltersUnknownIDs(t *testing.T) {
	c := NewCanvas(800, 600)
	a := c.Add(rect(0, 0, 10, 10))
	c.Select(a, "missing")
	if sel := c.Selection(); len(sel) != 1 || sel[0] != a {
		t.Fatalf("selection = %v, want [%s]", sel, a)
	}
	if !c.Selected(a) {
		t.Fatal("Selected(a) = false")
	}
	c.Deselect()
	if len(c.Selection()) != 0 {
		t.Fatal("selection survives Deselect")
	}
}

func TestClearPublishesAndEmpties(t *testing.T) {
	c := NewCanvas(800, 600)
	c.Add(rect(0, 0, 10, 10))
	c.Select(c.Order()...)

	cleared := false
	c.Bus().Subscribe(EventCleared, func(Event) { cleared = true })
	c.Clear()

	if !cleared {
		t.Fatal("board.cleared never fired")
	}
	if c.Len() != 0 || len(c.Selection()) != 0 {
		t.Fatal("canvas not empty after Clear")
	}
}

func TestScaleActionSelection(t *testing.T) {
	c := NewCanvas(800, 600)
	id := c.Add(rect(0, 0, 10, 10))

	var actions []Action
	c.Bus().Subscribe(EventObjectModified, func(e Event) { actions = append(actions, e.Action) })

	c.Scale(id, 2, 1)
	c.Scale(id, 1, 3)
	c.Scale(id, 2, 2)

	want := []Action{ActionScaleX, ActionScaleY, ActionScale}
	if !reflect.DeepEqual(actions, want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	a, _ := c.Attrs(id)
	if a.ScaleX != 4 || a.ScaleY != 6 {
		t.Fatalf("scale = (%g,%g), want (4,6)", a.ScaleX, a.ScaleY)
	}
}

func TestContentBounds(t *testing.T) {
	c := NewCanvas(800, 600)
	if _, ok := c.ContentBounds(); ok {
		t.Fatal("empty canvas reported content bounds")
	}
	c.Add(rect(10, 20, 30, 40))
	c.Add(rect(100, 5, 20, 10))
	b, ok := c.ContentBounds()
	if !ok {
		t.Fatal("no content bounds")
	}
	if b.Left != 10 || b.Top != 5 || b.Right() != 120 || b.Bottom() != 60 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{in: "#ff0000", r: 0xff},
		{in: "#00ff7f", g: 0xff, b: 0x7f},
		{in: "#fff", r: 0xff, g: 0xff, b: 0xff},
		{in: "red", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		c, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q): no error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ParseHexColor(%q) = %v", tt.in, c)
		}
	}
}

func TestContains(t *testing.T) {
	line := &Shape{Kind: KindLine, Attrs: Attrs{X1: 0, Y1: 0, X2: 100, Y2: 0, StrokeWidth: 2}}
	if !line.Contains(Point{X: 50, Y: 3}) {
		t.Error("point near line not contained")
	}
	if line.Contains(Point{X: 50, Y: 30}) {
		t.Error("point far from line contained")
	}

	circle := &Shape{Kind: KindCircle, Attrs: Attrs{Left: 0, Top: 0, Radius: 10, Width: 20, Height: 20}}
	if !circle.Contains(Point{X: 10, Y: 10}) {
		t.Error("circle center not contained")
	}
	if circle.Contains(Point{X: 40, Y: 10}) {
		t.Error("point outside circle contained")
	}
}
