package board

import (
	"fmt"

	"SketchBoard/internal/event"
)

// Canvas owns every shape. It is the single arena: history, clipboard and
// the UI deal in IDs and value copies, never in shared pointers.
type Canvas struct {
	Width      float64
	Height     float64
	Background string

	bus       *Bus
	shapes    map[string]*Shape
	order     []string
	selection []string
}

func NewCanvas(width, height float64) *Canvas {
	return &Canvas{
		Width:      width,
		Height:     height,
		Background: "#ffffff",
		bus:        event.NewBus[Event](),
		shapes:     make(map[string]*Shape),
	}
}

// Ready announces the board on the bus. Called once the interested
// subscribers are wired; publishing from the constructor would fire
// before anyone can listen.
func (c *Canvas) Ready() {
	c.bus.Publish(EventReady, Event{})
}

// Bus exposes the canvas event bus for subscribers.
func (c *Canvas) Bus() *Bus { return c.bus }

// Len reports the number of shapes in the arena, group members included.
func (c *Canvas) Len() int { return len(c.shapes) }

// Get returns a value copy of the shape with the given ID.
func (c *Canvas) Get(id string) (*Shape, bool) {
	s, ok := c.shapes[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Attrs returns a copy of the shape's attribute record.
func (c *Canvas) Attrs(id string) (Attrs, bool) {
	s, ok := c.shapes[id]
	if !ok {
		return Attrs{}, false
	}
	return s.Attrs.Clone(), true
}

// Objects returns value copies of every shape in z-order.
func (c *Canvas) Objects() []*Shape {
	out := make([]*Shape, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.shapes[id].Clone())
	}
	return out
}

// Order returns the z-order of shape IDs, bottom first.
func (c *Canvas) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Add inserts a shape (assigning an ID when absent) and publishes
// object.added once. The canvas keeps its own copy.
func (c *Canvas) Add(s *Shape) string {
	id := c.stage(s)
	c.bus.Publish(EventObjectAdded, Event{ID: id, Shape: c.shapes[id].Clone(), Action: ActionAdd})
	return id
}

// stage inserts without publishing; used for gesture drafts and replay.
// The group shape's member list is authoritative: staging a group points
// any present members back at it.
func (c *Canvas) stage(s *Shape) string {
	own := s.Clone()
	if own.ID == "" {
		own.ID = NewID()
	}
	c.shapes[own.ID] = own
	c.order = append(c.order, own.ID)
	if own.Kind == KindGroup {
		for _, mid := range own.Members {
			if m, ok := c.shapes[mid]; ok {
				m.Parent = own.ID
			}
		}
	}
	return own.ID
}

// discard silently drops a staged shape that never became visible.
func (c *Canvas) discard(id string) {
	if _, ok := c.shapes[id]; !ok {
		return
	}
	delete(c.shapes, id)
	c.dropFromOrder(id)
	c.dropFromSelection(id)
}

func (c *Canvas) dropFromOrder(id string) {
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Canvas) dropFromSelection(id string) {
	for i, sid := range c.selection {
		if sid == id {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			return
		}
	}
}

// Remove deletes the given shapes and publishes one object.removed event
// carrying copies and z-order positions for replay. Removing a group
// removes its members too. Unknown IDs are ignored; removing nothing is
// a no-op.
func (c *Canvas) Remove(ids ...string) {
	c.remove(ids, true)
}

// RemoveFlat deletes exactly the given shapes, never their group members.
// Replay uses it to undo a group's own add while the members' records are
// still pending; surviving members of a flat-removed group are released.
func (c *Canvas) RemoveFlat(ids ...string) {
	c.remove(ids, false)
}

func (c *Canvas) remove(ids []string, cascade bool) {
	fromSelection := len(ids) > 1 && c.sameAsSelection(ids)
	var removed []*Shape
	var indices []int
	drop := func(id string) {
		s, ok := c.shapes[id]
		if !ok {
			return
		}
		removed = append(removed, s.Clone())
		indices = append(indices, c.IndexOf(id))
		delete(c.shapes, id)
		c.dropFromOrder(id)
		c.dropFromSelection(id)
	}
	for _, id := range ids {
		s, ok := c.shapes[id]
		if !ok {
			continue
		}
		if s.Kind == KindGroup {
			for _, mid := range s.Members {
				if cascade {
					drop(mid)
				} else if m, ok := c.shapes[mid]; ok {
					m.Parent = ""
				}
			}
		}
		drop(id)
	}
	if len(removed) == 0 {
		return
	}
	rids := make([]string, len(removed))
	for i, s := range removed {
		rids[i] = s.ID
	}
	c.bus.Publish(EventObjectRemoved, Event{
		IDs:           rids,
		Shapes:        removed,
		Indices:       indices,
		Action:        ActionRemove,
		FromSelection: fromSelection,
	})
}

// IndexOf returns the shape's z-order position, -1 when absent.
func (c *Canvas) IndexOf(id string) int {
	for i, oid := range c.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// AddAt inserts a shape at a z-order position, publishing object.added.
// Used by replay to restore stacking.
func (c *Canvas) AddAt(s *Shape, index int) string {
	id := c.stage(s)
	if index >= 0 && index < len(c.order)-1 {
		c.order = c.order[:len(c.order)-1]
		c.order = append(c.order[:index], append([]string{id}, c.order[index:]...)...)
	}
	c.bus.Publish(EventObjectAdded, Event{ID: id, Shape: c.shapes[id].Clone(), Action: ActionAdd})
	return id
}

func (c *Canvas) sameAsSelection(ids []string) bool {
	if len(ids) != len(c.selection) {
		return false
	}
	want := make(map[string]bool, len(ids))
	for _, id := range c.selection {
		want[id] = true
	}
	for _, id := range ids {
		if !want[id] {
			return false
		}
	}
	return true
}

// SetAttrs replaces the shape's attributes and publishes object.modified
// with the prior record. Moving a group shifts its members by the same
// delta as part of the one mutation.
func (c *Canvas) SetAttrs(id string, a Attrs, action Action) error {
	s, ok := c.shapes[id]
	if !ok {
		return fmt.Errorf("set attrs: no shape %q", id)
	}
	before := s.Attrs.Clone()
	c.applyAttrs(s, a)
	c.bus.Publish(EventObjectModified, Event{ID: id, Action: action, Before: before})
	return nil
}

func (c *Canvas) applyAttrs(s *Shape, a Attrs) {
	dx := a.Left - s.Attrs.Left
	dy := a.Top - s.Attrs.Top
	s.Attrs = a.Clone()
	if s.Kind == KindGroup && (dx != 0 || dy != 0) {
		for _, mid := range s.Members {
			if m, ok := c.shapes[mid]; ok {
				m.Attrs.Shift(dx, dy)
			}
		}
	}
}

// Translate moves a shape by a delta, recorded as a drag.
func (c *Canvas) Translate(id string, dx, dy float64) error {
	a, ok := c.Attrs(id)
	if !ok {
		return fmt.Errorf("translate: no shape %q", id)
	}
	a.Shift(dx, dy)
	return c.SetAttrs(id, a, ActionDrag)
}

// Scale multiplies the shape's scale factors.
func (c *Canvas) Scale(id string, sx, sy float64) error {
	a, ok := c.Attrs(id)
	if !ok {
		return fmt.Errorf("scale: no shape %q", id)
	}
	action := ActionScale
	switch {
	case sy == 1 && sx != 1:
		action = ActionScaleX
	case sx == 1 && sy != 1:
		action = ActionScaleY
	}
	a.ScaleX *= sx
	a.ScaleY *= sy
	return c.SetAttrs(id, a, action)
}

// Rotate sets the shape's rotation angle in degrees.
func (c *Canvas) Rotate(id string, angle float64) error {
	a, ok := c.Attrs(id)
	if !ok {
		return fmt.Errorf("rotate: no shape %q", id)
	}
	a.Angle = angle
	return c.SetAttrs(id, a, ActionRotate)
}

// publishModified lets the engine report a gesture-long mutation as one
// event with the pre-gesture attributes.
func (c *Canvas) publishModified(id string, before Attrs, action Action) {
	c.bus.Publish(EventObjectModified, Event{ID: id, Action: action, Before: before})
}

// translateSilent moves a shape without an event; gesture plumbing only.
func (c *Canvas) translateSilent(id string, dx, dy float64) {
	s, ok := c.shapes[id]
	if !ok {
		return
	}
	a := s.Attrs.Clone()
	a.Shift(dx, dy)
	c.applyAttrs(s, a)
}

// Group collapses the given shapes (default: the active selection) into a
// new group and selects it.
func (c *Canvas) Group(ids ...string) (string, error) {
	if len(ids) == 0 {
		ids = c.Selection()
	}
	return c.groupAs(NewID(), ids)
}

// GroupAs regroups with a known identity; used by history replay so undo
// of an ungroup restores the original group ID.
func (c *Canvas) GroupAs(groupID string, ids []string) (string, error) {
	return c.groupAs(groupID, ids)
}

func (c *Canvas) groupAs(groupID string, ids []string) (string, error) {
	if len(ids) < 2 {
		return "", fmt.Errorf("group: need at least two shapes, have %d", len(ids))
	}
	var bounds Rect
	for i, id := range ids {
		s, ok := c.shapes[id]
		if !ok {
			return "", fmt.Errorf("group: no shape %q", id)
		}
		if s.Parent != "" {
			return "", fmt.Errorf("group: shape %q already grouped", id)
		}
		if i == 0 {
			bounds = s.Bounds()
		} else {
			bounds = bounds.Union(s.Bounds())
		}
	}
	members := make([]string, len(ids))
	copy(members, ids)
	g := &Shape{
		ID:   groupID,
		Kind: KindGroup,
		Attrs: Attrs{
			Left: bounds.Left, Top: bounds.Top,
			Width: bounds.Width, Height: bounds.Height,
			ScaleX: 1, ScaleY: 1, Selectable: true,
		},
		Members: members,
	}
	c.stage(g)
	for _, id := range ids {
		c.shapes[id].Parent = groupID
	}
	c.selection = []string{groupID}
	c.bus.Publish(EventGrouped, Event{ID: groupID, IDs: members, Action: ActionGroup})
	return groupID, nil
}

// Ungroup dissolves a group, releases its members and selects them.
func (c *Canvas) Ungroup(groupID string) ([]string, error) {
	g, ok := c.shapes[groupID]
	if !ok || g.Kind != KindGroup {
		return nil, fmt.Errorf("ungroup: no group %q", groupID)
	}
	members := make([]string, len(g.Members))
	copy(members, g.Members)
	for _, mid := range members {
		if m, ok := c.shapes[mid]; ok {
			m.Parent = ""
		}
	}
	delete(c.shapes, groupID)
	c.dropFromOrder(groupID)
	c.dropFromSelection(groupID)
	c.selection = append([]string(nil), members...)
	c.bus.Publish(EventUngrouped, Event{ID: groupID, IDs: members, Action: ActionUngroup})
	return members, nil
}

// Clear wipes the arena and publishes board.cleared.
func (c *Canvas) Clear() {
	c.shapes = make(map[string]*Shape)
	c.order = nil
	c.selection = nil
	c.bus.Publish(EventCleared, Event{})
}

// Select replaces the active selection.
func (c *Canvas) Select(ids ...string) {
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.shapes[id]; ok {
			sel = append(sel, id)
		}
	}
	c.selection = sel
}

// Deselect discards the active selection.
func (c *Canvas) Deselect() { c.selection = nil }

// Selection returns the selected IDs, in selection order.
func (c *Canvas) Selection() []string {
	out := make([]string, len(c.selection))
	copy(out, c.selection)
	return out
}

// Selected reports whether the shape is part of the active selection.
func (c *Canvas) Selected(id string) bool {
	for _, sid := range c.selection {
		if sid == id {
			return true
		}
	}
	return false
}

// HitTest returns the topmost selectable shape containing p. Hitting a
// grouped member resolves to its group.
func (c *Canvas) HitTest(p Point) (string, bool) {
	for i := len(c.order) - 1; i >= 0; i-- {
		s := c.shapes[c.order[i]]
		if s.Kind == KindGroup || !s.Attrs.Selectable {
			continue
		}
		if s.Contains(p) {
			if s.Parent != "" {
				return s.Parent, true
			}
			return s.ID, true
		}
	}
	return "", false
}

// SetSelectable flips hit-test participation for every shape. Interaction
// plumbing for mode switches; not a recorded mutation.
func (c *Canvas) SetSelectable(on bool) {
	for _, s := range c.shapes {
		s.Attrs.Selectable = on
	}
}

// ContentBounds returns the union bounding box of all drawn shapes.
func (c *Canvas) ContentBounds() (Rect, bool) {
	var bounds Rect
	found := false
	for _, id := range c.order {
		s := c.shapes[id]
		if s.Kind == KindGroup {
			continue
		}
		if !found {
			bounds = s.Bounds()
			found = true
		} else {
			bounds = bounds.Union(s.Bounds())
		}
	}
	return bounds, found
}
