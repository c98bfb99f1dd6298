// Package clipboard duplicates the active selection through a single-slot
// in-memory buffer.
package clipboard

import "SketchBoard/internal/board"

// PasteOffset is the diagonal stair-step applied to every paste.
const PasteOffset = 10.0

// Options configures the buffer.
type Options struct {
	// Once clears the buffer after the first paste.
	Once bool
	// OffsetX/OffsetY override PasteOffset when set. Pointers so that an
	// explicit zero offset (paste in place) stays expressible.
	OffsetX *float64
	OffsetY *float64
}

// Clipboard holds at most one copied selection. The buffer stores value
// copies with fresh identities; the canvas never shares pointers with it.
type Clipboard struct {
	canvas *board.Canvas
	once   bool
	dx, dy float64
	buf    []*board.Shape
}

func New(c *board.Canvas, opts Options) *Clipboard {
	cb := &Clipboard{canvas: c, once: opts.Once, dx: PasteOffset, dy: PasteOffset}
	if opts.OffsetX != nil {
		cb.dx = *opts.OffsetX
	}
	if opts.OffsetY != nil {
		cb.dy = *opts.OffsetY
	}
	return cb
}

// Empty reports whether the buffer holds nothing.
func (cb *Clipboard) Empty() bool { return len(cb.buf) == 0 }

// Copy clones the active selection into the buffer, overwriting whatever
// was there, and fires clipboard.copied. No-op without a selection.
func (cb *Clipboard) Copy() {
	sel := cb.canvas.Selection()
	if len(sel) == 0 {
		return
	}
	clones := cb.cloneShapes(sel)
	if len(clones) == 0 {
		return
	}
	cb.buf = clones
	copies := make([]*board.Shape, len(clones))
	for i, s := range clones {
		copies[i] = s.Clone()
	}
	cb.canvas.Bus().Publish(board.EventCopied, board.Event{Shapes: copies})
}

// cloneShapes deep-copies the selected shapes with fresh IDs, carrying
// group members along and remapping membership links.
func (cb *Clipboard) cloneShapes(ids []string) []*board.Shape {
	remap := make(map[string]string)
	var out []*board.Shape
	var walk func(id string)
	walk = func(id string) {
		s, ok := cb.canvas.Get(id)
		if !ok {
			return
		}
		if s.Kind == board.KindGroup {
			for _, mid := range s.Members {
				walk(mid)
			}
		}
		clone := s.Clone()
		clone.ID = board.NewID()
		remap[id] = clone.ID
		out = append(out, clone)
	}
	for _, id := range ids {
		walk(id)
	}
	for _, s := range out {
		if s.Parent != "" {
			s.Parent = remap[s.Parent]
		}
		for i, mid := range s.Members {
			s.Members[i] = remap[mid]
		}
	}
	return out
}

// Paste clones the buffer onto the canvas offset by the paste delta,
// replaces the active selection with the clones, and advances the
// buffer's stored position by the same delta so repeated pastes
// stair-step diagonally. Pasted shapes are interactive but start out
// non-selectable. No-op on an empty buffer.
func (cb *Clipboard) Paste() {
	if len(cb.buf) == 0 {
		return
	}
	var pasted []*board.Shape
	var topIDs []string
	remap := make(map[string]string)
	for _, s := range cb.buf {
		clone := s.Clone()
		clone.ID = board.NewID()
		remap[s.ID] = clone.ID
		clone.Attrs.Shift(cb.dx, cb.dy)
		clone.Attrs.Selectable = false
		pasted = append(pasted, clone)
	}
	for _, s := range pasted {
		if s.Parent != "" {
			s.Parent = remap[s.Parent]
		}
		for i, mid := range s.Members {
			s.Members[i] = remap[mid]
		}
		cb.canvas.Add(s)
		if s.Parent == "" {
			topIDs = append(topIDs, s.ID)
		}
	}
	cb.canvas.Select(topIDs...)

	copies := make([]*board.Shape, len(pasted))
	for i, s := range pasted {
		copies[i] = s.Clone()
	}
	cb.canvas.Bus().Publish(board.EventPasted, board.Event{IDs: topIDs, Shapes: copies})

	if cb.once {
		cb.buf = nil
		return
	}
	// advance the stored position so the next paste lands further along
	for _, s := range cb.buf {
		s.Attrs.Shift(cb.dx, cb.dy)
	}
}
