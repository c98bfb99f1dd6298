// Package history records reversible board mutations and replays their
// inverses for undo/redo.
//
// Recording happens through bus subscriptions. A replay is guarded by an
// explicit replaying flag rather than by pausing the subscriptions: the
// recording subscriber checks the flag and drops replay-induced events,
// so a replayed mutation can never pollute history as a new user action.
package history

import "SketchBoard/internal/board"

// Snapshot is a plain-data record of one reversible mutation. It stores
// identifiers and value copies, never arena pointers.
type Snapshot struct {
	Action board.Action
	ID     string
	IDs    []string
	Shapes []*board.Shape
	// Indices are the z-order positions the shapes held when removed,
	// aligned with Shapes, captured one deletion at a time.
	Indices []int
	Before  board.Attrs
	// fromSelection marks a removal that consumed the active selection.
	fromSelection bool
}

// History keeps the undo and redo stacks for one canvas.
type History struct {
	canvas    *board.Canvas
	undo      []Snapshot
	redo      []Snapshot
	replaying bool
	subs      []*board.Subscription
}

// New attaches a history recorder to the canvas bus.
func New(c *board.Canvas) *History {
	h := &History{canvas: c}
	bus := c.Bus()
	h.subs = append(h.subs,
		bus.Subscribe(board.EventObjectAdded, h.onAdded),
		bus.Subscribe(board.EventObjectRemoved, h.onRemoved),
		bus.Subscribe(board.EventObjectModified, h.onModified),
		bus.Subscribe(board.EventGrouped, h.onGrouped),
		bus.Subscribe(board.EventUngrouped, h.onUngrouped),
		bus.Subscribe(board.EventCleared, func(board.Event) { h.Clear() }),
	)
	return h
}

// Detach cancels the bus subscriptions.
func (h *History) Detach() {
	for _, s := range h.subs {
		s.Cancel()
	}
	h.subs = nil
}

// UndoLen and RedoLen report the stack depths.
func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }

// record pushes a new user action, abandoning any undone branch. Linear
// history: there is no redo after a fresh edit.
func (h *History) record(s Snapshot) {
	if h.replaying {
		return
	}
	h.undo = append(h.undo, s)
	h.redo = nil
}

func (h *History) onAdded(ev board.Event) {
	h.record(Snapshot{Action: board.ActionAdd, ID: ev.ID, Shapes: []*board.Shape{ev.Shape}})
}

func (h *History) onRemoved(ev board.Event) {
	h.record(Snapshot{
		Action:        board.ActionRemove,
		IDs:           ev.IDs,
		Shapes:        ev.Shapes,
		Indices:       ev.Indices,
		fromSelection: ev.FromSelection,
	})
}

func (h *History) onModified(ev board.Event) {
	h.record(Snapshot{Action: ev.Action, ID: ev.ID, Before: ev.Before})
}

func (h *History) onGrouped(ev board.Event) {
	h.record(Snapshot{Action: board.ActionGroup, ID: ev.ID, IDs: ev.IDs})
}

func (h *History) onUngrouped(ev board.Event) {
	h.record(Snapshot{Action: board.ActionUngroup, ID: ev.ID, IDs: ev.IDs})
}

// Undo reverses the most recent user action, pushing the inverse onto the
// redo stack. No-op when the undo stack is empty.
func (h *History) Undo() {
	if len(h.undo) == 0 {
		return
	}
	snap := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	if inv, ok := h.applyInverse(snap); ok {
		h.redo = append(h.redo, inv)
	}
}

// Redo re-applies the most recent undone action, pushing its inverse back
// onto the undo stack without clearing anything.
func (h *History) Redo() {
	if len(h.redo) == 0 {
		return
	}
	snap := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	if inv, ok := h.applyInverse(snap); ok {
		h.undo = append(h.undo, inv)
	}
}

// Clear empties both stacks unconditionally.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// applyInverse reverses snap on the canvas and returns the snapshot that
// reverses the reversal; ok is false when the target vanished and nothing
// belongs on the opposite stack. The replaying flag suppresses recording
// for the duration.
func (h *History) applyInverse(snap Snapshot) (Snapshot, bool) {
	h.replaying = true
	defer func() { h.replaying = false }()

	switch snap.Action {
	case board.ActionAdd:
		ids := snap.IDs
		if len(ids) == 0 {
			ids = []string{snap.ID}
		}
		// Capture each shape's stack position one deletion at a time,
		// mirroring what Remove records, so redo can restore it. Flat
		// removal: a group member's own add record is still on the
		// stack, so undoing the group's add must not cascade.
		indices := make([]int, 0, len(ids))
		for _, id := range ids {
			indices = append(indices, h.canvas.IndexOf(id))
			h.canvas.RemoveFlat(id)
		}
		h.canvas.Deselect()
		return Snapshot{
			Action:        board.ActionRemove,
			ID:            snap.ID,
			IDs:           ids,
			Shapes:        snap.Shapes,
			Indices:       indices,
			fromSelection: snap.fromSelection,
		}, true

	case board.ActionRemove:
		// Re-insert in reverse removal order at the recorded positions:
		// undoing the deletions one by one restores the exact stacking.
		withIndices := len(snap.Indices) == len(snap.Shapes)
		ids := make([]string, 0, len(snap.Shapes))
		for i := len(snap.Shapes) - 1; i >= 0; i-- {
			s := snap.Shapes[i]
			if withIndices {
				h.canvas.AddAt(s.Clone(), snap.Indices[i])
			} else {
				h.canvas.Add(s.Clone())
			}
			if s.Parent == "" {
				ids = append(ids, s.ID)
			}
		}
		if snap.fromSelection {
			h.canvas.Select(ids...)
		}
		return Snapshot{
			Action:        board.ActionAdd,
			ID:            snap.ID,
			IDs:           snap.IDs,
			Shapes:        snap.Shapes,
			fromSelection: snap.fromSelection,
		}, true

	case board.ActionGroup:
		members, err := h.canvas.Ungroup(snap.ID)
		if err != nil {
			members = snap.IDs
		}
		return Snapshot{Action: board.ActionUngroup, ID: snap.ID, IDs: members}, true

	case board.ActionUngroup:
		h.canvas.GroupAs(snap.ID, snap.IDs)
		return Snapshot{Action: board.ActionGroup, ID: snap.ID, IDs: snap.IDs}, true

	default:
		// Transform: restore the captured attributes, handing the
		// pre-inverse values to the opposite stack. A vanished target
		// yields nothing; a zero-valued record must not cross over.
		current, ok := h.canvas.Attrs(snap.ID)
		if !ok {
			return Snapshot{}, false
		}
		h.canvas.SetAttrs(snap.ID, snap.Before, snap.Action)
		return Snapshot{Action: snap.Action, ID: snap.ID, Before: current}, true
	}
}
