package board

import "SketchBoard/internal/event"

// Key is an alias for event.Key for cleaner usage within the package.
type Key = event.Key

// Board lifecycle events.
const (
	EventReady   Key = "board.ready"
	EventCleared Key = "board.cleared"
)

// Object mutation events.
const (
	EventObjectAdded    Key = "object.added"
	EventObjectRemoved  Key = "object.removed"
	EventObjectModified Key = "object.modified"
)

// Selection aggregate events.
const (
	EventGrouped   Key = "selection.grouped"
	EventUngrouped Key = "selection.ungrouped"
)

// Clipboard events.
const (
	EventCopied Key = "clipboard.copied"
	EventPasted Key = "clipboard.pasted"
)

// Action classifies a reversible mutation for the history stacks.
type Action string

const (
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionScaleX  Action = "scale-x"
	ActionScaleY  Action = "scale-y"
	ActionScale   Action = "scale"
	ActionDrag    Action = "drag"
	ActionRotate  Action = "rotate"
	ActionGroup   Action = "group"
	ActionUngroup Action = "ungroup"
)

// Event is the payload published on the board bus. Shapes are value
// copies; subscribers never receive arena pointers.
type Event struct {
	ID     string
	IDs    []string
	Shape  *Shape
	Shapes []*Shape
	// Indices holds the z-order positions of removed shapes, aligned
	// with Shapes, so replay can restore stacking.
	Indices []int
	Action  Action
	Before  Attrs
	// FromSelection marks a removal that consumed the whole active
	// selection, so undo can rebuild it.
	FromSelection bool
}

// Bus is the board's event bus type.
type Bus = event.Bus[Event]

// Subscription is a pausable listener handle on the board bus.
type Subscription = event.Subscription[Event]
