// Package share mirrors board mutations to LAN peers over websockets,
// with mDNS discovery.
package share

import (
	"log"

	"SketchBoard/internal/board"
)

// Message is one mirrored board operation on the wire.
type Message struct {
	Type  string       `json:"type"` // "add", "remove" or "clear"
	Shape *board.Shape `json:"shape,omitempty"`
	IDs   []string     `json:"ids,omitempty"`
}

// Mirror converts local board events into outbound messages and applies
// inbound messages to the canvas. The applying flag suppresses echo: a
// mutation caused by a remote message is never sent back out.
type Mirror struct {
	canvas   *board.Canvas
	dispatch func(func())
	send     func(Message)
	applying bool
	subs     []*board.Subscription
}

// NewMirror attaches to the canvas bus. dispatch hops onto the UI event
// loop for inbound mutations (fyne.Do in the app; identity in tests).
func NewMirror(c *board.Canvas, dispatch func(func())) *Mirror {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	m := &Mirror{canvas: c, dispatch: dispatch}
	bus := c.Bus()
	m.subs = append(m.subs,
		bus.Subscribe(board.EventObjectAdded, func(ev board.Event) {
			m.forward(Message{Type: "add", Shape: ev.Shape})
		}),
		bus.Subscribe(board.EventObjectRemoved, func(ev board.Event) {
			m.forward(Message{Type: "remove", IDs: ev.IDs})
		}),
		bus.Subscribe(board.EventCleared, func(ev board.Event) {
			m.forward(Message{Type: "clear"})
		}),
	)
	return m
}

func (m *Mirror) forward(msg Message) {
	if m.applying || m.send == nil {
		return
	}
	m.send(msg)
}

// Apply runs an inbound message against the canvas on the UI loop.
func (m *Mirror) Apply(msg Message) {
	m.dispatch(func() {
		m.applying = true
		defer func() { m.applying = false }()
		switch msg.Type {
		case "add":
			if msg.Shape == nil {
				return
			}
			if _, exists := m.canvas.Get(msg.Shape.ID); exists {
				return
			}
			m.canvas.Add(msg.Shape.Clone())
		case "remove":
			m.canvas.Remove(msg.IDs...)
		case "clear":
			m.canvas.Clear()
		default:
			log.Printf("share: unknown message type %q", msg.Type)
		}
	})
}

// Detach cancels the bus subscriptions and stops sending.
func (m *Mirror) Detach() {
	for _, s := range m.subs {
		s.Cancel()
	}
	m.subs = nil
	m.send = nil
}
