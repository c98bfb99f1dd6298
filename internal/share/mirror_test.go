package share

import (
	"testing"

	"SketchBoard/internal/board"
)

func rect(left, top float64) *board.Shape {
	return &board.Shape{Kind: board.KindRect, Attrs: board.Attrs{
		Left: left, Top: top, Width: 10, Height: 10,
		ScaleX: 1, ScaleY: 1, Stroke: "#000000", StrokeWidth: 3, Selectable: true,
	}}
}

func TestMirrorForwardsLocalMutations(t *testing.T) {
	c := board.NewCanvas(800, 600)
	m := NewMirror(c, nil)
	var sent []Message
	m.send = func(msg Message) { sent = append(sent, msg) }

	id := c.Add(rect(0, 0))
	c.Remove(id)
	c.Clear()

	if len(sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(sent))
	}
	if sent[0].Type != "add" || sent[0].Shape == nil || sent[0].Shape.ID != id {
		t.Fatalf("first message = %+v", sent[0])
	}
	if sent[1].Type != "remove" || len(sent[1].IDs) != 1 || sent[1].IDs[0] != id {
		t.Fatalf("second message = %+v", sent[1])
	}
	if sent[2].Type != "clear" {
		t.Fatalf("third message = %+v", sent[2])
	}
}

func TestMirrorAppliesInbound(t *testing.T) {
	c := board.NewCanvas(800, 600)
	m := NewMirror(c, nil)

	s := rect(5, 5)
	s.ID = board.NewID()
	m.Apply(Message{Type: "add", Shape: s})

	got, ok := c.Get(s.ID)
	if !ok {
		t.Fatal("inbound add did not land on the canvas")
	}
	if got.Attrs.Left != 5 {
		t.Fatalf("applied shape at %g, want 5", got.Attrs.Left)
	}

	m.Apply(Message{Type: "remove", IDs: []string{s.ID}})
	if c.Len() != 0 {
		t.Fatal("inbound remove left the shape in place")
	}
}

func TestMirrorSuppressesEcho(t *testing.T) {
	c := board.NewCanvas(800, 600)
	m := NewMirror(c, nil)
	sent := 0
	m.send = func(Message) { sent++ }

	s := rect(0, 0)
	s.ID = board.NewID()
	m.Apply(Message{Type: "add", Shape: s})

	if sent != 0 {
		t.Fatalf("remote mutation echoed %d messages back out", sent)
	}
}

func TestMirrorIgnoresDuplicateAdd(t *testing.T) {
	c := board.NewCanvas(800, 600)
	m := NewMirror(c, nil)

	s := rect(0, 0)
	s.ID = board.NewID()
	m.Apply(Message{Type: "add", Shape: s})
	m.Apply(Message{Type: "add", Shape: s})

	if c.Len() != 1 {
		t.Fatalf("duplicate add landed %d shapes", c.Len())
	}
}

func TestMirrorDetach(t *testing.T) {
	c := board.NewCanvas(800, 600)
	m := NewMirror(c, nil)
	sent := 0
	m.send = func(Message) { sent++ }

	m.Detach()
	c.Add(rect(0, 0))

	if sent != 0 {
		t.Fatalf("detached mirror sent %d messages", sent)
	}
}
