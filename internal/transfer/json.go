package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"SketchBoard/internal/board"
)

// Document is the JSON object-graph serialization of a canvas.
type Document struct {
	Width      float64        `json:"width,omitempty"`
	Height     float64        `json:"height,omitempty"`
	Background string         `json:"background,omitempty"`
	Objects    []*board.Shape `json:"objects"`
}

// WriteJSON serializes the canvas object graph. Transient selection state
// is not part of the graph and is never written.
func WriteJSON(c *board.Canvas, w io.Writer) error {
	doc := Document{
		Width:      c.Width,
		Height:     c.Height,
		Background: c.Background,
		Objects:    c.Objects(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

var validKinds = map[board.Kind]bool{
	board.KindPath:    true,
	board.KindLine:    true,
	board.KindRect:    true,
	board.KindEllipse: true,
	board.KindCircle:  true,
	board.KindGroup:   true,
	board.KindImage:   true,
}

// ImportJSON merges a JSON document's objects into the canvas. The import
// is additive: existing shapes stay, incoming shapes get fresh
// identities. The document is parsed and validated in full before the
// first shape lands, so a malformed file leaves the canvas unmodified.
func ImportJSON(c *board.Canvas, r io.Reader) (int, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("import json: %w", err)
	}
	for i, s := range doc.Objects {
		if s == nil {
			return 0, fmt.Errorf("import json: object %d is null", i)
		}
		if !validKinds[s.Kind] {
			return 0, fmt.Errorf("import json: object %d has unknown kind %q", i, s.Kind)
		}
	}

	remap := make(map[string]string, len(doc.Objects))
	staged := make([]*board.Shape, 0, len(doc.Objects))
	for _, s := range doc.Objects {
		clone := s.Clone()
		clone.ID = board.NewID()
		if s.ID != "" {
			remap[s.ID] = clone.ID
		}
		staged = append(staged, clone)
	}
	for _, s := range staged {
		if s.Parent != "" {
			s.Parent = remap[s.Parent]
		}
		for i, mid := range s.Members {
			s.Members[i] = remap[mid]
		}
	}
	for _, s := range staged {
		c.Add(s)
	}
	return len(staged), nil
}
