// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

// DeserializationError wraps any failure to parse persisted content into a
// valid document. Callers recover by falling back to the default template;
// this error is never surfaced to the user as a crash.
type DeserializationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return "deserialize document: " + e.Reason + ": " + e.Err.Error()
	}
	return "deserialize document: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *DeserializationError) Unwrap() error { return e.Err }

// =============================================================================
// JSON WIRE FORM
// =============================================================================

// jsonNode is the persisted shape of a node. Attribute payloads stay raw
// until the node type is known.
type jsonNode struct {
	Type    NodeType        `json:"type"`
	Attrs   json.RawMessage `json:"attrs,omitempty"`
	Text    string          `json:"text,omitempty"`
	Content []*jsonNode     `json:"content,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	wire := struct {
		Type    NodeType `json:"type"`
		Attrs   Attrs    `json:"attrs,omitempty"`
		Text    string   `json:"text,omitempty"`
		Content []*Node  `json:"content,omitempty"`
	}{Type: n.Type, Attrs: n.Attrs, Text: n.Text, Content: n.Content}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire jsonNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	decoded, err := fromWire(&wire)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

func fromWire(w *jsonNode) (*Node, error) {
	n := &Node{Type: w.Type, Text: w.Text}

	attrs, err := decodeAttrs(w.Type, w.Attrs)
	if err != nil {
		return nil, err
	}
	n.Attrs = attrs

	for _, cw := range w.Content {
		c, err := fromWire(cw)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, c)
	}
	return n, nil
}

// decodeAttrs dispatches the raw attribute payload to the shape the node
// type requires.
func decodeAttrs(t NodeType, raw json.RawMessage) (Attrs, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var attrs Attrs
	switch t {
	case TypeHeading:
		attrs = &HeadingAttrs{}
	case TypeImage:
		attrs = &ImageAttrs{}
	case TypeTaskChip:
		attrs = &ChipAttrs{}
	case TypeAIBlock:
		attrs = &AIBlockAttrs{}
	default:
		return nil, fmt.Errorf("node type %q does not take attributes", t)
	}
	if err := json.Unmarshal(raw, attrs); err != nil {
		return nil, fmt.Errorf("decode %s attributes: %w", t, err)
	}
	return attrs, nil
}

// =============================================================================
// SERIALIZE / DESERIALIZE
// =============================================================================

// Serialize renders the document to its persisted string form. The output
// round-trips losslessly through Deserialize for all supported node types,
// including chip and block attributes.
func Serialize(root *Node) (string, error) {
	if err := Validate(root); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	data, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	return string(data), nil
}

// Deserialize parses persisted content back into a document and validates it
// against the schema. Any failure is reported as a DeserializationError.
func Deserialize(content string) (*Node, error) {
	if content == "" {
		return nil, &DeserializationError{Reason: "empty content"}
	}
	var root Node
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return nil, &DeserializationError{Reason: "invalid JSON", Err: err}
	}
	if err := Validate(&root); err != nil {
		return nil, &DeserializationError{Reason: "schema violation", Err: err}
	}
	return &root, nil
}

// =============================================================================
// DEFAULT TEMPLATE
// =============================================================================

// PlaceholderMarker is the text that marks a paragraph as an insertion
// target for generated agenda content.
const PlaceholderMarker = "[ai]"

// DefaultTemplate returns the document used when no persisted content exists
// or when persisted content fails to deserialize.
func DefaultTemplate() *Node {
	return NewDocument(
		NewHeading(1, NewText("Notes")),
		NewParagraph(NewText("Type / for commands.")),
		NewHeading(2, NewText("Agenda")),
		NewParagraph(NewText(PlaceholderMarker)),
	)
}
