// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/storage"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports a conversation plus its parsed document tree.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonEnvelope is the exported JSON shape.
type jsonEnvelope struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Participant string    `json:"participant,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Document    *doc.Node `json:"document"`
	ExportedAt  time.Time `json:"exported_at"`
}

// Export converts a conversation to indented JSON.
func (e *JSONExporter) Export(conv *storage.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	d, err := conv.ParseDocument()
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	envelope := jsonEnvelope{
		ID:          conv.ID,
		Title:       conv.Title,
		Participant: conv.Participant,
		CreatedAt:   conv.CreatedAt,
		UpdatedAt:   conv.UpdatedAt,
		Document:    d,
		ExportedAt:  time.Now().UTC(),
	}

	return json.MarshalIndent(envelope, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }

// MimeType returns the JSON MIME type.
func (e *JSONExporter) MimeType() string { return "application/json" }
