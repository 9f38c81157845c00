// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/storage"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to plain Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown.
func (e *MarkdownExporter) Export(conv *storage.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	d, err := conv.ParseDocument()
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# " + conv.Title + "\n\n")

	if e.options.IncludeMetadata {
		if conv.Participant != "" {
			sb.WriteString("Participant: " + conv.Participant + "\n\n")
		}
		sb.WriteString("Created: " + conv.CreatedAt.Format(time.RFC3339) + "\n")
		sb.WriteString("Updated: " + conv.UpdatedAt.Format(time.RFC3339) + "\n\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(doc.ToMarkdown(d))
	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string { return "text/markdown" }
