// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/storage"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to a standalone HTML page with
// embedded CSS. The document body is rendered from its Markdown form
// so chips come through as task-list items.
type HTMLExporter struct {
	options *Options
	md      goldmark.Markdown
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{
		options: opts,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.TaskList),
		),
	}
}

// Export converts a conversation to HTML.
func (e *HTMLExporter) Export(conv *storage.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if conv.CreatedAt.IsZero() {
		return nil, fmt.Errorf("conversation has invalid creation timestamp")
	}

	d, err := conv.ParseDocument()
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var body bytes.Buffer
	if err := e.md.Convert([]byte(doc.ToMarkdown(d)), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(conv.Title)))
	sb.WriteString("    <meta name=\"generator\" content=\"cadence\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", conv.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.options.Theme))
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(conv))
	}

	sb.WriteString("        <main class=\"notes\">\n")
	sb.WriteString(body.String())
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported %s</p>\n",
		html.EscapeString(time.Now().Format("2006-01-02 15:04"))))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// renderHeader renders the metadata block above the notes.
func (e *HTMLExporter) renderHeader(conv *storage.Conversation) string {
	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(conv.Title)))
	if conv.Participant != "" {
		sb.WriteString(fmt.Sprintf("            <p class=\"meta\">Participant: %s</p>\n",
			html.EscapeString(conv.Participant)))
	}
	sb.WriteString(fmt.Sprintf("            <p class=\"meta\">Created %s &middot; Updated %s</p>\n",
		conv.CreatedAt.Format("2006-01-02"),
		conv.UpdatedAt.Format("2006-01-02")))
	sb.WriteString("        </header>\n")
	return sb.String()
}

// getCSS returns the embedded stylesheet for the selected theme.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        :root {
            --bg: #ffffff;
            --fg: #1a1a2e;
            --muted: #6b7280;
            --accent: #7c3aed;
            --border: #e5e7eb;
        }
        .dark-theme {
            --bg: #16161e;
            --fg: #e5e7eb;
            --muted: #9ca3af;
            --accent: #a78bfa;
            --border: #2d2d3a;
        }
        body {
            margin: 0;
            background: var(--bg);
            color: var(--fg);
            font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
            line-height: 1.6;
        }
        .container {
            max-width: 720px;
            margin: 0 auto;
            padding: 2rem 1rem;
        }
        .header {
            border-bottom: 2px solid var(--accent);
            margin-bottom: 1.5rem;
            padding-bottom: 1rem;
        }
        .header h1 { margin: 0 0 0.25rem; }
        .meta { color: var(--muted); margin: 0.1rem 0; font-size: 0.9rem; }
        .notes h1, .notes h2, .notes h3 { color: var(--accent); }
        .notes blockquote {
            border-left: 3px solid var(--accent);
            margin-left: 0;
            padding-left: 1rem;
            color: var(--muted);
        }
        .notes li.task-list-item { list-style: none; margin-left: -1.2rem; }
        .footer {
            border-top: 1px solid var(--border);
            margin-top: 2rem;
            padding-top: 0.5rem;
            color: var(--muted);
            font-size: 0.85rem;
        }
    </style>
`
}

// FileExtension returns ".html".
func (e *HTMLExporter) FileExtension() string { return ".html" }

// MimeType returns the HTML MIME type.
func (e *HTMLExporter) MimeType() string { return "text/html" }
