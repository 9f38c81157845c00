// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders conversations to shareable formats.
//
// Three exporters are provided:
//   - MarkdownExporter: plain Markdown, suitable for pasting into
//     wikis or sending as-is
//   - HTMLExporter: a standalone HTML page with embedded CSS, rendered
//     from the Markdown form via goldmark
//   - JSONExporter: the raw conversation plus its parsed document tree
//
// All exporters implement the Exporter interface and work from a
// *storage.Conversation. ExportToFile handles filename generation and
// writing; callers that want the bytes use an exporter directly.
package export
