// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the
// non-interactive commands: listing conversations, exporting a
// conversation to Markdown, showing open tasks and goals, and reading
// or writing configuration values.
//
// The default command (no arguments) starts the TUI; that path is
// handled in main, not here.
//
// Output conventions:
//   - Human-readable output goes to stdout, styled only when stdout is
//     a TTY (NO_COLOR and FORCE_COLOR are respected).
//   - With --json, commands emit a single JSONResponse object on stdout
//     so output can be piped into scripts.
package cli
