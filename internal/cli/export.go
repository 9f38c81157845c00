// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - the "export" command: render a conversation to Markdown,
// HTML, or JSON.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/cadence-tui/internal/export"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// HandleExport handles the "export" command. The query selects the
// conversation; --format picks the exporter, --out writes to a file
// instead of stdout, and --open opens the result.
func HandleExport(args Args) error {
	format := "md"
	openAfter := false
	for i := 0; i < len(args.Raw); i++ {
		switch raw := args.Raw[i]; {
		case raw == "--format" || raw == "-f":
			if i+1 < len(args.Raw) {
				format = args.Raw[i+1]
				i++
			}
		case strings.HasPrefix(raw, "--format="):
			format = strings.TrimPrefix(raw, "--format=")
		case raw == "--open":
			openAfter = true
		}
	}

	conversations, err := OpenConversations(args)
	if err != nil {
		return err
	}

	conv, err := findConversation(conversations, args.Query)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.OpenAfterExport = openAfter

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return fmt.Errorf("export %s: %w", conv.ID, err)
	}

	if args.JSON {
		data := map[string]string{
			"id":      conv.ID,
			"title":   conv.Title,
			"format":  format,
			"content": string(content),
		}
		return NewJSONResponse("export", data).Print()
	}

	if args.OutFile != "" {
		if err := util.AtomicWriteFile(args.OutFile, content, 0644); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", SuccessStyle.Render("Exported"), ValueStyle.Render(args.OutFile))
		return nil
	}

	_, err = os.Stdout.Write(content)
	return err
}
