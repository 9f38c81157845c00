// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// list.go - the "list" command: enumerate conversations.
package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/cadence-tui/internal/storage"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// listEntry is the JSON shape for one conversation in list output.
type listEntry struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Participant string `json:"participant"`
	UpdatedAt   string `json:"updated_at"`
	Preview     string `json:"preview,omitempty"`
}

// HandleList handles the "list" command. An optional query filters by
// title or participant.
func HandleList(args Args) error {
	conversations, err := OpenConversations(args)
	if err != nil {
		return err
	}

	var metas []storage.Meta
	if args.Query != "" {
		metas, err = conversations.Search(args.Query)
	} else {
		metas, err = conversations.List()
	}
	if err != nil {
		return err
	}

	if args.JSON {
		entries := make([]listEntry, 0, len(metas))
		for i, m := range metas {
			entries = append(entries, listEntry{
				Index:       i,
				ID:          m.ID,
				Title:       m.Title,
				Participant: m.Participant,
				UpdatedAt:   m.UpdatedAt.Format(time.RFC3339),
				Preview:     m.Preview,
			})
		}
		return NewJSONResponse("list", entries).Print()
	}

	if len(metas) == 0 {
		fmt.Println(DimStyle.Render("No conversations yet. Run 'cadence' and press n to start one."))
		return nil
	}

	width := GetTerminalWidth()
	fmt.Println(TitleStyle.Render("Conversations"))
	for i, m := range metas {
		title := util.TruncateRunes(m.Title, width-30)
		fmt.Printf("%s %s %s\n",
			DimStyle.Render(fmt.Sprintf("%3d", i)),
			ValueStyle.Render(title),
			DimStyle.Render(m.UpdatedAt.Format("Jan 2 15:04")))
		if m.Preview != "" {
			fmt.Printf("      %s\n", DimStyle.Render(util.TruncateRunes(m.Preview, width-8)))
		}
	}
	return nil
}
