// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tasks.go - the "tasks" command: open tasks and goals across all
// conversations.
package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/cadence-tui/internal/store"
)

// taskEntry is the JSON shape for one record in tasks output.
type taskEntry struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	Assignee       string `json:"assignee,omitempty"`
	DueDate        string `json:"due_date,omitempty"`
	ConversationID string `json:"conversation_id"`
}

// HandleTasks handles the "tasks" command. Completed records are
// skipped unless --all is passed.
func HandleTasks(args Args) error {
	records, err := OpenRecords(args)
	if err != nil {
		return err
	}
	defer records.Close()

	showAll := false
	for _, raw := range args.Raw {
		if raw == "--all" || raw == "-a" {
			showAll = true
		}
	}

	items := records.All()
	filtered := items[:0]
	for _, it := range items {
		if !showAll && it.Status == store.StatusCompleted {
			continue
		}
		filtered = append(filtered, it)
	}

	if args.JSON {
		entries := make([]taskEntry, 0, len(filtered))
		for _, it := range filtered {
			e := taskEntry{
				ID:             it.ID,
				Type:           string(it.Type),
				Title:          it.Title,
				Status:         string(it.Status),
				Assignee:       it.Assignee,
				ConversationID: it.ConversationID,
			}
			if !it.DueDate.IsZero() {
				e.DueDate = it.DueDate.Format("2006-01-02")
			}
			entries = append(entries, e)
		}
		return NewJSONResponse("tasks", entries).Print()
	}

	if len(filtered) == 0 {
		fmt.Println(DimStyle.Render("No open tasks or goals."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Tasks & Goals"))
	for _, it := range filtered {
		fmt.Printf("%s %s%s\n",
			renderRecordStatus(it),
			ValueStyle.Render(it.Title),
			DimStyle.Render(recordMeta(it)))
	}
	return nil
}

// renderRecordStatus renders the ASCII status marker for a record.
func renderRecordStatus(it store.Item) string {
	if it.Type == store.ItemGoal {
		switch it.Status {
		case store.StatusCompleted:
			return SuccessStyle.Render("(OK)")
		case store.StatusInProgress:
			return WarningStyle.Render("(>) ")
		default:
			return DimStyle.Render("(*) ")
		}
	}
	switch it.Status {
	case store.StatusCompleted:
		return SuccessStyle.Render("[x] ")
	case store.StatusInProgress:
		return WarningStyle.Render("[>] ")
	default:
		return ValueStyle.Render("[ ] ")
	}
}

// recordMeta formats the trailing due date and assignee hints.
func recordMeta(it store.Item) string {
	meta := ""
	if !it.DueDate.IsZero() {
		meta += " due " + it.DueDate.Format("Jan 2")
		if it.DueDate.Before(time.Now()) && it.Status != store.StatusCompleted {
			meta += " (overdue)"
		}
	}
	if it.Assignee != "" {
		meta += " @" + it.Assignee
	}
	return meta
}
