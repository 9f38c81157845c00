// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"fmt"
)

// =============================================================================
// ATTRIBUTE SHAPES
// =============================================================================

// Attrs is the tagged union of per-type attribute shapes. Each node type with
// attributes has exactly one concrete Attrs implementation, validated at
// construction time rather than parsed out of string blobs at every read.
type Attrs interface {
	// Validate checks the attribute values against the schema.
	Validate() error

	// clone returns a deep copy so cloned nodes never alias attribute state.
	clone() Attrs
}

// -----------------------------------------------------------------------------
// Heading
// -----------------------------------------------------------------------------

// HeadingAttrs holds the attributes of a heading node.
type HeadingAttrs struct {
	// Level is the heading level, 1 to 3.
	Level int `json:"level"`
}

// Validate implements Attrs.
func (a *HeadingAttrs) Validate() error {
	if a.Level < 1 || a.Level > 3 {
		return fmt.Errorf("heading level must be 1..3, got %d", a.Level)
	}
	return nil
}

func (a *HeadingAttrs) clone() Attrs {
	cp := *a
	return &cp
}

// -----------------------------------------------------------------------------
// Image
// -----------------------------------------------------------------------------

// ImageAttrs holds the attributes of an image node.
type ImageAttrs struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Validate implements Attrs.
func (a *ImageAttrs) Validate() error {
	if a.Src == "" {
		return fmt.Errorf("image src must not be empty")
	}
	return nil
}

func (a *ImageAttrs) clone() Attrs {
	cp := *a
	return &cp
}

// -----------------------------------------------------------------------------
// Task chip
// -----------------------------------------------------------------------------

// ChipType distinguishes task chips from goal chips.
type ChipType string

const (
	// ChipTask references a task record.
	ChipTask ChipType = "task"
	// ChipGoal references a goal record.
	ChipGoal ChipType = "goal"
)

// ChipAttrs holds the attributes of a taskChip node.
//
// TaskID is a weak reference into the application store; the chip does not
// own the record. Title is a cached display title that may go stale — the
// live record's title wins at render time.
type ChipAttrs struct {
	TaskID   string   `json:"taskId"`
	Title    string   `json:"title"`
	ChipType ChipType `json:"chipType"`
}

// Validate implements Attrs.
func (a *ChipAttrs) Validate() error {
	if a.TaskID == "" {
		return fmt.Errorf("taskChip taskId must not be empty")
	}
	if a.ChipType != ChipTask && a.ChipType != ChipGoal {
		return fmt.Errorf("taskChip chipType must be %q or %q, got %q", ChipTask, ChipGoal, a.ChipType)
	}
	return nil
}

func (a *ChipAttrs) clone() Attrs {
	cp := *a
	return &cp
}

// -----------------------------------------------------------------------------
// AI block
// -----------------------------------------------------------------------------

// BlockStatus is the lifecycle status of an aiBlock.
type BlockStatus string

const (
	// BlockPending means the block awaits user approval or rejection.
	BlockPending BlockStatus = "pending"
	// BlockApproved is a transient status; approved blocks are removed from
	// the document and replaced by their content.
	BlockApproved BlockStatus = "approved"
	// BlockRejected is a transient status; rejected blocks are removed.
	BlockRejected BlockStatus = "rejected"
)

// SuggestedGoal is a goal candidate carried by an aiBlock.
type SuggestedGoal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SuggestedTask is a task candidate carried by an aiBlock.
type SuggestedTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Assignee string `json:"assignee,omitempty"`
}

// AIBlockAttrs holds the attributes of an aiBlock node.
type AIBlockAttrs struct {
	// BlockID is locally generated and unique within the document lifetime.
	BlockID string `json:"blockId"`

	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	Goals []SuggestedGoal `json:"goals,omitempty"`
	Tasks []SuggestedTask `json:"tasks,omitempty"`

	Status BlockStatus `json:"status"`
}

// Validate implements Attrs.
func (a *AIBlockAttrs) Validate() error {
	if a.BlockID == "" {
		return fmt.Errorf("aiBlock blockId must not be empty")
	}
	switch a.Status {
	case BlockPending, BlockApproved, BlockRejected:
	default:
		return fmt.Errorf("aiBlock status %q is not valid", a.Status)
	}
	for _, g := range a.Goals {
		if g.Title == "" {
			return fmt.Errorf("aiBlock goal suggestion must have a title")
		}
	}
	for _, t := range a.Tasks {
		if t.Title == "" {
			return fmt.Errorf("aiBlock task suggestion must have a title")
		}
	}
	return nil
}

func (a *AIBlockAttrs) clone() Attrs {
	cp := *a
	if a.Goals != nil {
		cp.Goals = append([]SuggestedGoal(nil), a.Goals...)
	}
	if a.Tasks != nil {
		cp.Tasks = append([]SuggestedTask(nil), a.Tasks...)
	}
	return &cp
}
