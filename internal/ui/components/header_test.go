// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		mode EditorMode
		want string
	}{
		{ModeEdit, "EDIT"},
		{ModeReadOnly, "READ"},
		{EditorMode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("EditorMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	if h.Title != "cadence" {
		t.Errorf("Title = %q, want cadence", h.Title)
	}
	if h.Mode != ModeEdit {
		t.Errorf("Mode = %v, want ModeEdit", h.Mode)
	}
}

func TestHeaderSetConversation(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetConversation("Weekly sync", "Alex")
	if h.ConvTitle != "Weekly sync" || h.Participant != "Alex" {
		t.Errorf("got %q / %q", h.ConvTitle, h.Participant)
	}
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SetConversation("Weekly sync", "Alex")

	view := h.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	for _, want := range []string{"cadence", "Weekly sync", "with Alex", "EDIT"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHeaderViewReadOnly(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SetMode(ModeReadOnly)
	if !strings.Contains(h.View(), "READ") {
		t.Error("view should show the read-only mode")
	}
}

func TestHeaderViewCompact(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(50)
	h.SetConversation("Planning", "Blake")

	compact := h.ViewCompact()
	if strings.Count(compact, "\n") != 0 {
		t.Error("compact view should be a single line")
	}
	if !strings.Contains(compact, "Planning") {
		t.Error("compact view should contain the conversation title")
	}
}

func TestHeaderViewNoConversation(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(80)
	// Without a conversation loaded the header still renders the brand.
	if !strings.Contains(h.View(), "cadence") {
		t.Error("view should contain the brand")
	}
}
