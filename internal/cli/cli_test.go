// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"

	"github.com/jeranaias/cadence-tui/internal/storage"
)

// parseWith runs Parse against a synthetic argv.
func parseWith(t *testing.T, argv ...string) (Command, Args) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"cadence"}, argv...)
	defer func() { os.Args = old }()
	return Parse()
}

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := parseWith(t)
	if cmd != CmdTUI {
		t.Fatalf("expected CmdTUI, got %v", cmd)
	}
	if args.ReadOnly || args.JSON || args.DataDir != "" {
		t.Errorf("expected zero-value flags, got %+v", args)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parseWith(t, "--read-only", "--data-dir", "/tmp/cad", "--json")
	if cmd != CmdTUI {
		t.Fatalf("expected CmdTUI, got %v", cmd)
	}
	if !args.ReadOnly {
		t.Error("expected ReadOnly to be set")
	}
	if args.DataDir != "/tmp/cad" {
		t.Errorf("DataDir = %q", args.DataDir)
	}
	if !args.JSON {
		t.Error("expected JSON to be set")
	}
}

func TestParseDataDirEquals(t *testing.T) {
	_, args := parseWith(t, "--data-dir=/tmp/other", "list")
	if args.DataDir != "/tmp/other" {
		t.Errorf("DataDir = %q", args.DataDir)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"list"}, CmdList},
		{[]string{"ls"}, CmdList},
		{[]string{"export", "0"}, CmdExport},
		{[]string{"tasks"}, CmdTasks},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := parseWith(t, tt.argv...)
		if cmd != tt.want {
			t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseExportArgs(t *testing.T) {
	cmd, args := parseWith(t, "export", "3", "--out", "notes.md")
	if cmd != CmdExport {
		t.Fatalf("expected CmdExport, got %v", cmd)
	}
	if args.Query != "3" {
		t.Errorf("Query = %q", args.Query)
	}
	if args.OutFile != "notes.md" {
		t.Errorf("OutFile = %q", args.OutFile)
	}
}

func TestParseExportOutEquals(t *testing.T) {
	_, args := parseWith(t, "export", "abc", "--out=x.md")
	if args.OutFile != "x.md" {
		t.Errorf("OutFile = %q", args.OutFile)
	}
}

func TestParseConfigArgs(t *testing.T) {
	cmd, args := parseWith(t, "config", "set", "ui.theme", "light")
	if cmd != CmdConfig {
		t.Fatalf("expected CmdConfig, got %v", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "light" {
		t.Errorf("parsed %+v", args)
	}
}

func TestParseConfigDefaultsToShow(t *testing.T) {
	_, args := parseWith(t, "config")
	if args.Subcommand != "show" {
		t.Errorf("Subcommand = %q, want show", args.Subcommand)
	}
}

func TestParseListQuery(t *testing.T) {
	_, args := parseWith(t, "list", "alex")
	if args.Query != "alex" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestFindConversationByIndexAndSearch(t *testing.T) {
	dir := t.TempDir()
	conversations, err := storage.NewStoreWithDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := conversations.Save(&storage.Conversation{Title: "Weekly sync", Participant: "Alex"}); err != nil {
		t.Fatal(err)
	}
	if _, err := conversations.Save(&storage.Conversation{Title: "Planning", Participant: "Blake"}); err != nil {
		t.Fatal(err)
	}

	conv, err := findConversation(conversations, "0")
	if err != nil {
		t.Fatalf("by index: %v", err)
	}
	if conv.ID == "" {
		t.Error("expected a loaded conversation")
	}

	conv, err = findConversation(conversations, "Blake")
	if err != nil {
		t.Fatalf("by search: %v", err)
	}
	if conv.Participant != "Blake" {
		t.Errorf("Participant = %q", conv.Participant)
	}

	if _, err := findConversation(conversations, "nope-no-match"); err == nil {
		t.Error("expected error for unmatched query")
	}
	if _, err := findConversation(conversations, ""); err == nil {
		t.Error("expected error for empty query")
	}
}
