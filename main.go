// cadence - a terminal workspace for 1:1 conversation notes.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cadence-tui/internal/cli"
	"github.com/jeranaias/cadence-tui/internal/config"
	"github.com/jeranaias/cadence-tui/internal/storage"
	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdList:
		exitOnError(cli.HandleList(args))
	case cli.CmdExport:
		exitOnError(cli.HandleExport(args))
	case cli.CmdTasks:
		exitOnError(cli.HandleTasks(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the interactive application.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		fatal(err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		fatal(err)
	}

	// CLI flags win over the config file.
	if args.ReadOnly {
		cfg.UI.ReadOnly = true
	}
	if args.DataDir != "" {
		cfg.DataDir = args.DataDir
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		fatal(err)
	}

	conversations, err := storage.NewStoreWithDir(filepath.Join(dataDir, "conversations"))
	if err != nil {
		fatal(err)
	}

	records, err := store.Open(filepath.Join(dataDir, "records.db"))
	if err != nil {
		fatal(err)
	}
	defer records.Close()

	m := app.New(cfg, conversations, records)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Push record changes into the event loop so the task pane stays
	// current without polling.
	unsubscribe := records.Subscribe(func() {
		p.Send(app.RecordsChangedMsg{})
	})
	defer unsubscribe()

	// Live-reload config edits made while the TUI is running.
	watcher, err := config.NewWatcher(func(c *config.Config) {
		p.Send(app.ConfigReloadedMsg{Config: c})
	})
	if err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func exitOnError(err error) {
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
