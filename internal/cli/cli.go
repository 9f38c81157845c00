// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and the version/help commands.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdList
	CmdExport
	CmdTasks
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ReadOnly bool   // open conversations read-only
	DataDir  string // override the configured data directory
	JSON     bool   // machine-readable output

	// Command-specific
	Query      string // conversation id, index, or search text
	OutFile    string // export destination ("" means stdout)
	Subcommand string // config subcommand
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `cadence - a terminal workspace for 1:1 conversation notes

Cadence keeps one living document per recurring 1:1 conversation, with
inline task and goal chips, slash commands, and agenda suggestions.

Usage:
  cadence                      Start the TUI (default)
  cadence list                 List conversations
  cadence export <id|index>    Export a conversation as Markdown
  cadence tasks                Show open tasks and goals
  cadence config [show|get|set|path]  Configuration
  cadence version              Show version information
  cadence help                 Show this help

Global flags:
  --read-only        Open conversations in read-only preview mode
  --data-dir <path>  Use <path> instead of the configured data directory
  --json             Emit machine-readable JSON output

Examples:
  cadence list --json
  cadence export 0 --out notes.md
  cadence tasks --all
  cadence config set autosave.interval_secs 60
`

// Parse reads os.Args and returns the command to run plus its arguments.
func Parse() (Command, Args) {
	remaining, parsed := parseGlobalFlags(os.Args[1:])

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "list", "ls":
		if len(remaining) > 0 {
			parsed.Query = strings.Join(remaining, " ")
		}
		return CmdList, parsed

	case "export":
		parseExportArgs(&parsed, remaining)
		return CmdExport, parsed

	case "tasks", "task":
		return CmdTasks, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags strips global flags from args, returning what's left.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	remaining := make([]string, 0, len(args))

	i := 0
	for i < len(args) {
		switch arg := args[i]; {
		case arg == "--read-only" || arg == "-r":
			parsed.ReadOnly = true
		case arg == "--json":
			parsed.JSON = true
		case arg == "--data-dir" || arg == "-d":
			if i+1 < len(args) {
				parsed.DataDir = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--data-dir="):
			parsed.DataDir = strings.TrimPrefix(arg, "--data-dir=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, parsed
}

func parseExportArgs(parsed *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		switch arg := remaining[i]; {
		case arg == "--out" || arg == "-o":
			if i+1 < len(remaining) {
				parsed.OutFile = remaining[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--out="):
			parsed.OutFile = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "-"):
			// Command-specific flags stay in Raw for the handler.
			if arg == "--format" || arg == "-f" {
				i++
			}
		case parsed.Query == "":
			parsed.Query = arg
		}
	}
}

func parseConfigArgs(parsed *Args, remaining []string) {
	if len(remaining) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		parsed.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		parsed.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
		}
		NewJSONResponse("version", data).Print()
		return
	}
	fmt.Printf("cadence %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
	fmt.Printf("  go:     %s\n", runtime.Version())
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	fmt.Print(usageText)
}
