// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for cadence.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AutosaveConfig: Periodic document save behavior
//   - SuggestionsConfig: Agenda suggestion generator settings
//   - UIConfig: Theme and layout settings
//   - Watcher: Reloads the global config when the file changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CADENCE_*)
//   - ~/.cadence/config.toml
//   - ~/.cadence/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	theme := cfg.UI.Theme
//	interval := cfg.Autosave.IntervalSecs
package config
