// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - the "config" command: show, get, set, and path.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/cadence-tui/internal/config"
)

// HandleConfig handles the "config" command and its subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args)
	case "get":
		return handleConfigGet(args)
	case "set":
		return handleConfigSet(args)
	case "path":
		return handleConfigPath(args)
	case "reset":
		return handleConfigReset(args)
	default:
		return fmt.Errorf("unknown config subcommand: %s (want show, get, set, path, or reset)", args.Subcommand)
	}
}

func handleConfigShow(args Args) error {
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config show", cfg).Print()
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	for _, key := range config.GetAllKeys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s %v\n", LabelStyle.Width(30).Render(key), val)
	}
	return nil
}

func handleConfigGet(args Args) error {
	if args.ConfigKey == "" {
		return fmt.Errorf("usage: cadence config get <key>")
	}
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}
	val, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{args.ConfigKey: val}).Print()
	}
	fmt.Printf("%v\n", val)
	return nil
}

func handleConfigSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("usage: cadence config set <key> <value>")
	}
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return err
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("Set"), args.ConfigKey, args.ConfigVal)
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		data := map[string]interface{}{"path": path, "exists": exists}
		return NewJSONResponse("config path", data).Print()
	}
	fmt.Println(path)
	if !exists {
		fmt.Println(DimStyle.Render("(not created yet; defaults are in effect)"))
	}
	return nil
}

func handleConfigReset(args Args) error {
	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("Configuration reset to defaults."))
	return nil
}
