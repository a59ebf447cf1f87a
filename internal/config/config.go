// Package config loads table and player settings from an optional HCL file.
//
// The file is conventionally named blackjack.hcl and holds up to three
// blocks, all optional:
//
//	player {
//	  name          = "Lois"
//	  default_wager = 100
//	}
//
//	table {
//	  decks = 6
//	}
//
//	ui {
//	  log_level = "warn"
//	}
//
// A missing file yields the built-in defaults. Command line flags take
// precedence over file values; that merge happens in the cmd layer.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config filename looked up in the working directory.
const DefaultFile = "blackjack.hcl"

// Config represents the complete game configuration
type Config struct {
	Player *PlayerSettings `hcl:"player,block"`
	Table  *TableSettings  `hcl:"table,block"`
	UI     *UISettings     `hcl:"ui,block"`
}

// PlayerSettings contains player-specific settings
type PlayerSettings struct {
	Name         string `hcl:"name,optional"`
	DefaultWager int    `hcl:"default_wager,optional"`
}

// TableSettings contains table rules
type TableSettings struct {
	Decks int `hcl:"decks,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Player: &PlayerSettings{
			Name:         "Player",
			DefaultWager: 100,
		},
		Table: &TableSettings{
			Decks: 6,
		},
		UI: &UISettings{
			LogLevel: "warn",
		},
	}
}

// Load loads configuration from an HCL file. A missing file is not an
// error; it yields the defaults. Blocks and values absent from the file
// keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	defaults := Default()

	if config.Player == nil {
		config.Player = defaults.Player
	} else {
		if config.Player.Name == "" {
			config.Player.Name = defaults.Player.Name
		}
		if config.Player.DefaultWager == 0 {
			config.Player.DefaultWager = defaults.Player.DefaultWager
		}
	}

	if config.Table == nil {
		config.Table = defaults.Table
	} else if config.Table.Decks == 0 {
		config.Table.Decks = defaults.Table.Decks
	}

	if config.UI == nil {
		config.UI = defaults.UI
	} else if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Player.Name == "" {
		return fmt.Errorf("player name is required")
	}

	if c.Player.DefaultWager <= 0 {
		return fmt.Errorf("default wager must be positive")
	}

	if c.Table.Decks <= 0 {
		return fmt.Errorf("deck count must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}
