package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemcore/internal/game"
)

const (
	defaultLogLevel    = "info"
	defaultSeats       = 6
	defaultStackBlinds = 100 // starting stack in big blinds
	defaultKeepHands   = 100
)

// Config represents the complete configuration
type Config struct {
	LogLevel string           `hcl:"log_level,optional"`
	History  *HistorySettings `hcl:"history,block"`
	Tables   []TableConfig    `hcl:"table,block"`
}

// HistorySettings controls the per-table archive of finished hands. Keep is
// nil when the file leaves it out; zero turns the archive off.
type HistorySettings struct {
	Keep             *int `hcl:"keep,optional"`
	IncludeHoleCards bool `hcl:"include_hole_cards,optional"`
}

// KeepHands returns how many finished hands each table archives
func (h *HistorySettings) KeepHands() int {
	if h == nil || h.Keep == nil {
		return defaultKeepHands
	}
	return *h.Keep
}

// TableConfig defines a poker table
type TableConfig struct {
	Name              string `hcl:"name,label"`
	Seats             int    `hcl:"seats,optional"`
	SmallBlind        int    `hcl:"small_blind"`
	BigBlind          int    `hcl:"big_blind"`
	StartingStack     int    `hcl:"starting_stack,optional"`
	ShortAllInReopens bool   `hcl:"short_allin_reopens,optional"`
}

// Rules returns the house rules hands at this table are played with
func (t TableConfig) Rules() game.Rules {
	return game.Rules{ShortAllInReopens: t.ShortAllInReopens}
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		LogLevel: defaultLogLevel,
		History:  &HistorySettings{},
		Tables: []TableConfig{
			{
				Name:          "main",
				Seats:         defaultSeats,
				SmallBlind:    5,
				BigBlind:      10,
				StartingStack: 1000,
			},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.LogLevel == "" {
		config.LogLevel = defaultLogLevel
	}
	if config.History == nil {
		config.History = &HistorySettings{}
	}
	for i := range config.Tables {
		if config.Tables[i].Seats == 0 {
			config.Tables[i].Seats = defaultSeats
		}
		if config.Tables[i].StartingStack == 0 {
			config.Tables[i].StartingStack = config.Tables[i].BigBlind * defaultStackBlinds
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.History.KeepHands() < 0 {
		return fmt.Errorf("history keep must not be negative")
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: defined more than once", table.Name)
		}
		seen[table.Name] = true

		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind < table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be at least the small blind", table.Name)
		}
		if table.Seats < 2 || table.Seats > game.MaxSeats {
			return fmt.Errorf("table %s: seats must be between 2 and %d", table.Name, game.MaxSeats)
		}
		if table.StartingStack <= 0 {
			return fmt.Errorf("table %s: starting stack must be positive", table.Name)
		}
	}
	return nil
}

// Table returns a table configuration by name
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
