package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/fileutil"
	"github.com/lox/holdemcore/internal/phh"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/internal/simulator"
	"github.com/lox/holdemcore/internal/table"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd plays random legal actions and checks chip conservation
type SimulateCmd struct {
	Config  string `short:"c" help:"HCL configuration file" default:"holdem.hcl" type:"path"`
	Table   string `help:"Only simulate the named table from the config"`
	Hands   int    `short:"n" help:"Hands to play per table" default:"100"`
	Tables  int    `help:"Copies of each configured table to run concurrently" default:"1"`
	Players int    `short:"p" help:"Players seated per table (0 fills every seat)" default:"0"`
	Seed    *int64 `help:"Random seed for reproducible deals"`
	PHH     string `name:"phh" help:"Write every archived hand to this PHH session file ('-' for stdout)"`
}

func (cmd *SimulateCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	tables, err := cmd.tableConfigs(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	seed := randutil.Resolve(cmd.Seed)
	logger.Info("starting simulation", "tables", len(tables), "hands", cmd.Hands, "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Tables:  tables,
		Players: cmd.Players,
		Hands:   cmd.Hands,
		Seed:    seed,
		Logger:  logger,
	})
	results, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	printResults(os.Stdout, results)

	if cmd.PHH != "" {
		return writeSession(cmd.PHH, results)
	}
	return nil
}

// tableConfigs expands the configured tables into the set to simulate
func (cmd *SimulateCmd) tableConfigs(cfg *config.Config) ([]table.Config, error) {
	source := cfg.Tables
	if cmd.Table != "" {
		tc := cfg.Table(cmd.Table)
		if tc == nil {
			return nil, fmt.Errorf("table %q: %w", cmd.Table, table.ErrTableNotFound)
		}
		source = []config.TableConfig{*tc}
	}

	copies := max(cmd.Tables, 1)
	var tables []table.Config
	for _, tc := range source {
		for i := range copies {
			c := table.FromConfig(tc, cfg.History)
			if copies > 1 {
				c.Name = fmt.Sprintf("%s-%d", tc.Name, i+1)
			}
			tables = append(tables, c)
		}
	}
	return tables, nil
}

func printResults(w io.Writer, results []simulator.Result) {
	fmt.Fprintln(w, headerStyle.Render(" Simulation Results "))
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%s: %d hands, %d showdowns, largest pot %d, %d rebuys",
			r.Table, r.Hands, r.Showdowns, r.LargestPot, r.Rebuys)
		if r.Aborted > 0 {
			fmt.Fprintf(w, ", %d aborted", r.Aborted)
		}
		fmt.Fprintln(w)

		ids := make([]string, 0, len(r.Stacks))
		for id := range r.Stacks {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "  %-6s %d\n", id, r.Stacks[id])
		}
	}
}

func writeSession(path string, results []simulator.Result) error {
	var hands []*phh.HandHistory
	for _, r := range results {
		hands = append(hands, r.Histories...)
	}

	if path == "-" {
		return phh.EncodeSession(os.Stdout, hands)
	}

	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return phh.EncodeSession(w, hands)
	})
}
