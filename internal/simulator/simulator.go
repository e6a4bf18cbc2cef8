package simulator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/phh"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/internal/table"
)

// maxActionsPerHand bounds a single hand; random play never gets close.
const maxActionsPerHand = 1000

// Config holds configuration for running simulations
type Config struct {
	Tables  []table.Config
	Players int // seated at each table, 0 fills every seat
	Hands   int // hands per table
	Seed    int64
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Result summarises the hands played at one table
type Result struct {
	Table      string
	Hands      int
	Showdowns  int
	Aborted    int
	Rebuys     int
	LargestPot int
	Stacks     map[string]int
	Histories  []*phh.HandHistory
}

// Simulator plays random legal actions at several tables concurrently and
// checks that every hand conserves chips.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays the configured number of hands at every table and returns one
// result per table, in configuration order.
func (s *Simulator) Run(ctx context.Context) ([]Result, error) {
	logger := s.config.Logger.WithPrefix("simulator")
	rng := randutil.New(s.config.Seed)
	manager := table.NewManager(s.config.Logger, s.config.Clock, rng)

	tables := make([]*table.Table, len(s.config.Tables))
	drivers := make([]*rand.Rand, len(s.config.Tables))
	for i, cfg := range s.config.Tables {
		tbl, err := manager.Create(cfg)
		if err != nil {
			return nil, err
		}
		players := s.config.Players
		if players <= 0 || players > cfg.Seats {
			players = cfg.Seats
		}
		for p := 1; p <= players; p++ {
			id := fmt.Sprintf("p%d", p)
			if _, err := tbl.Sit(id, id, -1, 0); err != nil {
				return nil, err
			}
		}
		tables[i] = tbl
		drivers[i] = randutil.Child(rng)
	}

	results := make([]Result, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	for i, tbl := range tables {
		cfg := s.config.Tables[i]
		g.Go(func() error {
			res, err := s.playTable(ctx, tbl, cfg, drivers[i])
			if err != nil {
				return fmt.Errorf("table %s: %w", cfg.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		logger.Info("table finished", "table", r.Table, "hands", r.Hands, "showdowns", r.Showdowns, "largest_pot", r.LargestPot, "rebuys", r.Rebuys)
	}
	return results, nil
}

func (s *Simulator) playTable(ctx context.Context, tbl *table.Table, cfg table.Config, rng *rand.Rand) (Result, error) {
	res := Result{Table: cfg.Name}
	bankroll := 0
	for _, seat := range tbl.Seats() {
		bankroll += seat.Stack
	}

	for hand := 0; hand < s.config.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rebuys, err := rebuy(tbl, cfg.StartingStack)
		if err != nil {
			return res, err
		}
		res.Rebuys += rebuys
		bankroll += rebuys * cfg.StartingStack

		snap, err := playHand(tbl, rng)
		var handErr *game.HandError
		switch {
		case errors.As(err, &handErr):
			res.Aborted++
			continue
		case err != nil:
			return res, err
		}

		res.Hands++
		if len(snap.Winners) > 0 && snap.Winners[0].Hand != "" {
			res.Showdowns++
		}
		res.LargestPot = max(res.LargestPot, snap.Pot)

		total := 0
		for _, seat := range tbl.Seats() {
			total += seat.Stack
		}
		if total != bankroll {
			return res, fmt.Errorf("hand %s: table holds %d chips, expected %d: %w", snap.HandID, total, bankroll, game.ErrPotImbalance)
		}
	}

	res.Stacks = make(map[string]int)
	for _, seat := range tbl.Seats() {
		res.Stacks[seat.PlayerID] = seat.Stack
	}
	res.Histories = tbl.History()
	return res, nil
}

// rebuy tops busted players back up to the starting stack
func rebuy(tbl *table.Table, stack int) (int, error) {
	n := 0
	for _, seat := range tbl.Seats() {
		if seat.Stack > 0 {
			continue
		}
		if _, err := tbl.Leave(seat.PlayerID); err != nil {
			return n, err
		}
		if _, err := tbl.Sit(seat.PlayerID, seat.Name, seat.Index, stack); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// playHand deals a hand and plays it out with uniformly random legal actions
func playHand(tbl *table.Table, rng *rand.Rand) (game.Snapshot, error) {
	snap, err := tbl.StartHand()
	if err != nil {
		return snap, err
	}

	for steps := 0; snap.Phase != game.Finished.String(); steps++ {
		if steps >= maxActionsPerHand {
			return snap, fmt.Errorf("hand %s did not finish after %d actions", snap.HandID, steps)
		}

		actor := snap.CurrentPlayerID
		view, err := tbl.Snapshot(actor)
		if err != nil {
			return snap, err
		}
		if len(view.LegalActions) == 0 {
			return snap, fmt.Errorf("hand %s: %s has no legal actions in %s", snap.HandID, actor, snap.Phase)
		}

		a, err := choose(view.LegalActions, rng)
		if err != nil {
			return snap, err
		}
		if snap, err = tbl.Act(actor, a); err != nil {
			return snap, err
		}
	}
	return tbl.Snapshot("")
}

func choose(legal []game.ActionView, rng *rand.Rand) (game.Action, error) {
	pick := legal[rng.IntN(len(legal))]
	kind, err := game.ParseActionKind(pick.Action)
	if err != nil {
		return game.Action{}, err
	}
	a := game.Do(kind)
	if kind == game.Bet || kind == game.Raise {
		a.Amount = pick.Min + rng.IntN(pick.Max-pick.Min+1)
	}
	return a, nil
}
