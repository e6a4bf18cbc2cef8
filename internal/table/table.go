package table

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/phh"
	"github.com/lox/holdemcore/poker"
)

// Config describes a table
type Config struct {
	Name             string
	Seats            int
	SmallBlind       int
	BigBlind         int
	StartingStack    int
	Rules            game.Rules
	KeepHands        int // finished hands kept in the archive, 0 keeps none
	IncludeHoleCards bool
}

// FromConfig builds a table configuration from the file format
func FromConfig(tc config.TableConfig, history *config.HistorySettings) Config {
	cfg := Config{
		Name:          tc.Name,
		Seats:         tc.Seats,
		SmallBlind:    tc.SmallBlind,
		BigBlind:      tc.BigBlind,
		StartingStack: tc.StartingStack,
		Rules:         tc.Rules(),
	}
	if history != nil {
		cfg.KeepHands = history.KeepHands()
		cfg.IncludeHoleCards = history.IncludeHoleCards
	}
	return cfg
}

// Seat is an occupied seat at the table
type Seat struct {
	Index    int
	PlayerID string
	Name     string
	Stack    int
}

// Summary holds lightweight table metadata
type Summary struct {
	Name           string
	Seats          int
	Occupied       int
	SmallBlind     int
	BigBlind       int
	HandsPlayed    uint64
	HandInProgress bool
}

// Table seats players between hands and runs one hand at a time. Stacks
// are only written back once a hand finishes.
type Table struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock

	mu          sync.Mutex
	rng         *rand.Rand
	seats       []*Seat
	button      int
	hand        *game.HandState
	handSeats   []int // hand player index -> table seat
	history     []*phh.HandHistory
	handsPlayed uint64

	newDeck func(*rand.Rand) *poker.Deck
}

func newTable(cfg Config, logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Table {
	return &Table{
		cfg:     cfg,
		logger:  logger.WithPrefix("table").With("table", cfg.Name),
		clock:   clock,
		rng:     rng,
		seats:   make([]*Seat, cfg.Seats),
		button:  game.NoSeat,
		newDeck: poker.NewDeck,
	}
}

// Name returns the table name
func (t *Table) Name() string {
	return t.cfg.Name
}

// Sit seats a player. A negative seat takes the first free one and a zero
// buy-in uses the table's starting stack. Players seated during a hand are
// dealt in from the next one.
func (t *Table) Sit(playerID, name string, seat, buyIn int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if playerID == "" {
		return game.NoSeat, fmt.Errorf("empty player id: %w", ErrInvalidSeat)
	}
	if t.seatOf(playerID) != game.NoSeat {
		return game.NoSeat, fmt.Errorf("%s: %w", playerID, ErrAlreadySeated)
	}
	if buyIn < 0 {
		return game.NoSeat, fmt.Errorf("%d: %w", buyIn, ErrInvalidBuyIn)
	}
	if buyIn == 0 {
		buyIn = t.cfg.StartingStack
	}

	switch {
	case seat >= len(t.seats):
		return game.NoSeat, fmt.Errorf("seat %d of %d: %w", seat, len(t.seats), ErrInvalidSeat)
	case seat >= 0 && t.seats[seat] != nil:
		return game.NoSeat, fmt.Errorf("seat %d: %w", seat, ErrSeatTaken)
	case seat < 0:
		seat = slices.Index(t.seats, nil)
		if seat < 0 {
			return game.NoSeat, ErrTableFull
		}
	}

	t.seats[seat] = &Seat{Index: seat, PlayerID: playerID, Name: name, Stack: buyIn}
	t.logger.Debug("player seated", "player", playerID, "seat", seat, "stack", buyIn)
	return seat, nil
}

// Leave removes a player and returns their stack. Players still contesting
// the current hand cannot leave.
func (t *Table) Leave(playerID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat := t.seatOf(playerID)
	if seat == game.NoSeat {
		return 0, fmt.Errorf("%s: %w", playerID, ErrNotSeated)
	}
	if t.inProgress() {
		if p := t.hand.Player(playerID); p != nil && p.InHand {
			return 0, fmt.Errorf("%s: %w", playerID, ErrHandInProgress)
		}
	}

	stack := t.seats[seat].Stack
	t.seats[seat] = nil
	t.logger.Debug("player left", "player", playerID, "seat", seat, "stack", stack)
	return stack, nil
}

// StartHand moves the button to the next funded seat and deals a new hand
func (t *Table) StartHand() (game.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inProgress() {
		return game.Snapshot{}, ErrHandInProgress
	}

	var players []game.PlayerInfo
	var handSeats []int
	for _, s := range t.seats {
		if s != nil && s.Stack > 0 {
			players = append(players, game.PlayerInfo{ID: s.PlayerID, Name: s.Name, Stack: s.Stack})
			handSeats = append(handSeats, s.Index)
		}
	}
	if len(players) < 2 {
		return game.Snapshot{}, fmt.Errorf("table %s has %d funded players: %w", t.cfg.Name, len(players), game.ErrInsufficientPlayers)
	}

	button := t.nextButton()
	dealer := slices.Index(handSeats, button)

	h, err := game.NewHand(players, dealer, t.cfg.SmallBlind, t.cfg.BigBlind,
		game.WithRules(t.cfg.Rules),
		game.WithHandID(uuid.NewString()),
		game.WithDeck(t.newDeck(t.rng)),
	)
	if err != nil {
		return game.Snapshot{}, err
	}
	started, err := h.Start(t.rng)
	if err != nil {
		t.abort(h, err)
		return game.Snapshot{}, err
	}

	t.button = button
	t.hand = started
	t.handSeats = handSeats
	t.logger.Debug("hand started", "hand", started.HandID, "button", button, "players", len(players))

	if started.IsFinished() {
		t.settle()
	}
	return started.Snapshot(""), nil
}

// Act applies a player's action to the current hand and returns the
// player's view of the result.
func (t *Table) Act(playerID string, a game.Action) (game.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inProgress() {
		return game.Snapshot{}, ErrNoHand
	}

	next, err := t.hand.Apply(playerID, a)
	if err != nil {
		var handErr *game.HandError
		if errors.As(err, &handErr) {
			t.abort(t.hand, err)
			t.hand = nil
			return game.Snapshot{}, err
		}
		t.logger.Debug("action rejected", "hand", t.hand.HandID, "player", playerID, "action", a, "err", err)
		return game.Snapshot{}, err
	}

	t.hand = next
	t.logger.Debug("action", "hand", next.HandID, "player", playerID, "action", a, "phase", next.Phase)
	if next.IsFinished() {
		t.settle()
	}
	return next.Snapshot(playerID), nil
}

// Snapshot returns the current or most recent hand as viewerID sees it
func (t *Table) Snapshot(viewerID string) (game.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hand == nil {
		return game.Snapshot{}, ErrNoHand
	}
	return t.hand.Snapshot(viewerID), nil
}

// Seats returns the occupied seats in seat order
func (t *Table) Seats() []Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	var seats []Seat
	for _, s := range t.seats {
		if s != nil {
			seats = append(seats, *s)
		}
	}
	return seats
}

// History returns the archived hand histories, oldest first
func (t *Table) History() []*phh.HandHistory {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.history)
}

// Summary returns table metadata
func (t *Table) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	occupied := 0
	for _, s := range t.seats {
		if s != nil {
			occupied++
		}
	}
	return Summary{
		Name:           t.cfg.Name,
		Seats:          t.cfg.Seats,
		Occupied:       occupied,
		SmallBlind:     t.cfg.SmallBlind,
		BigBlind:       t.cfg.BigBlind,
		HandsPlayed:    t.handsPlayed,
		HandInProgress: t.inProgress(),
	}
}

func (t *Table) inProgress() bool {
	return t.hand != nil && !t.hand.IsFinished()
}

func (t *Table) seatOf(playerID string) int {
	for i, s := range t.seats {
		if s != nil && s.PlayerID == playerID {
			return i
		}
	}
	return game.NoSeat
}

// nextButton returns the first funded seat after the current button
func (t *Table) nextButton() int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		seat := ((t.button+i)%n + n) % n
		if s := t.seats[seat]; s != nil && s.Stack > 0 {
			return seat
		}
	}
	return game.NoSeat
}

// settle writes the finished hand's stacks back to the seats and archives it
func (t *Table) settle() {
	h := t.hand
	for i, p := range h.Players {
		if s := t.seats[t.handSeats[i]]; s != nil && s.PlayerID == p.ID {
			s.Stack = p.Stack
		}
	}
	t.handsPlayed++

	winners := make([]string, len(h.Winners))
	for i, w := range h.Winners {
		winners[i] = fmt.Sprintf("%s+%d", w.PlayerID, w.Amount)
	}
	t.logger.Debug("hand complete", "hand", h.HandID, "board", poker.CardsString(h.Board), "winners", winners, "showdown", h.Showdown)

	if t.cfg.KeepHands <= 0 {
		return
	}
	hist, err := phh.FromHand(h, phh.Options{
		Table:            t.cfg.Name,
		IncludeHoleCards: t.cfg.IncludeHoleCards,
		Timestamp:        t.clock.Now(),
	})
	if err != nil {
		t.logger.Error("failed to record hand history", "hand", h.HandID, "err", err)
		return
	}
	t.history = append(t.history, hist)
	if over := len(t.history) - t.cfg.KeepHands; over > 0 {
		t.history = slices.Delete(t.history, 0, over)
	}
}

// abort drops a hand that failed a bookkeeping check. Seat stacks were
// never touched, so every player keeps what they had before the deal.
func (t *Table) abort(h *game.HandState, err error) {
	t.logger.Error("hand aborted", "hand", h.HandID, "phase", h.Phase, "err", err)
}
