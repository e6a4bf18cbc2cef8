package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/lox/holdemcore/poker"
)

// Winner is a player's total take from a finished hand
type Winner struct {
	Seat     int
	PlayerID string
	Amount   int // excludes a returned uncalled bet
	Hand     poker.HandRank // zero when the hand ended without a showdown
	BestFive []poker.Card
}

// HandState is the complete state of one hand. It is never modified in
// place once started: Apply returns a new state and leaves the receiver as
// it was.
type HandState struct {
	HandID         string
	Phase          Phase
	Players        []*Player
	Dealer         int
	SmallBlindSeat int
	BigBlindSeat   int
	SmallBlind     int
	BigBlind       int
	Rules          Rules

	Board   []poker.Card
	Betting BettingState
	Pots    []Pot
	Actions []ActionRecord

	// Set once the hand is over
	Results  []PotResult
	Winners  []Winner
	Showdown bool // live hands were revealed

	StartingTotal int

	pots *PotManager
	deck *poker.Deck
}

// NewHand validates the roster and blinds and returns a hand waiting to be
// started. Players are seated in the order given; those with an empty stack
// sit the hand out.
func NewHand(players []PlayerInfo, dealer, smallBlind, bigBlind int, opts ...HandOption) (*HandState, error) {
	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch {
	case len(players) > MaxSeats:
		return nil, fmt.Errorf("%d players at a %d-max table: %w", len(players), MaxSeats, ErrInvalidHand)
	case len(players) < 2:
		return nil, fmt.Errorf("need at least 2 players, got %d: %w", len(players), ErrInsufficientPlayers)
	case smallBlind <= 0 || bigBlind <= 0:
		return nil, fmt.Errorf("blinds must be positive (%d/%d): %w", smallBlind, bigBlind, ErrInvalidHand)
	case smallBlind > bigBlind:
		return nil, fmt.Errorf("small blind %d exceeds big blind %d: %w", smallBlind, bigBlind, ErrInvalidHand)
	case dealer < 0 || dealer >= len(players):
		return nil, fmt.Errorf("dealer seat %d out of range: %w", dealer, ErrInvalidHand)
	}

	h := &HandState{
		HandID:         cfg.handID,
		Phase:          Waiting,
		Players:        make([]*Player, len(players)),
		Dealer:         dealer,
		SmallBlindSeat: NoSeat,
		BigBlindSeat:   NoSeat,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		Rules:          cfg.rules,
		Betting:        newBettingState(Waiting, len(players), bigBlind),
		pots:           NewPotManager(len(players)),
		deck:           cfg.deck,
	}
	if h.HandID == "" {
		h.HandID = uuid.NewString()
	}

	seen := make(map[string]bool, len(players))
	for i, info := range players {
		switch {
		case info.ID == "":
			return nil, fmt.Errorf("seat %d has no player id: %w", i, ErrInvalidHand)
		case seen[info.ID]:
			return nil, fmt.Errorf("player %s seated twice: %w", info.ID, ErrInvalidHand)
		case info.Stack < 0:
			return nil, fmt.Errorf("player %s has negative stack: %w", info.ID, ErrInvalidHand)
		}
		seen[info.ID] = true

		name := info.Name
		if name == "" {
			name = info.ID
		}
		h.Players[i] = &Player{
			ID:         info.ID,
			Name:       name,
			Seat:       i,
			Stack:      info.Stack,
			StartStack: info.Stack,
			InHand:     info.Stack > 0,
		}
		h.StartingTotal += info.Stack
	}

	if n := countPlayers(h.Players, func(p *Player) bool { return p.InHand }); n < 2 {
		return nil, fmt.Errorf("%d players with chips: %w", n, ErrInsufficientPlayers)
	}
	if !h.Players[dealer].InHand {
		return nil, fmt.Errorf("dealer seat %d has no chips: %w", dealer, ErrInvalidHand)
	}
	return h, nil
}

// StartHand creates a hand and starts it
func StartHand(rng *rand.Rand, players []PlayerInfo, dealer, smallBlind, bigBlind int, opts ...HandOption) (*HandState, error) {
	h, err := NewHand(players, dealer, smallBlind, bigBlind, opts...)
	if err != nil {
		return nil, err
	}
	return h.Start(rng)
}

// Start posts the blinds, deals hole cards and opens preflop betting. The
// deck is shuffled with rng unless one was supplied with WithDeck.
func (h *HandState) Start(rng *rand.Rand) (*HandState, error) {
	if h.Phase != Waiting {
		return nil, fmt.Errorf("cannot start a hand in %s: %w", h.Phase, ErrInvalidPhase)
	}

	next := h.clone()
	if next.deck == nil {
		next.deck = poker.NewDeck(rng)
	}
	next.Phase = Preflop

	// Heads-up the dealer posts the small blind and acts first preflop.
	sb := nextInHandSeat(next.Players, next.Dealer)
	if countPlayers(next.Players, func(p *Player) bool { return p.InHand }) == 2 {
		sb = next.Dealer
	}
	bb := nextInHandSeat(next.Players, sb)
	next.SmallBlindSeat, next.BigBlindSeat = sb, bb

	next.Players[next.Dealer].Dealer = true
	next.Players[sb].SmallBlind = true
	next.Players[bb].BigBlind = true
	next.post(sb, next.SmallBlind, PostSmallBlind)
	next.post(bb, next.BigBlind, PostBigBlind)

	for _, seat := range SeatOrder(next.Players, next.Dealer) {
		cards, err := next.deck.Draw(2)
		if err != nil {
			return nil, next.fail(err)
		}
		next.Players[seat].HoleCards = cards
	}

	next.Betting = newBettingState(Preflop, len(next.Players), next.BigBlind)
	next.Betting.CurrentBet = next.BigBlind
	next.Betting.BigBlindSeat = bb
	next.Betting.RoundStart = NextEligibleSeat(next.Players, bb)
	next.Betting.ToAct = next.Betting.RoundStart

	// Blinds may have put enough players all-in that nobody has a decision.
	if next.Betting.complete(next.Players) {
		if err := next.endStreet(); err != nil {
			return nil, err
		}
		return next, nil
	}
	next.Pots = next.pots.BuildPots(next.Players)
	if err := next.checkChips(); err != nil {
		return nil, err
	}
	return next, nil
}

func (h *HandState) post(seat, blind int, kind ActionKind) {
	p := h.Players[seat]
	amount := min(blind, p.Stack)
	h.commit(p, amount)
	h.Actions = append(h.Actions, ActionRecord{
		Seat:     seat,
		PlayerID: p.ID,
		Street:   Preflop,
		Kind:     kind,
		Amount:   amount,
		BetTo:    p.Bet,
		AllIn:    p.AllIn,
	})
}

func (h *HandState) commit(p *Player, amount int) {
	p.Stack -= amount
	p.Bet += amount
	p.TotalBet += amount
	h.pots.Add(p.Seat, amount)
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// Apply validates an action by playerID and returns the resulting state.
// Rejected actions return an *ActionError and no state.
func (h *HandState) Apply(playerID string, a Action) (*HandState, error) {
	if !h.Phase.IsStreet() {
		return nil, &ActionError{
			PlayerID: playerID,
			Action:   a,
			Phase:    h.Phase,
			Reason:   fmt.Sprintf("hand is %s", h.Phase),
			Err:      ErrInvalidPhase,
		}
	}

	seat := h.seatOf(playerID)
	if seat == NoSeat {
		return nil, &ActionError{PlayerID: playerID, Action: a, Phase: h.Phase, Err: ErrUnknownPlayer}
	}
	if seat != h.Betting.ToAct {
		reason := "no action pending"
		if cur := h.CurrentPlayer(); cur != nil {
			reason = "waiting on " + cur.ID
		}
		return nil, &ActionError{PlayerID: playerID, Action: a, Phase: h.Phase, Reason: reason, Err: ErrNotYourTurn}
	}

	delta, err := h.Betting.validate(h.Players, h.Players[seat], a)
	if err != nil {
		return nil, err
	}

	next := h.clone()
	p := next.Players[seat]
	if a.Kind == Fold {
		p.Folded = true
	} else if delta > 0 {
		next.commit(p, delta)
	}
	next.Betting.record(seat, p.Bet, next.Rules.ShortAllInReopens)
	next.Actions = append(next.Actions, ActionRecord{
		Seat:     seat,
		PlayerID: p.ID,
		Street:   next.Phase,
		Kind:     a.Kind,
		Amount:   delta,
		BetTo:    p.Bet,
		AllIn:    p.AllIn,
	})

	if err := next.advance(seat); err != nil {
		return nil, err
	}
	return next, nil
}

func (h *HandState) advance(seat int) error {
	if countPlayers(h.Players, (*Player).Live) <= 1 {
		return h.finishUncontested()
	}
	h.Betting.ToAct = NextEligibleSeat(h.Players, seat)
	if h.Betting.complete(h.Players) {
		return h.endStreet()
	}
	h.Pots = h.pots.BuildPots(h.Players)
	return h.checkChips()
}

// endStreet closes the current street and deals the next one, running the
// board out while fewer than two players can still bet.
func (h *HandState) endStreet() error {
	for {
		for _, p := range h.Players {
			p.Bet = 0
		}
		if h.Betting.Street == River {
			return h.showdown()
		}

		street := h.Betting.Street + 1
		n := 1
		if street == Flop {
			n = 3
		}
		cards, err := h.deck.Draw(n)
		if err != nil {
			return h.fail(err)
		}
		h.Board = append(h.Board, cards...)
		h.Phase = street

		h.Betting = newBettingState(street, len(h.Players), h.BigBlind)
		h.Betting.RoundStart = NextEligibleSeat(h.Players, h.Dealer)
		h.Betting.ToAct = h.Betting.RoundStart

		if countPlayers(h.Players, (*Player).CanAct) >= 2 {
			h.Pots = h.pots.BuildPots(h.Players)
			return h.checkChips()
		}
	}
}

func (h *HandState) showdown() error {
	h.Phase = Showdown
	h.Showdown = true
	h.Betting.ToAct = NoSeat
	h.Pots = h.pots.BuildPots(h.Players)

	strengths := make(map[int]poker.HandRank)
	for _, p := range h.Players {
		if p.Live() {
			strengths[p.Seat] = poker.Evaluate7(h.sevenCards(p))
		}
	}

	results, err := h.pots.Distribute(h.Pots, strengths, SeatOrder(h.Players, h.Dealer))
	if err != nil {
		return h.fail(err)
	}
	h.payout(results, strengths)
	return h.checkChips()
}

// finishUncontested awards everything to the last player standing without
// revealing any cards.
func (h *HandState) finishUncontested() error {
	survivor := NoSeat
	for _, p := range h.Players {
		p.Bet = 0
		if p.Live() {
			survivor = p.Seat
		}
	}
	h.Betting.ToAct = NoSeat
	h.Pots = h.pots.BuildPots(h.Players)

	sum := 0
	results := make([]PotResult, 0, len(h.Pots))
	for _, pot := range h.Pots {
		sum += pot.Amount
		results = append(results, PotResult{
			Amount:   pot.Amount,
			Eligible: slices.Clone(pot.Eligible),
			Winners:  []int{survivor},
			Payouts:  []int{pot.Amount},
		})
	}
	if total := h.pots.Total(); sum != total {
		return h.fail(fmt.Errorf("pots hold %d but %d was contributed: %w", sum, total, ErrPotImbalance))
	}
	h.payout(results, nil)
	return h.checkChips()
}

func (h *HandState) payout(results []PotResult, strengths map[int]poker.HandRank) {
	won := make(map[int]int)
	for _, r := range results {
		for i, seat := range r.Winners {
			h.Players[seat].Stack += r.Payouts[i]
			won[seat] += r.Payouts[i]
		}
	}

	h.Results = results
	h.Winners = nil
	for _, seat := range SeatOrder(h.Players, h.Dealer) {
		// A returned uncalled bet is not a win.
		amount := won[seat] - h.pots.Uncalled(seat)
		if amount <= 0 {
			continue
		}
		w := Winner{Seat: seat, PlayerID: h.Players[seat].ID, Amount: amount}
		if rank, ok := strengths[seat]; ok {
			seven := h.sevenCards(h.Players[seat])
			w.Hand = rank
			w.BestFive = poker.BestFive(seven[:])
		}
		h.Winners = append(h.Winners, w)
	}
	h.Phase = Finished
}

func (h *HandState) sevenCards(p *Player) [7]poker.Card {
	var cards [7]poker.Card
	copy(cards[:], p.HoleCards)
	copy(cards[2:], h.Board)
	return cards
}

// checkChips verifies that no chips were created or lost
func (h *HandState) checkChips() error {
	stacks := 0
	for _, p := range h.Players {
		stacks += p.Stack
	}
	inPlay := 0
	if h.Phase != Finished {
		inPlay = h.pots.Total()
	}
	if stacks+inPlay != h.StartingTotal {
		return h.fail(fmt.Errorf("stacks %d + pot %d != %d: %w", stacks, inPlay, h.StartingTotal, ErrPotImbalance))
	}
	return nil
}

func (h *HandState) fail(err error) error {
	return &HandError{HandID: h.HandID, Phase: h.Phase, Err: err}
}

func (h *HandState) clone() *HandState {
	c := *h
	c.Players = make([]*Player, len(h.Players))
	for i, p := range h.Players {
		c.Players[i] = p.clone()
	}
	c.Board = slices.Clone(h.Board)
	c.Betting = h.Betting.clone()
	c.Pots = slices.Clone(h.Pots)
	c.Actions = slices.Clone(h.Actions)
	c.Results = slices.Clone(h.Results)
	c.Winners = slices.Clone(h.Winners)
	c.pots = h.pots.Clone()
	c.deck = h.deck.Clone()
	return &c
}

func (h *HandState) seatOf(playerID string) int {
	for _, p := range h.Players {
		if p.ID == playerID {
			return p.Seat
		}
	}
	return NoSeat
}

// Player returns the player with the given id, or nil
func (h *HandState) Player(id string) *Player {
	if seat := h.seatOf(id); seat != NoSeat {
		return h.Players[seat]
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil
func (h *HandState) CurrentPlayer() *Player {
	if !h.Phase.IsStreet() || h.Betting.ToAct == NoSeat {
		return nil
	}
	return h.Players[h.Betting.ToAct]
}

// LegalActions returns the actions available to the player whose turn it is
func (h *HandState) LegalActions() []ValidAction {
	p := h.CurrentPlayer()
	if p == nil {
		return nil
	}
	return h.Betting.LegalActions(h.Players, p)
}

// TotalPot returns all chips wagered this hand, including the current street
func (h *HandState) TotalPot() int {
	return h.pots.Total()
}

// IsFinished returns true once the pot has been awarded
func (h *HandState) IsFinished() bool {
	return h.Phase == Finished
}

// Stacks returns each seat's stack. Read it after the hand finishes to carry
// chips into the next one.
func (h *HandState) Stacks() []int {
	stacks := make([]int, len(h.Players))
	for i, p := range h.Players {
		stacks[i] = p.Stack
	}
	return stacks
}
