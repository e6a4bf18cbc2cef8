package game

import "fmt"

// BettingState tracks one street of betting
type BettingState struct {
	Street        Phase
	CurrentBet    int // street level every live player must match
	LastRaiseSize int // size of the last full bet or raise (seeded with the big blind)
	LastRaiser    int // seat of the last full bet or raise, NoSeat if none
	RoundStart    int // first seat to act this street
	ToAct         int
	BigBlind      int
	BigBlindSeat  int
	BigBlindActed bool

	// Acted marks seats that have acted since the last full raise. RaiseLocked
	// marks seats whose betting was not reopened by a short all-in.
	Acted       []bool
	RaiseLocked []bool
}

// ValidAction describes one legal action. For Bet and Raise, Min and Max are
// street totals; for Call they are the chips to add.
type ValidAction struct {
	Kind ActionKind
	Min  int
	Max  int
}

func newBettingState(street Phase, seats, bigBlind int) BettingState {
	return BettingState{
		Street:        street,
		LastRaiseSize: bigBlind,
		LastRaiser:    NoSeat,
		RoundStart:    NoSeat,
		ToAct:         NoSeat,
		BigBlind:      bigBlind,
		BigBlindSeat:  NoSeat,
		Acted:         make([]bool, seats),
		RaiseLocked:   make([]bool, seats),
	}
}

func (b BettingState) clone() BettingState {
	b.Acted = append([]bool(nil), b.Acted...)
	b.RaiseLocked = append([]bool(nil), b.RaiseLocked...)
	return b
}

// MinRaiseTo returns the smallest legal full bet or raise as a street total
func (b *BettingState) MinRaiseTo() int {
	if b.CurrentBet == 0 {
		return b.BigBlind
	}
	return max(b.CurrentBet+b.LastRaiseSize, 2*b.CurrentBet)
}

// ToCall returns the chips p must add to match the street level
func (b *BettingState) ToCall(p *Player) int {
	return max(0, b.CurrentBet-p.Bet)
}

// canRaise reports whether p may put in more than the street level: p needs
// chips beyond the call, raise rights on this street and at least one
// opponent who can still respond.
func (b *BettingState) canRaise(players []*Player, p *Player) bool {
	return p.Bet+p.Stack > b.CurrentBet && !b.RaiseLocked[p.Seat] && hasResponder(players, p.Seat)
}

// hasResponder reports whether any seat other than seat can still act
func hasResponder(players []*Player, seat int) bool {
	for _, q := range players {
		if q.Seat != seat && q.CanAct() {
			return true
		}
	}
	return false
}

// LegalActions returns the actions available to p among players. The result
// is empty for players who cannot act.
func (b *BettingState) LegalActions(players []*Player, p *Player) []ValidAction {
	if !p.CanAct() {
		return nil
	}
	allInTo := p.Bet + p.Stack
	raiseMin := min(b.MinRaiseTo(), allInTo)
	toCall := b.ToCall(p)

	var actions []ValidAction
	if toCall == 0 {
		actions = append(actions, ValidAction{Kind: Check})
		if b.canRaise(players, p) {
			kind := Raise
			if b.CurrentBet == 0 {
				kind = Bet
			}
			actions = append(actions, ValidAction{Kind: kind, Min: raiseMin, Max: allInTo})
		}
	} else {
		call := min(toCall, p.Stack)
		actions = append(actions,
			ValidAction{Kind: Fold},
			ValidAction{Kind: Call, Min: call, Max: call},
		)
		if b.canRaise(players, p) {
			actions = append(actions, ValidAction{Kind: Raise, Min: raiseMin, Max: allInTo})
		}
	}
	if allInTo <= b.CurrentBet || b.canRaise(players, p) {
		actions = append(actions, ValidAction{Kind: AllIn, Min: allInTo, Max: allInTo})
	}
	return actions
}

// validate checks a against the street and returns the chips it moves from
// p's stack.
func (b *BettingState) validate(players []*Player, p *Player, a Action) (int, error) {
	toCall := b.ToCall(p)
	allInTo := p.Bet + p.Stack
	reject := func(err error, reason string) (int, error) {
		e := &ActionError{
			PlayerID:   p.ID,
			Action:     a,
			Phase:      b.Street,
			Reason:     reason,
			CurrentBet: b.CurrentBet,
			ToCall:     toCall,
			Err:        err,
		}
		if b.canRaise(players, p) {
			e.Min, e.Max = min(b.MinRaiseTo(), allInTo), allInTo
		}
		return 0, e
	}

	switch a.Kind {
	case Fold:
		if toCall == 0 {
			return reject(ErrIllegalAction, "cannot fold when check is available")
		}
		return 0, nil
	case Check:
		if toCall > 0 {
			return reject(ErrIllegalAction, fmt.Sprintf("facing %d to call", toCall))
		}
		return 0, nil
	case Call:
		if toCall == 0 {
			return reject(ErrIllegalAction, "nothing to call")
		}
		return min(toCall, p.Stack), nil
	case Bet:
		if b.CurrentBet > 0 {
			return reject(ErrIllegalAction, "cannot bet into an existing bet, raise instead")
		}
		if !hasResponder(players, p.Seat) {
			return reject(ErrIllegalAction, "no opponent can respond")
		}
		return b.wagerTo(p, a.Amount, reject)
	case Raise:
		if b.CurrentBet == 0 {
			return reject(ErrIllegalAction, "no bet to raise, bet instead")
		}
		if b.RaiseLocked[p.Seat] {
			return reject(ErrIllegalAction, "betting was not reopened")
		}
		if !hasResponder(players, p.Seat) {
			return reject(ErrIllegalAction, "no opponent can respond")
		}
		return b.wagerTo(p, a.Amount, reject)
	case AllIn:
		if allInTo > b.CurrentBet {
			if b.RaiseLocked[p.Seat] {
				return reject(ErrIllegalAction, "betting was not reopened")
			}
			if !hasResponder(players, p.Seat) {
				return reject(ErrIllegalAction, "no opponent can respond, call instead")
			}
		}
		return p.Stack, nil
	case PostSmallBlind, PostBigBlind:
		return reject(ErrIllegalAction, "blinds are posted automatically")
	default:
		return reject(ErrIllegalAction, "unknown action")
	}
}

func (b *BettingState) wagerTo(p *Player, amount int, reject func(error, string) (int, error)) (int, error) {
	allInTo := p.Bet + p.Stack
	switch {
	case amount > allInTo:
		return reject(ErrAmountExceedsStack, fmt.Sprintf("only %d available", allInTo))
	case amount <= b.CurrentBet:
		return reject(ErrAmountBelowMinimum, fmt.Sprintf("must exceed current bet %d", b.CurrentBet))
	case amount < b.MinRaiseTo() && amount != allInTo:
		return reject(ErrAmountBelowMinimum, fmt.Sprintf("minimum is %d", b.MinRaiseTo()))
	}
	return amount - p.Bet, nil
}

// record updates the street after seat's wager brought its street total to
// betTo. A full raise reopens the action for everyone; a short all-in only
// does so when reopen is set, otherwise players who already acted may no
// longer raise.
func (b *BettingState) record(seat, betTo int, reopen bool) {
	if betTo > b.CurrentBet {
		increment := betTo - b.CurrentBet
		full := increment >= b.LastRaiseSize
		b.CurrentBet = betTo
		switch {
		case full:
			b.LastRaiseSize = increment
			b.LastRaiser = seat
			b.reopen()
		case reopen:
			b.reopen()
		default:
			for i, acted := range b.Acted {
				if acted {
					b.RaiseLocked[i] = true
				}
			}
		}
	}
	b.Acted[seat] = true
	if b.Street == Preflop && seat == b.BigBlindSeat {
		b.BigBlindActed = true
	}
}

func (b *BettingState) reopen() {
	clear(b.Acted)
	clear(b.RaiseLocked)
}

// complete reports whether the street is closed: every player who can act
// has matched the level and acted since the last full raise, and preflop the
// big blind has had its option.
func (b *BettingState) complete(players []*Player) bool {
	var pending []*Player
	for _, p := range players {
		if p.CanAct() {
			pending = append(pending, p)
		}
	}
	switch len(pending) {
	case 0:
		return true
	case 1:
		// Nobody is left to respond to anything this player could do.
		return pending[0].Bet >= b.CurrentBet
	}
	for _, p := range pending {
		if p.Bet != b.CurrentBet || !b.Acted[p.Seat] {
			return false
		}
	}
	if b.Street == Preflop && !b.BigBlindActed && b.BigBlindSeat != NoSeat && players[b.BigBlindSeat].CanAct() {
		return false
	}
	return true
}
