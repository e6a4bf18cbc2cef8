package game

import (
	"fmt"
	"strings"
)

// Phase is the lifecycle stage of a hand. Preflop through River are the
// betting streets.
type Phase uint8

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Finished
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// IsStreet reports whether players can act in this phase
func (p Phase) IsStreet() bool {
	return p >= Preflop && p <= River
}

// ActionKind is the tag of an Action
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn

	// Forced bets only appear in the action log; they are never accepted by Apply.
	PostSmallBlind
	PostBigBlind
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "all_in"
	case PostSmallBlind:
		return "post_small_blind"
	case PostBigBlind:
		return "post_big_blind"
	default:
		return "unknown"
	}
}

// ParseActionKind parses the wire name of a player action
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "all_in", "allin", "all-in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Action is a player decision. Amount is only meaningful for Bet and Raise,
// where it is the street total the player is betting to.
type Action struct {
	Kind   ActionKind
	Amount int
}

// Do returns an action that carries no amount (fold, check, call, all-in)
func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

// BetTo opens the betting to amount
func BetTo(amount int) Action {
	return Action{Kind: Bet, Amount: amount}
}

// RaiseTo raises the street bet to amount
func RaiseTo(amount int) Action {
	return Action{Kind: Raise, Amount: amount}
}

func (a Action) String() string {
	switch a.Kind {
	case Bet, Raise:
		return fmt.Sprintf("%s to %d", a.Kind, a.Amount)
	default:
		return a.Kind.String()
	}
}

// ActionRecord is one entry of the hand's action log
type ActionRecord struct {
	Seat     int
	PlayerID string
	Street   Phase
	Kind     ActionKind
	Amount   int // chips moved from the stack by this action
	BetTo    int // player's street total afterwards
	AllIn    bool
}
