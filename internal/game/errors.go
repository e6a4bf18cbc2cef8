package game

import (
	"errors"
	"fmt"
)

// Validation errors. The action is rejected and the hand is unchanged.
var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrIllegalAction       = errors.New("illegal action for state")
	ErrAmountBelowMinimum  = errors.New("amount below minimum")
	ErrAmountExceedsStack  = errors.New("amount exceeds stack")
	ErrInvalidPhase        = errors.New("invalid phase")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidHand         = errors.New("invalid hand setup")
)

// ErrPotImbalance signals a bookkeeping bug: the pots no longer account for
// every wagered chip. The hand must be aborted rather than paid out.
var ErrPotImbalance = errors.New("pot imbalance")

// ActionError describes a rejected action with enough context for the caller
// to compute a corrected one.
type ActionError struct {
	PlayerID   string
	Action     Action
	Phase      Phase
	Reason     string
	CurrentBet int
	ToCall     int
	Min        int // smallest legal street total for a bet/raise, 0 if none
	Max        int // largest legal street total (the all-in amount)
	Err        error
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s: player %s %s", e.Err, e.PlayerID, e.Action)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Phase.IsStreet() {
		msg += fmt.Sprintf(" (current bet %d, to call %d", e.CurrentBet, e.ToCall)
		if e.Max > 0 {
			msg += fmt.Sprintf(", legal %d-%d", e.Min, e.Max)
		}
		msg += ")"
	}
	return msg
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// HandError is a defensive failure (pot imbalance, exhausted deck) that
// invalidates the whole hand.
type HandError struct {
	HandID string
	Phase  Phase
	Err    error
}

func (e *HandError) Error() string {
	return fmt.Sprintf("hand %s failed during %s: %v", e.HandID, e.Phase, e.Err)
}

func (e *HandError) Unwrap() error {
	return e.Err
}
