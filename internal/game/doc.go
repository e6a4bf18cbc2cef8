// Package game implements a single hand of no-limit Texas Hold'em for up to
// nine players.
//
// The main type is HandState, which holds the players, the board, the
// betting state of the current street and the pot ledger. A started hand is
// never mutated: Apply validates an action and returns the next state, so a
// rejected action leaves the caller holding the state it had.
//
// # Basic Usage
//
//	players := []game.PlayerInfo{
//	    {ID: "alice", Stack: 1000},
//	    {ID: "bob", Stack: 1000},
//	    {ID: "carol", Stack: 1000},
//	}
//	h, err := game.StartHand(randutil.New(42), players, 0, 5, 10)
//	if err != nil {
//	    return err
//	}
//	h, err = h.Apply("alice", game.Do(game.Call))
//	h, err = h.Apply("bob", game.RaiseTo(40))
//
// Bet and raise amounts are street totals ("raise to"), not increments.
//
// # Errors
//
// Invalid actions return an *ActionError wrapping one of the sentinel errors
// (ErrNotYourTurn, ErrIllegalAction, ErrAmountBelowMinimum, ...) so callers
// can use errors.Is. Bookkeeping failures that invalidate the hand, such as
// ErrPotImbalance, are returned as a *HandError.
//
// # Architecture
//
// HandState delegates responsibilities to specialized components:
//   - BettingState: street level, minimum raise and round completion
//   - PotManager: contribution ledger, side pot layering and payouts
//   - poker.Deck: shuffled or stacked cards
//   - poker.Evaluate7: hand strength at showdown
package game
