package game

import (
	"github.com/lox/holdemcore/poker"
)

// MaxSeats is the largest table a hand can be dealt to
const MaxSeats = 9

// Rules holds the house rules that vary between card rooms
type Rules struct {
	// ShortAllInReopens lets an all-in smaller than a full raise reopen the
	// betting for players who already acted on the street.
	ShortAllInReopens bool
}

// HandOption configures a HandState during creation.
type HandOption func(*handConfig)

type handConfig struct {
	deck   *poker.Deck // overrides the RNG shuffle when set
	rules  Rules
	handID string
}

// WithDeck deals from the given deck instead of shuffling a fresh one.
//
// Hole cards are drawn two at a time per player, starting with the seat to
// the dealer's left, followed by three flop cards, the turn and the river.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}

// WithRules sets house rules for the hand
func WithRules(rules Rules) HandOption {
	return func(c *handConfig) {
		c.rules = rules
	}
}

// WithHandID sets the hand identifier; a random UUID is used otherwise
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.handID = id
	}
}
