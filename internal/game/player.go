package game

import (
	"github.com/lox/holdemcore/poker"
)

// PlayerInfo is the roster entry a hand is started from
type PlayerInfo struct {
	ID    string
	Name  string
	Stack int
}

// Player represents a player in a hand
type Player struct {
	ID         string
	Name       string
	Seat       int
	Stack      int // chips not yet wagered
	StartStack int
	Bet        int // wagered this street
	TotalBet   int // wagered this hand
	HoleCards  []poker.Card

	InHand bool // dealt into this hand
	Folded bool
	AllIn  bool

	Dealer     bool
	SmallBlind bool
	BigBlind   bool
}

// CanAct returns true if the player still has betting decisions to make
func (p *Player) CanAct() bool {
	return p.InHand && !p.Folded && !p.AllIn
}

// Live returns true if the player is still contesting the pot
func (p *Player) Live() bool {
	return p.InHand && !p.Folded
}

func (p *Player) clone() *Player {
	c := *p
	c.HoleCards = append([]poker.Card(nil), p.HoleCards...)
	return &c
}
