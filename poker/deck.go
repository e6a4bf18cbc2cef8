package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when a draw asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a standard 52-card deck with a draw cursor
type Deck struct {
	cards [52]Card // Fixed size array
	next  int
}

// NewDeck creates a new deck shuffled with the given RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{}
	d.fill()
	d.shuffle(rng)
	return d
}

// NewStackedDeck creates a deck whose first cards are top, in order, followed
// by every remaining card in canonical order. Used for replays and tests.
func NewStackedDeck(top ...Card) (*Deck, error) {
	d := &Deck{}
	var seen [52]bool
	i := 0
	for _, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card %v", c)
		}
		if seen[c.index()] {
			return nil, fmt.Errorf("duplicate card %s", c)
		}
		seen[c.index()] = true
		d.cards[i] = c
		i++
	}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if seen[c.index()] {
				continue
			}
			d.cards[i] = c
			i++
		}
	}
	return d, nil
}

func (d *Deck) fill() {
	i := 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
}

// shuffle shuffles the deck using Fisher-Yates
func (d *Deck) shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw returns the next n cards and advances the cursor
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, d.Remaining(), ErrDeckExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Clone returns an independent copy including the cursor position
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
