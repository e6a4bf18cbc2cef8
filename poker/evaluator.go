package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Higher values are
// stronger; equal values are an exact tie.
//
// The category occupies bits 20 and up. Below it are up to five 4-bit rank
// slots in descending significance (e.g. trips rank, then the kickers).
type HandRank uint32

// Category enumerates the categories of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

var (
	// ErrInvalidHandSize is returned when the evaluator is not given seven cards.
	ErrInvalidHandSize = errors.New("hand evaluation requires exactly 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

const categoryShift = 20

func makeRank(cat Category, ranks ...Rank) HandRank {
	v := uint32(cat) << categoryShift
	shift := 16
	for _, r := range ranks {
		v |= uint32(r) << shift
		shift -= 4
	}
	return HandRank(v)
}

// Category returns the hand category
func (hr HandRank) Category() Category {
	return Category(hr >> categoryShift)
}

// rankAt returns the i-th significant rank slot (0 = most significant)
func (hr HandRank) rankAt(i int) Rank {
	return Rank((uint32(hr) >> (16 - 4*i)) & 0xF)
}

// Compare returns 1 if hr beats other, -1 if other wins and 0 on a tie
func (hr HandRank) Compare(other HandRank) int {
	switch {
	case hr > other:
		return 1
	case hr < other:
		return -1
	}
	return 0
}

// String returns a human-readable hand description
func (hr HandRank) String() string {
	top := hr.rankAt(0)
	switch cat := hr.Category(); cat {
	case StraightFlush:
		if top == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", top)
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", top.Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", top.Name(), hr.rankAt(1).Name())
	case Flush:
		return fmt.Sprintf("Flush, %s high", top)
	case Straight:
		return fmt.Sprintf("Straight, %s high", top)
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", top.Name())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", top.Name(), hr.rankAt(1).Name())
	case Pair:
		return fmt.Sprintf("Pair of %s", top.Name())
	default:
		return fmt.Sprintf("High Card, %s", top)
	}
}

// Evaluate7 evaluates the best 5-card hand out of exactly seven cards
func Evaluate7(cards [7]Card) HandRank {
	return evaluate(cards[:])
}

// Evaluate validates its input and evaluates the best 5-card hand of seven cards
func Evaluate(cards ...Card) (HandRank, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("got %d cards: %w", len(cards), ErrInvalidHandSize)
	}
	var seen uint64
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("invalid card %v", c)
		}
		bit := uint64(1) << c.index()
		if seen&bit != 0 {
			return 0, fmt.Errorf("%s: %w", c, ErrDuplicateCard)
		}
		seen |= bit
	}
	return evaluate(cards), nil
}

// BestFive returns the five cards that make up the best hand from the given
// cards, ordered as they were supplied.
func BestFive(cards []Card) []Card {
	if len(cards) <= 5 {
		return append([]Card(nil), cards...)
	}
	target := evaluate(cards)
	n := len(cards)
	combo := make([]Card, 5)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						if evaluate(combo) == target {
							return append([]Card(nil), combo...)
						}
					}
				}
			}
		}
	}
	return nil
}

// evaluate ranks five or more cards. Rank bits are 0 (deuce) through 12 (ace).
func evaluate(cards []Card) HandRank {
	var suitMasks [4]uint16
	for _, c := range cards {
		suitMasks[c.Suit] |= 1 << (c.Rank - Two)
	}
	rankMask := suitMasks[0] | suitMasks[1] | suitMasks[2] | suitMasks[3]
	return rankFromMasks(suitMasks, rankMask)
}

func rankFromMasks(suitMasks [4]uint16, rankMask uint16) HandRank {
	// At most one suit can hold five of seven cards, and a flush rules out quads
	// and full houses within seven cards, so check it first.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return makeRank(StraightFlush, high)
		}
		return makeRank(Flush, topRanks(suitMask, 5)...)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad, ok := highest(quadsMask); ok {
		kicker := topRanks(rankMask&^bit(quad), 1)
		return makeRank(FourOfAKind, quad, kicker[0])
	}

	if trip, ok := highest(tripsMask); ok {
		// A second set of trips plays as the pair.
		if pair, ok := highest(pairsMask | (tripsMask &^ bit(trip))); ok {
			return makeRank(FullHouse, trip, pair)
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return makeRank(Straight, high)
	}

	if trip, ok := highest(tripsMask); ok {
		kickers := topRanks(rankMask&^bit(trip), 2)
		return makeRank(ThreeOfAKind, append([]Rank{trip}, kickers...)...)
	}

	if high, ok := highest(pairsMask); ok {
		if low, ok := highest(pairsMask &^ bit(high)); ok {
			kicker := topRanks(rankMask&^bit(high)&^bit(low), 1)
			return makeRank(TwoPair, high, low, kicker[0])
		}
		kickers := topRanks(rankMask&^bit(high), 3)
		return makeRank(Pair, append([]Rank{high}, kickers...)...)
	}

	return makeRank(HighCard, topRanks(rankMask, 5)...)
}

func bit(r Rank) uint16 {
	return 1 << (r - Two)
}

// highest returns the highest rank present in the bitmask
func highest(mask uint16) (Rank, bool) {
	if mask == 0 {
		return 0, false
	}
	return Two + Rank(bits.Len16(mask)-1), true
}

// topRanks returns the n highest ranks in descending order. Missing slots
// (fewer than n ranks available) are left as zero.
func topRanks(mask uint16, n int) []Rank {
	ranks := make([]Rank, n)
	for i := 0; i < n && mask != 0; i++ {
		r, _ := highest(mask)
		ranks[i] = r
		mask &^= bit(r)
	}
	return ranks
}

// straightHigh returns the high card of the best straight present in the
// mask, or 0 if there is none. The wheel (A-2-3-4-5) is five-high.
func straightHigh(mask uint16) Rank {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade identifies consecutive sequences in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := bits.Len16(seq) - 1
		return Two + Rank(low+4)
	}
	if mask&wheelMask == wheelMask {
		return Five
	}
	return 0
}
