package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdemcore/poker"
)

// Pot represents a main or side pot
type Pot struct {
	Amount   int
	Eligible []int // seats that can win this pot
	Cap      int   // contribution level this pot is layered up to
}

// PotResult records how one pot was awarded
type PotResult struct {
	Amount   int
	Eligible []int
	Winners  []int // seats, in odd-chip order
	Payouts  []int // chips paid to each of Winners
}

// PotManager is the per-hand ledger of chips each seat has contributed
type PotManager struct {
	contributed []int
}

// NewPotManager creates an empty ledger for the given number of seats
func NewPotManager(seats int) *PotManager {
	return &PotManager{contributed: make([]int, seats)}
}

// Add records chips moved from seat into the pot
func (pm *PotManager) Add(seat, amount int) {
	pm.contributed[seat] += amount
}

// Contribution returns what seat has put in this hand
func (pm *PotManager) Contribution(seat int) int {
	return pm.contributed[seat]
}

// Total returns every chip contributed this hand
func (pm *PotManager) Total() int {
	total := 0
	for _, c := range pm.contributed {
		total += c
	}
	return total
}

// Uncalled returns the part of seat's contribution no other seat matched.
// Those chips form a layer only seat is eligible for and go straight back.
func (pm *PotManager) Uncalled(seat int) int {
	matched := 0
	for other, c := range pm.contributed {
		if other != seat {
			matched = max(matched, c)
		}
	}
	return max(0, pm.contributed[seat]-matched)
}

// Clone returns an independent copy of the ledger
func (pm *PotManager) Clone() *PotManager {
	return &PotManager{contributed: slices.Clone(pm.contributed)}
}

// BuildPots layers the ledger into a main pot and side pots.
//
// Each distinct contribution level forms a layer paid into by every seat
// that reached it. A seat is eligible for a layer if it has not folded and
// contributed at least the layer's level. Consecutive layers with the same
// eligible seats are merged, and a layer nobody can win (only folded chips)
// is added to the pot beneath it.
func (pm *PotManager) BuildPots(players []*Player) []Pot {
	var levels []int
	for _, c := range pm.contributed {
		if c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)

	var pots []Pot
	carry, prev := 0, 0
	for _, level := range levels {
		amount := 0
		var eligible []int
		for seat, c := range pm.contributed {
			if c > prev {
				amount += min(c, level) - prev
			}
			if c >= level && players[seat].Live() {
				eligible = append(eligible, seat)
			}
		}
		prev = level

		switch {
		case len(eligible) == 0 && len(pots) > 0:
			pots[len(pots)-1].Amount += amount
		case len(eligible) == 0:
			carry += amount
		case len(pots) > 0 && slices.Equal(pots[len(pots)-1].Eligible, eligible):
			pots[len(pots)-1].Amount += amount
			pots[len(pots)-1].Cap = level
		default:
			pots = append(pots, Pot{Amount: amount + carry, Eligible: eligible, Cap: level})
			carry = 0
		}
	}
	if carry > 0 {
		// No live player contributed at all. Keep the chips visible so the
		// imbalance is caught at distribution.
		pots = append(pots, Pot{Amount: carry, Cap: prev})
	}
	return pots
}

// Distribute awards each pot to the strongest eligible hands. Ties split the
// pot evenly; odd chips go one at a time to the tied winners in order, the
// seat sequence starting left of the dealer.
func (pm *PotManager) Distribute(pots []Pot, strengths map[int]poker.HandRank, order []int) ([]PotResult, error) {
	sum := 0
	for _, pot := range pots {
		sum += pot.Amount
	}
	if total := pm.Total(); sum != total {
		return nil, fmt.Errorf("pots hold %d but %d was contributed: %w", sum, total, ErrPotImbalance)
	}

	position := make(map[int]int, len(order))
	for i, seat := range order {
		position[seat] = i
	}

	results := make([]PotResult, 0, len(pots))
	for i, pot := range pots {
		if len(pot.Eligible) == 0 {
			return nil, fmt.Errorf("pot %d has no eligible players: %w", i, ErrPotImbalance)
		}

		var winners []int
		var best poker.HandRank
		for _, seat := range pot.Eligible {
			rank, ok := strengths[seat]
			if !ok && len(pot.Eligible) > 1 {
				return nil, fmt.Errorf("no hand strength for seat %d", seat)
			}
			switch {
			case len(winners) == 0 || rank > best:
				best = rank
				winners = []int{seat}
			case rank == best:
				winners = append(winners, seat)
			}
		}
		slices.SortFunc(winners, func(a, b int) int {
			return position[a] - position[b]
		})

		results = append(results, PotResult{
			Amount:   pot.Amount,
			Eligible: slices.Clone(pot.Eligible),
			Winners:  winners,
			Payouts:  splitPot(pot.Amount, len(winners)),
		})
	}
	return results, nil
}

// splitPot divides amount between n winners, giving the first amount%n of
// them one extra chip.
func splitPot(amount, n int) []int {
	shares := make([]int, n)
	for i := range shares {
		shares[i] = amount / n
		if i < amount%n {
			shares[i]++
		}
	}
	return shares
}
