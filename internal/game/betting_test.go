package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinRaiseTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		currentBet int
		lastRaise  int
		want       int
	}{
		{"unopened street", 0, 10, 10},
		{"preflop big blind", 10, 10, 20},
		{"after raise to 30", 30, 20, 60},
		{"large raise sets the increment", 100, 90, 200},
		{"increment dominates", 150, 200, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBettingState(Flop, 2, 10)
			b.CurrentBet = tt.currentBet
			b.LastRaiseSize = tt.lastRaise
			assert.Equal(t, tt.want, b.MinRaiseTo())
		})
	}
}

func TestLegalActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		street        BettingState
		player        Player
		opponentAllIn bool
		want          []ValidAction
	}{
		{
			name:   "unopened",
			street: BettingState{CurrentBet: 0, LastRaiseSize: 10, BigBlind: 10},
			player: Player{Stack: 500},
			want: []ValidAction{
				{Kind: Check},
				{Kind: Bet, Min: 10, Max: 500},
				{Kind: AllIn, Min: 500, Max: 500},
			},
		},
		{
			name:   "facing a bet",
			street: BettingState{CurrentBet: 40, LastRaiseSize: 40, BigBlind: 10},
			player: Player{Stack: 500},
			want: []ValidAction{
				{Kind: Fold},
				{Kind: Call, Min: 40, Max: 40},
				{Kind: Raise, Min: 80, Max: 500},
				{Kind: AllIn, Min: 500, Max: 500},
			},
		},
		{
			name:   "short stack can only call all-in",
			street: BettingState{CurrentBet: 40, LastRaiseSize: 40, BigBlind: 10},
			player: Player{Stack: 25},
			want: []ValidAction{
				{Kind: Fold},
				{Kind: Call, Min: 25, Max: 25},
				{Kind: AllIn, Min: 25, Max: 25},
			},
		},
		{
			name:   "raise below minimum only for the whole stack",
			street: BettingState{CurrentBet: 40, LastRaiseSize: 40, BigBlind: 10},
			player: Player{Stack: 60},
			want: []ValidAction{
				{Kind: Fold},
				{Kind: Call, Min: 40, Max: 40},
				{Kind: Raise, Min: 60, Max: 60},
				{Kind: AllIn, Min: 60, Max: 60},
			},
		},
		{
			name:   "big blind option",
			street: BettingState{Street: Preflop, CurrentBet: 10, LastRaiseSize: 10, BigBlind: 10},
			player: Player{Stack: 490, Bet: 10},
			want: []ValidAction{
				{Kind: Check},
				{Kind: Raise, Min: 20, Max: 500},
				{Kind: AllIn, Min: 500, Max: 500},
			},
		},
		{
			name:          "opponent all-in leaves fold and call",
			street:        BettingState{CurrentBet: 100, LastRaiseSize: 90, BigBlind: 10},
			player:        Player{Stack: 990, Bet: 10},
			opponentAllIn: true,
			want: []ValidAction{
				{Kind: Fold},
				{Kind: Call, Min: 90, Max: 90},
			},
		},
		{
			name:          "opponent all-in still allows calling all-in",
			street:        BettingState{CurrentBet: 100, LastRaiseSize: 90, BigBlind: 10},
			player:        Player{Stack: 60},
			opponentAllIn: true,
			want: []ValidAction{
				{Kind: Fold},
				{Kind: Call, Min: 60, Max: 60},
				{Kind: AllIn, Min: 60, Max: 60},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := tt.street
			b.Acted = make([]bool, 2)
			b.RaiseLocked = make([]bool, 2)
			p := tt.player
			p.InHand = true
			opponent := &Player{Seat: 1, InHand: true, Stack: 1000, AllIn: tt.opponentAllIn}
			if tt.opponentAllIn {
				opponent.Stack = 0
			}
			assert.Equal(t, tt.want, b.LegalActions([]*Player{&p, opponent}, &p))
		})
	}

	t.Run("folded player has none", func(t *testing.T) {
		t.Parallel()
		b := newBettingState(Flop, 1, 10)
		assert.Empty(t, b.LegalActions(nil, &Player{InHand: true, Folded: true, Stack: 100}))
	})
}

func TestBettingStateCloneIsIndependent(t *testing.T) {
	t.Parallel()

	b := newBettingState(Flop, 3, 10)
	c := b.clone()
	c.Acted[1] = true
	c.RaiseLocked[2] = true

	assert.False(t, b.Acted[1])
	assert.False(t, b.RaiseLocked[2])
}

func TestNextEligibleSeat(t *testing.T) {
	t.Parallel()

	players := seated(5, 2)
	players[3].AllIn = true
	players[0].InHand = false

	assert.Equal(t, 1, NextEligibleSeat(players, 0))
	assert.Equal(t, 4, NextEligibleSeat(players, 1))
	assert.Equal(t, 1, NextEligibleSeat(players, 4), "wraps past seats that cannot act")
	assert.Equal(t, NoSeat, NextEligibleSeat(seated(3, 0, 1, 2), 0))

	assert.Equal(t, []int{4, 1, 2, 3}, SeatOrder(players, 3))
}
