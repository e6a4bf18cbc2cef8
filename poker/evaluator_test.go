package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, s string) HandRank {
	t.Helper()
	rank, err := Evaluate(MustParseCards(s)...)
	require.NoError(t, err)
	return rank
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
		desc     string
	}{
		{"royal flush", "AsKsQsJsTs2h3d", StraightFlush, "Royal Flush"},
		{"straight flush", "9s8s7s6s5s4h3h", StraightFlush, "Straight Flush, 9 high"},
		{"steel wheel", "As2s3s4s5sKhKd", StraightFlush, "Straight Flush, 5 high"},
		{"four of a kind", "AsAhAdAcKs2h3h", FourOfAKind, "Four of a Kind, Aces"},
		{"full house", "AhAcAd2h2cKdQs", FullHouse, "Full House, Aces full of Twos"},
		{"two trips make a boat", "KsKhKd7c7h7d2s", FullHouse, "Full House, Kings full of Sevens"},
		{"flush", "AsKsQs8s6s4h3h", Flush, "Flush, A high"},
		{"six card flush", "2s4s6s8sTsQsAh", Flush, "Flush, Q high"},
		{"straight", "AsKhQdJcTs9h8h", Straight, "Straight, A high"},
		{"wheel", "As2h3d4c5s9hJh", Straight, "Straight, 5 high"},
		{"six high beats wheel shape", "As2h3d4c5s6hJh", Straight, "Straight, 6 high"},
		{"three of a kind", "AsAhAdKs9c7h5h", ThreeOfAKind, "Three of a Kind, Aces"},
		{"two pair", "AsAhKdKs9c7h5h", TwoPair, "Two Pair, Aces and Kings"},
		{"three pairs", "2h2c3d3c4h4s9d", TwoPair, "Two Pair, Fours and Threes"},
		{"one pair", "AsAhKdQs9c7h5h", Pair, "Pair of Aces"},
		{"high card", "AsKhQd9s7c5h3h", HighCard, "High Card, A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := mustEval(t, tt.cards)
			assert.Equal(t, tt.category, rank.Category())
			assert.Equal(t, tt.desc, rank.String())
		})
	}
}

func TestEvaluateOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		better string
		worse  string
	}{
		{"royal flush beats full house", "AsKsQsJsTs2h3d", "AhAcAd2h2cKdQs"},
		{"quads beat full house", "7s7h7d7c2s3h4d", "AhAcAdKhKcQd2s"},
		{"full house trip rank first", "3s3h3dAcAh5d6c", "2s2h2dAcAhKdQc"},
		{"full house pair rank second", "KsKhKdQcQh2d3c", "KsKhKdJcJh2d3c"},
		{"flush beats straight", "2s4s6s8sTsKhQd", "9h8d7c6s5hKdQc"},
		{"six-high straight beats wheel", "2h3d4c5s6hKdKc", "Ah2d3c4s5hKdKc"},
		{"higher two pair", "AsAhKdKs9c7h5h", "AsAhQdQs9c7h5h"},
		{"two pair lower pair", "AsAhKdKs9c7h5h", "AsAhJdJs9c7h5h"},
		{"two pair kicker", "AsAhKdKsQc7h5h", "AsAhKdKsJc7h5h"},
		{"pair kicker", "AsAhKd9s7c4h2h", "AsAhQd9s7c4h2h"},
		{"high card last kicker", "AsKhQd9s7c4h2h", "AsKhQd9s6c4h2h"},
		{"quads kicker", "AsAhAdAcKs2h3h", "AsAhAdAcQs2h3h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := mustEval(t, tt.better)
			worse := mustEval(t, tt.worse)
			assert.Equal(t, 1, better.Compare(worse))
			assert.Equal(t, -1, worse.Compare(better))
		})
	}
}

func TestEvaluateExactTie(t *testing.T) {
	t.Parallel()

	// Same board plays for both: 2h2c3d3c plus the board kicker.
	a := mustEval(t, "2h2c3d3c4h5s9d")
	b := mustEval(t, "2s2d3h3s4h5s9d")
	assert.Equal(t, 0, a.Compare(b))

	// Identical seven cards are an exact tie.
	assert.Equal(t, mustEval(t, "2h2c3d3c4h5s9d"), a)

	// Unused sixth and seventh cards never break ties.
	c := mustEval(t, "AsKsQhJdTc2h3h")
	d := mustEval(t, "AsKsQhJdTc4h5h")
	assert.Equal(t, c, d)
}

func TestEvaluateMatchesBestOfTwentyOne(t *testing.T) {
	t.Parallel()

	rng := newTestRNG(99)
	for i := 0; i < 500; i++ {
		cards, err := NewDeck(rng).Draw(7)
		require.NoError(t, err)

		var seven [7]Card
		copy(seven[:], cards)
		got := Evaluate7(seven)

		var best HandRank
		for skipA := 0; skipA < 7; skipA++ {
			for skipB := skipA + 1; skipB < 7; skipB++ {
				five := make([]Card, 0, 5)
				for k, c := range cards {
					if k != skipA && k != skipB {
						five = append(five, c)
					}
				}
				if r := evaluate(five); r > best {
					best = r
				}
			}
		}
		require.Equal(t, best, got, "cards %s", CardsString(cards))
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(MustParseCards("AsKsQsJsTs")...)
	require.ErrorIs(t, err, ErrInvalidHandSize)

	_, err = Evaluate(MustParseCards("AsAsQsJsTs2h3h")...)
	require.ErrorIs(t, err, ErrDuplicateCard)
}

func TestBestFive(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("2h AsKsQsJsTs 3d")
	best := BestFive(cards)
	assert.Equal(t, "As Ks Qs Js Ts", CardsString(best))

	boat := BestFive(MustParseCards("AhAcAd2h2cKdQs"))
	assert.Equal(t, "Ah Ac Ad 2h 2c", CardsString(boat))
}
