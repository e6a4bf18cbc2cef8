package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "As", NewCard(Ace, Spades).String())
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
	assert.Equal(t, "Td", NewCard(Ten, Diamonds).String())
	assert.Equal(t, "Jh", NewCard(Jack, Hearts).String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "As", want: NewCard(Ace, Spades)},
		{input: "2h", want: NewCard(Two, Hearts)},
		{input: "kd", want: NewCard(King, Diamonds)},
		{input: "10c", want: NewCard(Ten, Clubs)},
		{input: "Tc", want: NewCard(Ten, Clubs)},
		{input: "1s", wantErr: true},
		{input: "Ax", wantErr: true},
		{input: "A", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Rank, got.Rank)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "concatenated", input: "AsKsQsJsTs", want: "As Ks Qs Js Ts"},
		{name: "spaced", input: "As Kd, 10h", want: "As Kd Th"},
		{name: "mixed case", input: "asKHqDjc", want: "As Kh Qd Jc"},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "bad suit", input: "AsKx", wantErr: true},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, CardsString(got))
		})
	}
}

func TestRankValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Rank(2), Two)
	assert.Equal(t, Rank(11), Jack)
	assert.Equal(t, Rank(12), Queen)
	assert.Equal(t, Rank(13), King)
	assert.Equal(t, Rank(14), Ace)
	assert.True(t, NewCard(Ace, Hearts).Suit.IsRed())
	assert.False(t, NewCard(Ace, Clubs).Suit.IsRed())
}
