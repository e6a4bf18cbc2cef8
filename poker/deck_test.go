package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNewDeckHasAllCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(newTestRNG(42))
	require.Equal(t, 52, d.Remaining())

	cards, err := d.Draw(52)
	require.NoError(t, err)

	seen := make(map[Card]bool)
	for _, c := range cards {
		require.True(t, c.Valid(), "invalid card %v", c)
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, d.Remaining())
}

func TestDeckDrawExhausted(t *testing.T) {
	t.Parallel()

	d := NewDeck(newTestRNG(1))
	_, err := d.Draw(50)
	require.NoError(t, err)

	_, err = d.Draw(3)
	require.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, d.Remaining(), "failed draw must not move the cursor")

	cards, err := d.Draw(2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a, err := NewDeck(newTestRNG(7)).Draw(23)
	require.NoError(t, err)
	b, err := NewDeck(newTestRNG(7)).Draw(23)
	require.NoError(t, err)
	c, err := NewDeck(newTestRNG(8)).Draw(23)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDeckClone(t *testing.T) {
	t.Parallel()

	d := NewDeck(newTestRNG(3))
	_, err := d.Draw(5)
	require.NoError(t, err)

	clone := d.Clone()
	fromClone, err := clone.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, 47, d.Remaining(), "drawing from a clone leaves the original alone")

	fromOriginal, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, fromClone, fromOriginal)
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()

	top := MustParseCards("As Ks Qh")
	d, err := NewStackedDeck(top...)
	require.NoError(t, err)

	got, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, top, got)

	rest, err := d.Draw(49)
	require.NoError(t, err)
	for _, c := range rest {
		assert.NotContains(t, top, c)
	}

	_, err = NewStackedDeck(MustParseCards("As As")...)
	require.Error(t, err)
}
