package joker

import (
	"testing"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlternateOneUp(t *testing.T) {
	w := card.Of(card.Hearts, card.Seven, 1)
	d := FromWildcard(w, AlternateOneUp)

	assert.False(t, d.HasRank)
	require.Len(t, d.Signatures, 3)

	assert.True(t, d.IsJoker(card.Of(card.Spades, card.Seven, 0)))
	assert.True(t, d.IsJoker(card.Of(card.Clubs, card.Seven, 2)))
	assert.True(t, d.IsJoker(card.Of(card.Hearts, card.Eight, 0)))

	// The wildcard face and its same-colour twin stay natural.
	assert.False(t, d.IsJoker(w))
	assert.False(t, d.IsJoker(card.Of(card.Diamonds, card.Seven, 0)))
	assert.False(t, d.IsJoker(card.Of(card.Spades, card.Eight, 0)))
	assert.True(t, d.IsWildcardFace(card.Of(card.Hearts, card.Seven, 0)))
}

func TestOneUpWrapsKingToAce(t *testing.T) {
	d := FromWildcard(card.Of(card.Spades, card.King, 0), AlternateOneUp)
	assert.True(t, d.IsJoker(card.Of(card.Spades, card.Ace, 0)))
	assert.True(t, d.IsJoker(card.Of(card.Hearts, card.King, 0)))
	assert.True(t, d.IsJoker(card.Of(card.Diamonds, card.King, 0)))
}

func TestWildRankAndBoth(t *testing.T) {
	w := card.Of(card.Clubs, card.Four, 0)

	d := FromWildcard(w, WildRank)
	assert.Empty(t, d.Signatures)
	for _, s := range card.Suits {
		assert.True(t, d.IsJoker(card.Of(s, card.Four, 0)), s)
	}
	assert.False(t, d.IsJoker(card.Of(card.Clubs, card.Five, 0)))

	d = FromWildcard(w, Both)
	assert.True(t, d.IsJoker(w))
	assert.True(t, d.IsJoker(card.Of(card.Clubs, card.Five, 0)))
}

func TestSyntheticAndUnknown(t *testing.T) {
	assert.True(t, IsJoker(card.NewJoker(0), None))
	assert.False(t, IsJoker(card.Of(card.Spades, card.Ace, 0), None))
	assert.False(t, IsJoker(card.New("stars", "x", 0), FromWildcard(card.Of(card.Spades, card.Ace, 0), WildRank)))
	assert.Equal(t, None, FromWildcard(card.New("", "", 0), Both))
}

func TestPoints(t *testing.T) {
	d := FromWildcard(card.Of(card.Hearts, card.Seven, 0), Both)

	p, ok := d.Points(card.Of(card.Spades, card.Seven, 0))
	require.True(t, ok)
	assert.Equal(t, -10, p)

	p, ok = d.Points(card.Of(card.Hearts, card.Eight, 0))
	require.True(t, ok)
	assert.Equal(t, -20, p)

	p, ok = d.Points(card.Of(card.Hearts, card.Seven, 0))
	require.True(t, ok)
	assert.Equal(t, 0, p)

	_, ok = d.Points(card.Of(card.Hearts, card.Nine, 0))
	assert.False(t, ok)
}

func TestParseConvention(t *testing.T) {
	for _, c := range []Convention{AlternateOneUp, WildRank, Both} {
		got, err := ParseConvention(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseConvention("jokers-everywhere")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "none", None.Describe())
	d := FromWildcard(card.Of(card.Hearts, card.Seven, 0), AlternateOneUp)
	assert.Equal(t, "7S 7C 8H", d.Describe())
}
