package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnownCard(t *testing.T) {
	c := New("hearts", "queen", 2)
	assert.Equal(t, Hearts, c.Suit)
	assert.Equal(t, Queen, c.Rank)
	assert.Equal(t, 2, c.DeckIndex)
	assert.Equal(t, "hearts-queen-2", c.ID)
	assert.Equal(t, "Q", c.DisplayRank())
	assert.Equal(t, "♥", c.DisplaySuit())
	assert.Equal(t, 12, c.Value())
	assert.True(t, c.Natural())
}

func TestNewValues(t *testing.T) {
	tests := []struct {
		rank string
		want int
	}{
		{"ace", 1},
		{"2", 2},
		{"10", 10},
		{"jack", 11},
		{"queen", 12},
		{"king", 13},
	}
	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			assert.Equal(t, tt.want, New("spades", tt.rank, 0).Value())
		})
	}
}

// Hostile strings must never panic and must never masquerade as real cards.
func TestNewMalformedInput(t *testing.T) {
	inputs := [][2]string{
		{"", ""},
		{"<script>alert(1)</script>", "'; DROP TABLE cards;--"},
		{"spades", "eleven"},
		{"stars", "ace"},
		{"${jndi:ldap://x}", "%s%s%n"},
	}
	for _, in := range inputs {
		c := New(in[0], in[1], -5)
		assert.False(t, c.Natural(), "input %q", in)
		assert.Equal(t, 0, c.DeckIndex)
		assert.NotContains(t, c.ID, "<")
		if !c.Rank.Known() {
			assert.Equal(t, "?", c.DisplayRank())
			assert.Equal(t, 0, c.Value())
		}
		if !c.Suit.Known() {
			assert.Equal(t, "?", c.DisplaySuit())
		}
	}
}

func TestNewMalformedInputKeepsIDsApart(t *testing.T) {
	a := New("stars", "ace", 0)
	b := New("moons", "ace", 0)
	c := New("spades", "eleven", 0)
	d := New("spades", "twelve", 0)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, c.ID, d.ID)
	assert.False(t, HasDuplicateIDs([]Card{a, b, c, d}))
	assert.Equal(t, a.ID, New("stars", "ace", 0).ID)
	assert.Equal(t, "spades-ace-0", New("spades", "ace", 0).ID)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"AS", Of(Spades, Ace, 0)},
		{"10h", Of(Hearts, Ten, 0)},
		{"Qd@2", Of(Diamonds, Queen, 2)},
		{"7♣", Of(Clubs, Seven, 0)},
		{"JK", NewJoker(0)},
		{"jk@3", NewJoker(3)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "X", "1X", "ZZ", "AS@-1", "AS@x", "11S"} {
		_, err := Parse(in)
		assert.True(t, errors.Is(err, ErrBadCard), "input %q: %v", in, err)
	}
}

func TestParseListAssignsDecks(t *testing.T) {
	cards, err := ParseList("7S, 7S 7S JK JK")
	require.NoError(t, err)
	require.Len(t, cards, 5)
	assert.Equal(t, 0, cards[0].DeckIndex)
	assert.Equal(t, 1, cards[1].DeckIndex)
	assert.Equal(t, 2, cards[2].DeckIndex)
	assert.False(t, HasDuplicateIDs(cards))

	_, err = ParseList("7S@1 7S@1")
	assert.ErrorIs(t, err, ErrBadCard)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range Suits {
		for _, r := range Ranks {
			c := Of(s, r, 0)
			back, err := Parse(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, back)
		}
	}
}

func TestRankNext(t *testing.T) {
	assert.Equal(t, Ace, King.Next())
	assert.Equal(t, Three, Two.Next())
	assert.Equal(t, RankUnknown, RankUnknown.Next())
}

func TestRemoveAndDuplicates(t *testing.T) {
	cards := MustParseList("AS 2S 3S")
	out := Remove(cards, cards[1].ID)
	assert.Len(t, out, 2)
	assert.Len(t, cards, 3)
	assert.False(t, HasDuplicateIDs(cards))
	assert.True(t, HasDuplicateIDs(append(cards, cards[0])))
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"AS", "10h", "Qd@2", "JK", "", "@", "♠♠"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		c, err := Parse(s)
		if err != nil {
			return
		}
		if !c.Joker && !c.Natural() {
			t.Fatalf("Parse(%q) returned unnatural card %+v without error", s, c)
		}
	})
}
