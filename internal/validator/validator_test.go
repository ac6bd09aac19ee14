package validator

import (
	"testing"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() *Validator { return New(joker.None, DefaultRules()) }

// sevenHearts makes 7S, 7C and 8H wild.
func sevenHearts(r Rules) *Validator {
	return New(joker.FromWildcard(card.Of(card.Hearts, card.Seven, 0), joker.AlternateOneUp), r)
}

func TestIsPureRun(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"AS 2S 3S", true},
		{"QS KS AS", true},
		{"3S 2S 4S", true},
		{"AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS KS", true},
		{"KS AS 2S", false},
		{"2S 3S 5S", false},
		{"2S 3S 4H", false},
		{"2S 3S", false},
		{"2S 3S JK", false},
		{"2S 3S 3S", false},
	}
	v := plain()
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsPureRun(card.MustParseList(tt.cards)))
		})
	}
}

func TestPureRunWithDesignatedJoker(t *testing.T) {
	cards := card.MustParseList("5S 6S 7S")
	assert.False(t, sevenHearts(DefaultRules()).IsPureRun(cards))

	r := DefaultRules()
	r.NaturalJokersInPureRun = true
	assert.True(t, sevenHearts(r).IsPureRun(cards))
	assert.False(t, sevenHearts(r).IsPureRun(card.MustParseList("5S 6S JK")))
}

func TestIsRunWithJoker(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"5H JK 7H", true},
		{"5H 6H JK", true},
		{"QH KH JK", true},
		{"AH KH JK", true},
		{"AH JK JK", true},
		{"5H 6H 7H", true},
		{"JK JK JK", false},
		{"5H 9H JK", false},
		{"KH JK 2H", false},
		{"5H 5H JK", false},
		{"5H 6D JK", false},
		{"5H JK", false},
		{"AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS JK", true},
		{"AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS KS JK", false},
	}
	v := plain()
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsRunWithJoker(card.MustParseList(tt.cards)))
		})
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"9S 9H 9D", true},
		{"9S 9H 9D 9C", true},
		{"9S 9H JK", true},
		{"9S 9S 9H", false},
		{"9S 9H 9D 9C JK", false},
		{"9S 9H 8D", false},
		{"JK JK JK", false},
		{"9S 9H", false},
		{"9S 9S 9S", true},
		{"9S 9S JK", true},
	}
	v := plain()
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsSet(card.MustParseList(tt.cards)))
		})
	}
}

func TestTanala(t *testing.T) {
	cards := card.MustParseList("9S 9S 9S")
	v := plain()
	assert.True(t, v.IsTanala(cards))
	assert.False(t, v.IsTanala(card.MustParseList("9S 9H 9D")))

	// Same deck twice is not a tanala.
	a := card.Of(card.Spades, card.Nine, 1)
	b := a
	b.ID = "spades-9-1-copy"
	assert.False(t, v.IsSet([]card.Card{a, b, card.Of(card.Spades, card.Nine, 2)}))

	noTanala := New(joker.None, Rules{})
	assert.False(t, noTanala.IsSet(cards))

	m, ok := v.Meld(cards)
	require.True(t, ok)
	assert.True(t, m.Tanala)
	assert.False(t, m.Pure)
	assert.False(t, m.Run())

	pure := New(joker.None, Rules{AllowTanala: true, TanalaIsPure: true})
	m, ok = pure.Meld(cards)
	require.True(t, ok)
	assert.True(t, m.Pure)
	assert.True(t, m.Run())

	m, ok = pure.Meld(card.MustParseList("9S 9S JK"))
	require.True(t, ok)
	assert.True(t, m.Tanala)
	assert.False(t, m.Pure)
}

func TestClassify(t *testing.T) {
	v := sevenHearts(DefaultRules())
	tests := []struct {
		cards string
		want  Kind
		ok    bool
	}{
		{"AS 2S 3S", PureRun, true},
		{"8S 9S 7S", ImpureRun, true},
		{"5D 8H 7D", ImpureRun, true},
		{"KD KC KH", Set, true},
		{"KD KC 7C", Set, true},
		{"KD 2C 7C", Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			kind, ok := v.Classify(card.MustParseList(tt.cards))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestMalformedCardsNeverMeld(t *testing.T) {
	v := plain()
	junk := []card.Card{card.New("x", "y", 0), card.New("spades", "2", 0), card.New("spades", "3", 0)}
	assert.False(t, v.IsPureRun(junk))
	assert.False(t, v.IsRunWithJoker(junk))
	assert.False(t, v.IsSet(junk))
	assert.False(t, v.IsPureRun(nil))
	assert.False(t, v.IsSet(nil))
	assert.NotEmpty(t, v.Explain(junk))
}

func melds(groups ...string) [][]card.Card {
	out := make([][]card.Card, len(groups))
	for i, g := range groups {
		out[i] = card.MustParseList(g)
	}
	return out
}

func TestValidateDeclaration(t *testing.T) {
	v := plain()
	res := v.Validate(melds("AS 2S 3S", "4H 5H JK", "9D 9C 9S", "KD KC KH KS"))
	assert.True(t, res.OK(), res.Errors)
	assert.Len(t, res.Melds, 4)
	assert.Empty(t, res.Warnings)
}

func TestValidateNeedsPureRun(t *testing.T) {
	v := plain()
	res := v.Validate(melds("4H 5H JK", "8D 9D JK@1", "QC QS QH", "KD KC KH KS"))
	require.False(t, res.OK())
	assert.Contains(t, res.Errors, "declaration needs a pure run")
}

func TestValidateNeedsTwoRuns(t *testing.T) {
	v := plain()
	res := v.Validate(melds("AS 2S 3S", "9D 9C 9S", "QC QS QH", "KD KC KH KS"))
	require.False(t, res.OK())
	assert.Contains(t, res.Errors, "declaration needs at least 2 runs, found 1")
}

func TestValidateReportsBadMeldAndDuplicates(t *testing.T) {
	v := plain()
	res := v.Validate(melds("AS 2S 4S", "AS 5S 6S"))
	require.False(t, res.OK())
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "already used")
	assert.Contains(t, res.Errors[1], "missing ranks")
	assert.NotEmpty(t, res.Warnings)
}

func TestExplain(t *testing.T) {
	v := plain()
	assert.Empty(t, v.Explain(card.MustParseList("AS 2S 3S")))
	assert.Equal(t, "needs at least 3 cards, has 2", v.Explain(card.MustParseList("AS 2S")))
	assert.Equal(t, "contains only jokers", v.Explain(card.MustParseList("JK JK JK")))
	assert.Equal(t, "not a set: a suit repeats", v.Explain(card.MustParseList("9S 9S 9H")))
}
