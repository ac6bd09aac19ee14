package hand

import (
	"slices"
	"testing"
	"time"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() *Engine {
	return New(validator.New(joker.None, validator.DefaultRules()))
}

func TestIsWinning(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  bool
	}{
		{"two pure runs and sets", "AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS", true},
		{"ace high run", "QS KS AS 2H 3H 4H 7D 7C 7S 9D 9C 9S 9H", true},
		{"joker fills a run", "5H JK 7H 2S 3S 4S 8C 8D 8S QC QD QS QH", true},
		{"long suit splits into runs", "AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS KS", true},
		{"long pure and impure", "AS 2S 3S 4S 5S 6S 7S 8S 9S 10S 5H 6H JK", true},
		{"no pure run", "4H 5H JK 8D 9D JK 9S 9C 9H KD KC KH KS", false},
		{"only one run", "AS 2S 3S 9D 9C 9S QC QS QH KD KC KH KS", false},
		{"wraparound is not a run", "KS AS 2S 4H 5H 6H 7D 7C 7S 9D 9C 9S 9H", false},
	}
	e := plain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.IsWinning(card.MustParseList(tt.cards)))
		})
	}
}

func TestDecomposeCoversHand(t *testing.T) {
	cards := card.MustParseList("5H JK 7H 2S 3S 4S 8C 8D 8S QC QD QS QH")
	before := slices.Clone(cards)

	d, ok := plain().Decompose(cards)
	require.True(t, ok)
	assert.Equal(t, before, cards)

	var used []card.Card
	for _, m := range d.Melds {
		used = append(used, m.Cards...)
	}
	assert.ElementsMatch(t, cards, used)
	assert.GreaterOrEqual(t, d.Runs(), 2)
	assert.GreaterOrEqual(t, d.PureRuns(), 1)
	assert.NotEmpty(t, d.String())
}

func TestDecomposeRejectsMalformed(t *testing.T) {
	e := plain()
	win := card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS")

	assert.False(t, e.IsWinning(win[:12]))
	assert.False(t, e.IsWinning(append(slices.Clone(win), card.NewJoker(0))))
	dup := slices.Clone(win)
	dup[12] = dup[0]
	assert.False(t, e.IsWinning(dup))
	assert.False(t, e.IsWinning(nil))

	junk := slices.Clone(win)
	junk[0] = card.New("nope", "nope", 0)
	assert.False(t, e.IsWinning(junk))
}

func TestDesignatedJokers(t *testing.T) {
	cards := card.MustParseList("AS 2S 3S 5D 6D 7C 9D 9C 9S KD KC KH KS")
	assert.False(t, plain().IsWinning(cards))

	d := joker.FromWildcard(card.Of(card.Hearts, card.Seven, 0), joker.AlternateOneUp)
	e := New(validator.New(d, validator.DefaultRules()))
	assert.True(t, e.IsWinning(cards))
}

func TestTanalaCountsAsPure(t *testing.T) {
	cards := card.MustParseList("9S 9S 9S 4H 5H JK 7D 8D JK KD KC KH KS")
	assert.False(t, plain().IsWinning(cards))

	rules := validator.Rules{AllowTanala: true, TanalaIsPure: true}
	e := New(validator.New(joker.None, rules))
	assert.True(t, e.IsWinning(cards))
}

// A hand full of jokers has a huge candidate space and must still finish
// quickly.
func TestDecomposeBounded(t *testing.T) {
	cards := card.MustParseList("AS 2S 3S JK JK JK JK JK JK JK JK JK JK")
	start := time.Now()
	_, _ = plain().Decompose(cards)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestBestDiscardForWin(t *testing.T) {
	e := plain()
	cards := card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS 7C")

	c, d, ok := e.BestDiscardForWin(cards)
	require.True(t, ok)
	assert.Equal(t, "7C", c.String())
	assert.Len(t, d.Melds, 4)

	_, _, ok = e.BestDiscardForWin(cards[:13])
	assert.False(t, ok)
}

func TestBestDiscardForWinNoWin(t *testing.T) {
	e := plain()
	hands := map[string]string{
		"one pure run and deadwood": "AS 2S 3S 4H 7D 9C JH QC KD 2D 5C 8S 10H 6D",
		"three melds, three loose":  "AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC 7C 2H 8D",
	}
	for name, text := range hands {
		t.Run(name, func(t *testing.T) {
			cards := card.MustParseList(text)
			require.Len(t, cards, 14)
			_, _, ok := e.BestDiscardForWin(cards)
			assert.False(t, ok)
			assert.Empty(t, e.WinningDiscards(cards))
		})
	}
}

func TestWinningDiscardsPreferNaturalsAndLowValue(t *testing.T) {
	e := plain()
	cards := card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS JK")

	wins := e.WinningDiscards(cards)
	require.GreaterOrEqual(t, len(wins), 2)
	assert.Equal(t, "AS", wins[0].Card.String())
	assert.True(t, wins[len(wins)-1].Card.Joker)
	for i := 1; i < len(wins); i++ {
		prev, cur := wins[i-1].Card, wins[i].Card
		if !prev.Joker && !cur.Joker {
			assert.LessOrEqual(t, prev.Value(), cur.Value())
		}
	}
}

func TestWinningDiscardsTriesFaceOnce(t *testing.T) {
	e := plain()
	cards := card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS KS")
	wins := e.WinningDiscards(cards)
	require.Len(t, wins, 1)
	assert.Equal(t, "KS", wins[0].Card.String())
	assert.Equal(t, 0, wins[0].Card.DeckIndex)
}

func TestPoints(t *testing.T) {
	e := plain()
	assert.Equal(t, 35, e.Points(card.MustParseList("AS 10H KD 5C JK")))
	assert.Equal(t, 0, e.CardPoints(card.New("x", "y", 0)))

	d := joker.FromWildcard(card.Of(card.Hearts, card.Seven, 0), joker.AlternateOneUp)
	j := New(validator.New(d, validator.DefaultRules()))
	assert.Equal(t, -10, j.CardPoints(card.Of(card.Spades, card.Seven, 0)))
	assert.Equal(t, -20, j.CardPoints(card.Of(card.Hearts, card.Eight, 0)))
	assert.Equal(t, 7, j.CardPoints(card.Of(card.Hearts, card.Seven, 0)))
}

func TestPenalty(t *testing.T) {
	e := plain()
	assert.Equal(t, 0, e.Penalty(card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH KS")))
	assert.Equal(t, MaxPenalty, e.Penalty(card.MustParseList("2S 5H 9D KC 4S 7H JD 3C 6D 8S QH AC 10S")))
	assert.Equal(t, 79, e.Penalty(card.MustParseList("AS 2S 3S 5H 9D KC 4D 7H JD 8C 6D QH 10C")))
	assert.Equal(t, 0, e.Penalty(nil))
}
