// Package validator checks runs and sets under a game's joker designation
// and house rules.
package validator

import (
	"slices"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/joker"
)

// MaxSetSize bounds a set: one card per suit.
const MaxSetSize = 4

// MaxRunSize is the longest possible run, ace to king or two to ace.
const MaxRunSize = 13

// Rules are the house variants that change what a meld is.
type Rules struct {
	// AllowTanala accepts three or more identical cards from different
	// decks as a set.
	AllowTanala bool
	// TanalaIsPure lets a joker-free tanala stand in for a pure run.
	TanalaIsPure bool
	// NaturalJokersInPureRun accepts a designated joker sitting in its own
	// natural position inside a pure run.
	NaturalJokersInPureRun bool
}

// DefaultRules returns the standard variant.
func DefaultRules() Rules {
	return Rules{AllowTanala: true}
}

// Validator classifies melds. It holds no mutable state and is safe for
// concurrent use.
type Validator struct {
	Jokers joker.Designation
	Rules  Rules
}

func New(d joker.Designation, r Rules) *Validator {
	return &Validator{Jokers: d, Rules: r}
}

// IsJoker reports whether c is wild in this game.
func (v *Validator) IsJoker(c card.Card) bool {
	return v.Jokers.IsJoker(c)
}

// IsPureRun reports whether cards are three or more consecutive ranks of
// one suit with no joker standing in. Ace is low (A-2-3) or high (Q-K-A)
// but a run never turns the corner (K-A-2).
func (v *Validator) IsPureRun(cards []card.Card) bool {
	if len(cards) < 3 || len(cards) > MaxRunSize || card.HasDuplicateIDs(cards) {
		return false
	}
	for _, c := range cards {
		if !c.Natural() {
			return false
		}
		if v.IsJoker(c) && !v.Rules.NaturalJokersInPureRun {
			return false
		}
	}
	if !sameSuit(cards) {
		return false
	}
	return consecutive(rankValues(cards, false)) || consecutive(rankValues(cards, true))
}

// IsRunWithJoker reports whether cards form a run once the jokers fill the
// gaps. The natural cards must share a suit and have distinct ranks, and
// at least one natural card is required.
func (v *Validator) IsRunWithJoker(cards []card.Card) bool {
	if len(cards) < 3 || len(cards) > MaxRunSize || card.HasDuplicateIDs(cards) {
		return false
	}
	anchors, jokers, ok := v.split(cards)
	if !ok || len(anchors) == 0 || !sameSuit(anchors) {
		return false
	}
	_, fits := runGaps(anchors, len(jokers))
	return fits
}

// IsSet reports whether cards share a rank across distinct suits, jokers
// filling the missing suits, or form a tanala when the rules allow it.
func (v *Validator) IsSet(cards []card.Card) bool {
	if len(cards) < 3 || len(cards) > MaxSetSize || card.HasDuplicateIDs(cards) {
		return false
	}
	anchors, _, ok := v.split(cards)
	if !ok || len(anchors) == 0 || !sameRank(anchors) {
		return false
	}
	return distinctSuits(anchors) || v.isTanala(anchors)
}

// IsTanala reports whether cards are a set made of identical faces from
// different decks.
func (v *Validator) IsTanala(cards []card.Card) bool {
	if !v.IsSet(cards) {
		return false
	}
	anchors, _, _ := v.split(cards)
	return len(anchors) > 1 && !distinctSuits(anchors) && v.isTanala(anchors)
}

func (v *Validator) isTanala(anchors []card.Card) bool {
	if !v.Rules.AllowTanala || !sameSuit(anchors) {
		return false
	}
	decks := make(map[int]bool, len(anchors))
	for _, c := range anchors {
		if decks[c.DeckIndex] {
			return false
		}
		decks[c.DeckIndex] = true
	}
	return true
}

// Classify returns the strongest kind cards qualify as, preferring a pure
// run, then a run with joker, then a set.
func (v *Validator) Classify(cards []card.Card) (Kind, bool) {
	switch {
	case v.IsPureRun(cards):
		return PureRun, true
	case v.IsRunWithJoker(cards):
		return ImpureRun, true
	case v.IsSet(cards):
		return Set, true
	}
	return Invalid, false
}

// Meld classifies cards and fills in the tanala and purity flags.
func (v *Validator) Meld(cards []card.Card) (Meld, bool) {
	kind, ok := v.Classify(cards)
	if !ok {
		return Meld{}, false
	}
	m := Meld{Kind: kind, Cards: slices.Clone(cards), Pure: kind == PureRun}
	if kind == Set && v.IsTanala(cards) {
		m.Tanala = true
		_, jokers, _ := v.split(cards)
		m.Pure = v.Rules.TanalaIsPure && len(jokers) == 0
	}
	return m, true
}

// split separates natural cards from jokers. ok is false if any card is
// neither a joker nor a real playing card.
func (v *Validator) split(cards []card.Card) (anchors, jokers []card.Card, ok bool) {
	for _, c := range cards {
		switch {
		case v.IsJoker(c):
			jokers = append(jokers, c)
		case c.Natural():
			anchors = append(anchors, c)
		default:
			return nil, nil, false
		}
	}
	return anchors, jokers, true
}

func sameSuit(cards []card.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func sameRank(cards []card.Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

func distinctSuits(cards []card.Card) bool {
	seen := make(map[card.Suit]bool, len(cards))
	for _, c := range cards {
		if seen[c.Suit] {
			return false
		}
		seen[c.Suit] = true
	}
	return true
}

// rankValues returns sorted rank values, aces counted as 14 when aceHigh.
func rankValues(cards []card.Card, aceHigh bool) []int {
	vals := make([]int, len(cards))
	for i, c := range cards {
		vals[i] = c.Value()
		if aceHigh && c.Rank == card.Ace {
			vals[i] = 14
		}
	}
	slices.Sort(vals)
	return vals
}

func consecutive(vals []int) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1]+1 {
			return false
		}
	}
	return true
}

// runGaps returns the fewest missing ranks between the anchors over both
// ace orderings, and whether the jokers can fill them. Anchors must have
// distinct ranks. Leftover jokers extend the ends, which always fits once
// the run is no longer than MaxRunSize.
func runGaps(anchors []card.Card, jokers int) (gaps int, fits bool) {
	gaps = -1
	for _, aceHigh := range []bool{false, true} {
		vals := rankValues(anchors, aceHigh)
		if len(slices.Compact(slices.Clone(vals))) != len(vals) {
			return -1, false
		}
		g := vals[len(vals)-1] - vals[0] + 1 - len(vals)
		if gaps < 0 || g < gaps {
			gaps = g
		}
	}
	return gaps, gaps <= jokers && len(anchors)+jokers <= MaxRunSize
}
