package hand

import (
	"cmp"
	"slices"

	"github.com/arcanaland/rummy/internal/card"
)

// WinningDiscard is a discard that leaves a declarable hand.
type WinningDiscard struct {
	Card          card.Card
	Decomposition Decomposition
}

// WinningDiscards returns every discard from 14 cards after which the
// remaining 13 win. Cards showing the same face are tried once, using
// the first of them in card order. Results prefer non-jokers, then lower
// value, then card order.
func (e *Engine) WinningDiscards(cards []card.Card) []WinningDiscard {
	if len(cards) != Size+1 || card.HasDuplicateIDs(cards) {
		return nil
	}

	order := slices.Clone(cards)
	slices.SortFunc(order, e.discardOrder)

	type face struct {
		joker bool
		synth bool
		suit  card.Suit
		rank  card.Rank
	}
	tried := make(map[face]bool)
	var out []WinningDiscard
	for _, c := range order {
		f := face{e.v.IsJoker(c), c.Joker, c.Suit, c.Rank}
		if tried[f] {
			continue
		}
		tried[f] = true
		if d, ok := e.Decompose(card.Remove(cards, c.ID)); ok {
			out = append(out, WinningDiscard{Card: c, Decomposition: d})
		}
	}
	return out
}

// BestDiscardForWin returns the preferred winning discard from 14 cards.
func (e *Engine) BestDiscardForWin(cards []card.Card) (card.Card, Decomposition, bool) {
	wins := e.WinningDiscards(cards)
	if len(wins) == 0 {
		return card.Card{}, Decomposition{}, false
	}
	return wins[0].Card, wins[0].Decomposition, true
}

func (e *Engine) discardOrder(a, b card.Card) int {
	ja, jb := e.v.IsJoker(a), e.v.IsJoker(b)
	if ja != jb {
		if ja {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Value(), b.Value()); c != 0 {
		return c
	}
	return card.Compare(a, b)
}
