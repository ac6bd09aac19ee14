// Package hand searches a hand for a winning arrangement.
package hand

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/validator"
)

// Size is the number of cards in a hand at rest.
const Size = validator.HandSize

// Engine finds decompositions. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	v *validator.Validator
}

func New(v *validator.Validator) *Engine {
	return &Engine{v: v}
}

// Validator returns the meld validator the engine searches with.
func (e *Engine) Validator() *validator.Validator { return e.v }

// Decomposition is a set of disjoint melds covering a whole hand.
type Decomposition struct {
	Melds []validator.Meld
}

// Runs counts the melds that satisfy the run requirement.
func (d Decomposition) Runs() int {
	n := 0
	for _, m := range d.Melds {
		if m.Run() {
			n++
		}
	}
	return n
}

// PureRuns counts the melds that satisfy the pure run requirement.
func (d Decomposition) PureRuns() int {
	n := 0
	for _, m := range d.Melds {
		if m.Pure {
			n++
		}
	}
	return n
}

func (d Decomposition) String() string {
	parts := make([]string, len(d.Melds))
	for i, m := range d.Melds {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// candidate is a valid meld over a hand, identified by a bitmask of the
// hand positions it uses.
type candidate struct {
	mask uint16
	meld validator.Meld
}

func (c candidate) run() int {
	if c.meld.Run() {
		return 1
	}
	return 0
}

// candidates lists every distinct valid meld that can be drawn from cards.
// Runs come from one suit plus any jokers, sets from one rank plus any
// jokers. The result is indexed by hand position: byCard[i] holds the
// melds that contain position i.
func (e *Engine) candidates(cards []card.Card) (byCard [][]candidate) {
	var jokers []int
	suits := make(map[card.Suit][]int)
	ranks := make(map[card.Rank][]int)
	for i, c := range cards {
		switch {
		case e.v.IsJoker(c):
			jokers = append(jokers, i)
		case c.Natural():
			suits[c.Suit] = append(suits[c.Suit], i)
			ranks[c.Rank] = append(ranks[c.Rank], i)
		}
	}

	seen := make(map[uint16]bool)
	var all []candidate
	collect := func(pool []int, maxSize int) {
		pool = append(slices.Clone(pool), jokers...)
		subsets := uint32(1) << len(pool)
		for sub := uint32(1); sub < subsets; sub++ {
			size := bits.OnesCount32(sub)
			if size < 3 || size > maxSize {
				continue
			}
			var mask uint16
			group := make([]card.Card, 0, size)
			for j, pos := range pool {
				if sub&(1<<j) != 0 {
					mask |= 1 << pos
					group = append(group, cards[pos])
				}
			}
			if seen[mask] {
				continue
			}
			seen[mask] = true
			if m, ok := e.v.Meld(group); ok {
				all = append(all, candidate{mask: mask, meld: m})
			}
		}
	}
	for _, s := range card.Suits {
		if len(suits[s]) > 0 {
			collect(suits[s], validator.MaxRunSize)
		}
	}
	for _, r := range card.Ranks {
		if len(ranks[r]) > 0 {
			collect(ranks[r], validator.MaxSetSize)
		}
	}

	// Pure runs first, then longer melds, so the search reaches a win
	// quickly on typical hands. Ties keep mask order for determinism.
	slices.SortStableFunc(all, func(a, b candidate) int {
		if a.meld.Pure != b.meld.Pure {
			if a.meld.Pure {
				return -1
			}
			return 1
		}
		if la, lb := len(a.meld.Cards), len(b.meld.Cards); la != lb {
			return lb - la
		}
		return int(a.mask) - int(b.mask)
	})

	byCard = make([][]candidate, len(cards))
	for _, c := range all {
		for i := range cards {
			if c.mask&(1<<i) != 0 {
				byCard[i] = append(byCard[i], c)
			}
		}
	}
	return byCard
}

// IsWinning reports whether the 13 cards can be declared.
func (e *Engine) IsWinning(cards []card.Card) bool {
	_, ok := e.Decompose(cards)
	return ok
}

// Decompose arranges 13 cards into melds with at least two runs, one of
// them pure. ok is false when no such arrangement exists or the hand is
// malformed. The input is never modified.
func (e *Engine) Decompose(cards []card.Card) (Decomposition, bool) {
	if len(cards) != Size || card.HasDuplicateIDs(cards) {
		return Decomposition{}, false
	}
	s := &search{
		byCard: e.candidates(cards),
		failed: make(map[uint32]bool),
	}
	melds, ok := s.cover(1<<len(cards)-1, 0, false)
	if !ok {
		return Decomposition{}, false
	}
	return Decomposition{Melds: melds}, true
}

type search struct {
	byCard [][]candidate
	failed map[uint32]bool
}

// cover tries to partition the remaining positions, always placing the
// lowest uncovered card first. Runs seen are capped at 2 since more never
// changes the outcome.
func (s *search) cover(remaining uint16, runs int, pure bool) ([]validator.Meld, bool) {
	if remaining == 0 {
		return nil, runs >= 2 && pure
	}
	key := uint32(remaining) | uint32(runs)<<16
	if pure {
		key |= 1 << 18
	}
	if s.failed[key] {
		return nil, false
	}

	low := bits.TrailingZeros16(remaining)
	for _, c := range s.byCard[low] {
		if c.mask&^remaining != 0 {
			continue
		}
		rest, ok := s.cover(remaining&^c.mask, min(runs+c.run(), 2), pure || c.meld.Pure)
		if ok {
			return append([]validator.Meld{c.meld}, rest...), true
		}
	}
	s.failed[key] = true
	return nil, false
}
