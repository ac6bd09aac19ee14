package hand

import (
	"math/bits"

	"github.com/arcanaland/rummy/internal/card"
)

// MaxPenalty caps the points a single losing hand can cost.
const MaxPenalty = 80

// CardPoints is the penalty value of one card: 10 for aces, tens and
// court cards, face value otherwise, the designation's value for jokers
// and 0 for cards that are not real.
func (e *Engine) CardPoints(c card.Card) int {
	if p, ok := e.v.Jokers.Points(c); ok {
		return p
	}
	if !c.Natural() {
		return 0
	}
	switch c.Rank {
	case card.Ace, card.Ten, card.Jack, card.Queen, card.King:
		return 10
	}
	return c.Value()
}

// Points sums the penalty value of cards.
func (e *Engine) Points(cards []card.Card) int {
	total := 0
	for _, c := range cards {
		total += e.CardPoints(c)
	}
	return total
}

// Penalty is what a losing hand costs at the end of a round. Cards that
// can be laid in melds are free, but only when the melds include a pure
// run; otherwise every card counts. The result is clamped to
// 0..MaxPenalty.
func (e *Engine) Penalty(cards []card.Card) int {
	if len(cards) == 0 {
		return 0
	}
	if len(cards) > 16 || card.HasDuplicateIDs(cards) {
		return MaxPenalty
	}

	points := make([]int, len(cards))
	for i, c := range cards {
		points[i] = e.CardPoints(c)
	}
	d := &deadwood{
		byCard: e.candidates(cards),
		points: points,
		memo:   make(map[uint32]int),
	}
	all := uint16(1<<len(cards) - 1)
	best := d.least(all, false)
	if full := e.Points(cards); full < best {
		best = full
	}
	return max(0, min(best, MaxPenalty))
}

type deadwood struct {
	byCard [][]candidate
	points []int
	memo   map[uint32]int
}

const unreachable = 1 << 20

// least returns the lowest total of unmelded points over the remaining
// positions given whether a pure run has been laid. Without a pure run
// the melds do not count.
func (d *deadwood) least(remaining uint16, pure bool) int {
	if remaining == 0 {
		if pure {
			return 0
		}
		return unreachable
	}
	key := uint32(remaining)
	if pure {
		key |= 1 << 16
	}
	if v, ok := d.memo[key]; ok {
		return v
	}

	low := bits.TrailingZeros16(remaining)
	best := d.points[low] + d.least(remaining&^(1<<low), pure)
	for _, c := range d.byCard[low] {
		if c.mask&^remaining != 0 {
			continue
		}
		if v := d.least(remaining&^c.mask, pure || c.meld.Pure); v < best {
			best = v
		}
	}
	d.memo[key] = best
	return best
}
