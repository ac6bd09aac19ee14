package bot

import (
	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/hand"
	"github.com/arcanaland/rummy/internal/validator"
)

// Features describe how one card relates to the rest of a hand.
type Features struct {
	Card  card.Card
	Joker bool
	// Points is the penalty the card costs if still held at round end.
	Points int

	// RunLength is the longest block of consecutive same-suit naturals the
	// card belongs to, counting the card itself.
	RunLength int
	// SetMates counts other suits holding the same rank.
	SetMates int
	// Twins counts identical faces from other decks.
	Twins int
	// GapFill counts same-suit cards two ranks away with the rank between
	// them missing.
	GapFill int
	// Neighbours counts same-suit cards one or two ranks away.
	Neighbours int
	// Jokers held besides the card.
	Jokers int
	// Threat grows when opponents recently took cards close to this one.
	Threat float64
	// TanalaAllowed mirrors the house rule so rules can value twins.
	TanalaAllowed bool
}

// Extract computes the features of c against others, which must not
// contain c. recentTakes are cards opponents picked from the discard pile.
func Extract(h *hand.Engine, c card.Card, others []card.Card, recentTakes []card.Card) Features {
	v := h.Validator()
	f := Features{
		Card:          c,
		Joker:         v.IsJoker(c),
		Points:        h.CardPoints(c),
		RunLength:     1,
		TanalaAllowed: v.Rules.AllowTanala,
	}

	naturals := make([]card.Card, 0, len(others))
	for _, o := range others {
		if v.IsJoker(o) {
			f.Jokers++
		} else if o.Natural() {
			naturals = append(naturals, o)
		}
	}
	if f.Joker || !c.Natural() {
		return f
	}

	held := make(map[int]bool)
	suits := make(map[card.Suit]bool)
	for _, o := range naturals {
		if o.Suit == c.Suit {
			if o.Rank == c.Rank {
				f.Twins++
				continue
			}
			for _, val := range values(o) {
				held[val] = true
			}
		} else if o.Rank == c.Rank && !suits[o.Suit] {
			suits[o.Suit] = true
			f.SetMates++
		}
	}

	for _, val := range values(c) {
		run := 1
		for up := val + 1; held[up]; up++ {
			run++
		}
		for down := val - 1; held[down]; down-- {
			run++
		}
		f.RunLength = max(f.RunLength, run)
	}

	near := make(map[int]bool)
	for _, val := range values(c) {
		for _, d := range []int{-2, -1, 1, 2} {
			if held[val+d] {
				near[val+d] = true
			}
		}
		if held[val+2] && !held[val+1] {
			f.GapFill++
		}
		if held[val-2] && !held[val-1] {
			f.GapFill++
		}
	}
	f.Neighbours = len(near)

	for _, t := range recentTakes {
		if !t.Natural() {
			continue
		}
		switch {
		case t.Rank == c.Rank:
			f.Threat += 1
		case t.Suit == c.Suit && rankDistance(t, c) <= 2:
			f.Threat += 0.5
		}
	}
	return f
}

// values returns the run positions a card can take: aces sit at both 1
// and 14.
func values(c card.Card) []int {
	if c.Rank == card.Ace {
		return []int{1, 14}
	}
	return []int{c.Value()}
}

func rankDistance(a, b card.Card) int {
	best := validator.MaxRunSize + 1
	for _, x := range values(a) {
		for _, y := range values(b) {
			d := x - y
			if d < 0 {
				d = -d
			}
			best = min(best, d)
		}
	}
	return best
}
