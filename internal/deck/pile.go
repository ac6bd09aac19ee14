package deck

import "github.com/arcanaland/rummy/internal/card"

// Pile is an ordered stack of cards. The last element is the top.
// A Pile is not safe for concurrent use.
type Pile struct {
	cards []card.Card
}

// NewPile builds a pile whose first card drawn is cards[0].
func NewPile(cards []card.Card) *Pile {
	p := &Pile{cards: make([]card.Card, len(cards))}
	for i, c := range cards {
		p.cards[len(cards)-1-i] = c
	}
	return p
}

// Draw removes and returns the top card. ok is false when the pile is
// exhausted.
func (p *Pile) Draw() (c card.Card, ok bool) {
	if len(p.cards) == 0 {
		return card.Card{}, false
	}
	c = p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c, true
}

// Push places c on top.
func (p *Pile) Push(c card.Card) {
	p.cards = append(p.cards, c)
}

// Top returns the top card without removing it.
func (p *Pile) Top() (card.Card, bool) {
	if len(p.cards) == 0 {
		return card.Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

func (p *Pile) Len() int { return len(p.cards) }

// TakeAllButTop empties the pile except for its top card and returns the
// removed cards bottom first. Used to rebuild an exhausted draw pile.
func (p *Pile) TakeAllButTop() []card.Card {
	if len(p.cards) <= 1 {
		return nil
	}
	rest := append([]card.Card{}, p.cards[:len(p.cards)-1]...)
	p.cards = []card.Card{p.cards[len(p.cards)-1]}
	return rest
}

// Cards returns a copy of the pile, top card last.
func (p *Pile) Cards() []card.Card {
	return append([]card.Card{}, p.cards...)
}

// RemoveAt takes out the card at position i counted from the bottom.
func (p *Pile) RemoveAt(i int) (card.Card, bool) {
	if i < 0 || i >= len(p.cards) {
		return card.Card{}, false
	}
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c, true
}
