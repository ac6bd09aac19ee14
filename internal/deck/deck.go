package deck

import (
	"math/rand/v2"

	"github.com/arcanaland/rummy/internal/card"
)

const (
	// CardsPerDeck is the size of one standard deck without jokers.
	CardsPerDeck = 52
	// MaxDecks bounds how many decks New merges.
	MaxDecks = 1024
)

// New returns n standard decks merged and shuffled. Every card is tagged
// with the index of the deck it came from so ids stay unique. n is
// clamped to MaxDecks. A nil src draws its seed from the runtime
// generator.
func New(n int, src rand.Source) []card.Card {
	if n <= 0 {
		return []card.Card{}
	}
	n = min(n, MaxDecks)

	cards := make([]card.Card, 0, CardsPerDeck*n)
	for d := 0; d < n; d++ {
		for _, s := range card.Suits {
			for _, r := range card.Ranks {
				cards = append(cards, card.Of(s, r, d))
			}
		}
	}
	Shuffle(cards, src)
	return cards
}

// Shuffle permutes cards in place with a Fisher-Yates shuffle.
func Shuffle(cards []card.Card, src rand.Source) {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Seeded returns a reproducible source for New and Shuffle.
func Seeded(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Dealt is the result of dealing hands from a deck. Hands holds only the
// seats that could be reached before the deck ran out; use Hand for any
// seat below Seats.
type Dealt struct {
	Seats    int
	Hands    [][]card.Card
	DrawPile []card.Card
}

// Hand returns seat i's cards, empty for seats the deck never reached.
func (d Dealt) Hand(i int) []card.Card {
	if i < 0 || i >= len(d.Hands) {
		return []card.Card{}
	}
	return d.Hands[i]
}

// Deal gives each player perPlayer cards from the front of cards, player 0
// first. When the deck runs short hands are filled as far as it reaches.
// The input slice is not modified.
func Deal(cards []card.Card, players, perPlayer int) Dealt {
	if players <= 0 {
		return Dealt{Hands: [][]card.Card{}, DrawPile: append([]card.Card{}, cards...)}
	}
	if perPlayer < 0 {
		perPlayer = 0
	}

	// Seats past this one receive nothing, however many were asked for.
	reach := len(cards)/max(perPlayer, 1) + 1
	hands := make([][]card.Card, min(players, reach))
	idx := 0
	for p := range hands {
		end := idx + min(perPlayer, len(cards)-idx)
		hands[p] = append([]card.Card{}, cards[idx:end]...)
		idx = end
	}
	return Dealt{Seats: players, Hands: hands, DrawPile: append([]card.Card{}, cards[idx:]...)}
}
