package card

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Suit of a playing card. The zero value is SuitUnknown.
type Suit int

const (
	SuitUnknown Suit = iota
	Spades
	Hearts
	Diamonds
	Clubs
)

// Suits lists the four real suits in canonical order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank of a playing card. Ace..King map to 1..13 so the rank doubles as
// the card's low value.
type Rank int

const (
	RankUnknown Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists the thirteen real ranks from ace to king.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card is a single physical card. Cards are values; nothing in this module
// mutates one after construction.
type Card struct {
	ID        string // Unique per physical card: <suit>-<rank>-<deck>
	Suit      Suit
	Rank      Rank
	DeckIndex int  // Source deck when several decks are merged
	Joker     bool // Synthetic joker with no natural suit or rank
}

// Name returns the long lowercase name used in card ids.
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// Symbol returns the display glyph of the suit.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter short form (S, H, D, C).
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Red reports whether the suit is hearts or diamonds.
func (s Suit) Red() bool { return s == Hearts || s == Diamonds }

// Known reports whether s is one of the four real suits.
func (s Suit) Known() bool { return s >= Spades && s <= Clubs }

func (s Suit) String() string { return s.Name() }

// Name returns the long lowercase name (ace, 2..10, jack, queen, king).
func (r Rank) Name() string {
	switch r {
	case Ace:
		return "ace"
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "unknown"
}

// Display returns the short display rank (A, 2..10, J, Q, K).
func (r Rank) Display() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Known reports whether r is ace..king.
func (r Rank) Known() bool { return r >= Ace && r <= King }

// Next returns the rank one above r, king wrapping to ace.
func (r Rank) Next() Rank {
	if !r.Known() {
		return RankUnknown
	}
	if r == King {
		return Ace
	}
	return r + 1
}

func (r Rank) String() string { return r.Name() }

// New builds a card from loosely typed suit and rank names. Input is
// never trusted: unrecognised values produce a card with unknown suit or
// rank and "?" display fields instead of failing.
func New(suit, rank string, deckIndex int) Card {
	if deckIndex < 0 {
		deckIndex = 0
	}
	s := ParseSuit(suit)
	r := ParseRank(rank)
	suitName, rankName := s.Name(), r.Name()
	if !s.Known() {
		suitName += "." + inputTag(suit)
	}
	if !r.Known() {
		rankName += "." + inputTag(rank)
	}
	return Card{
		ID:        fmt.Sprintf("%s-%s-%d", suitName, rankName, deckIndex),
		Suit:      s,
		Rank:      r,
		DeckIndex: deckIndex,
	}
}

// inputTag names raw input in an id without copying it: equal inputs get
// equal tags, different inputs practically never share one.
func inputTag(raw string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw)).String()[:8]
}

// Of builds a card from typed suit and rank.
func Of(s Suit, r Rank, deckIndex int) Card {
	if deckIndex < 0 {
		deckIndex = 0
	}
	if !s.Known() {
		s = SuitUnknown
	}
	if !r.Known() {
		r = RankUnknown
	}
	return Card{
		ID:        fmt.Sprintf("%s-%s-%d", s.Name(), r.Name(), deckIndex),
		Suit:      s,
		Rank:      r,
		DeckIndex: deckIndex,
	}
}

// NewJoker returns a synthetic joker, used for injected and test cards.
func NewJoker(n int) Card {
	if n < 0 {
		n = 0
	}
	return Card{ID: fmt.Sprintf("joker-%d", n), DeckIndex: n, Joker: true}
}

// ParseSuit maps a suit name, letter or symbol to a Suit.
func ParseSuit(s string) Suit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spades", "spade", "s", "♠":
		return Spades
	case "hearts", "heart", "h", "♥":
		return Hearts
	case "diamonds", "diamond", "d", "♦":
		return Diamonds
	case "clubs", "club", "c", "♣":
		return Clubs
	}
	return SuitUnknown
}

// ParseRank maps a rank name or display form to a Rank.
func ParseRank(s string) Rank {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ace", "a", "1":
		return Ace
	case "2", "two":
		return Two
	case "3", "three":
		return Three
	case "4", "four":
		return Four
	case "5", "five":
		return Five
	case "6", "six":
		return Six
	case "7", "seven":
		return Seven
	case "8", "eight":
		return Eight
	case "9", "nine":
		return Nine
	case "10", "ten", "t":
		return Ten
	case "jack", "j":
		return Jack
	case "queen", "q":
		return Queen
	case "king", "k":
		return King
	}
	return RankUnknown
}

// Value is the card's numeric rank, 1 (ace) to 13 (king); 0 when unknown.
func (c Card) Value() int {
	if c.Joker || !c.Rank.Known() {
		return 0
	}
	return int(c.Rank)
}

// DisplayRank returns the short rank shown on the card face.
func (c Card) DisplayRank() string {
	if c.Joker {
		return "JK"
	}
	return c.Rank.Display()
}

// DisplaySuit returns the suit glyph shown on the card face.
func (c Card) DisplaySuit() string {
	if c.Joker {
		return "★"
	}
	return c.Suit.Symbol()
}

// Natural reports whether the card has a real suit and rank.
func (c Card) Natural() bool {
	return !c.Joker && c.Suit.Known() && c.Rank.Known()
}

// SameFace reports whether two cards show the same suit and rank,
// regardless of which deck they came from.
func (c Card) SameFace(o Card) bool {
	return c.Joker == o.Joker && c.Suit == o.Suit && c.Rank == o.Rank
}

// String renders the card in the short notation accepted by Parse.
func (c Card) String() string {
	if c.Joker {
		return "JK"
	}
	return c.Rank.Display() + c.Suit.Letter()
}

// Compare orders cards by suit, rank, deck index and then id. It is the
// stable tie-break order used wherever a deterministic choice is needed.
func Compare(a, b Card) int {
	if a.Joker != b.Joker {
		if a.Joker {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Suit, b.Suit); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DeckIndex, b.DeckIndex); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Remove returns cards without the first card whose id matches id.
func Remove(cards []Card, id string) []Card {
	out := make([]Card, 0, len(cards))
	removed := false
	for _, c := range cards {
		if !removed && c.ID == id {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// HasDuplicateIDs reports whether any id appears twice.
func HasDuplicateIDs(cards []Card) bool {
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c.ID]; ok {
			return true
		}
		seen[c.ID] = struct{}{}
	}
	return false
}
