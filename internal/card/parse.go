package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrBadCard is returned when short card notation cannot be parsed.
var ErrBadCard = errors.New("invalid card")

// Parse reads short notation such as "AS", "10h", "Qd", "7♣" or "JK".
// An optional "@n" suffix selects the source deck.
func Parse(s string) (Card, error) {
	text := strings.TrimSpace(s)
	deckIndex := 0
	if at := strings.LastIndex(text, "@"); at >= 0 {
		n, err := strconv.Atoi(text[at+1:])
		if err != nil || n < 0 {
			return Card{}, fmt.Errorf("%w: bad deck index in %q", ErrBadCard, s)
		}
		deckIndex = n
		text = text[:at]
	}

	switch strings.ToUpper(text) {
	case "JK", "JOKER", "★":
		return NewJoker(deckIndex), nil
	}

	if utf8.RuneCountInString(text) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	last, size := utf8.DecodeLastRuneInString(text)
	suit := ParseSuit(string(unicode.ToLower(last)))
	rank := ParseRank(text[:len(text)-size])
	if !suit.Known() || !rank.Known() {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	return Of(suit, rank, deckIndex), nil
}

// ParseList parses a whitespace or comma separated list of cards. Repeated
// faces without an explicit deck suffix are assigned increasing deck
// indexes so "7S 7S 7S" describes three physical cards.
func ParseList(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	cards := make([]Card, 0, len(fields))
	used := make(map[string]bool, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		if !strings.Contains(f, "@") {
			for used[c.ID] {
				if c.Joker {
					c = NewJoker(c.DeckIndex + 1)
				} else {
					c = Of(c.Suit, c.Rank, c.DeckIndex+1)
				}
			}
		}
		if used[c.ID] {
			return nil, fmt.Errorf("%w: duplicate card %q", ErrBadCard, f)
		}
		used[c.ID] = true
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseList is ParseList for literals in tests and examples.
func MustParseList(s string) []Card {
	cards, err := ParseList(s)
	if err != nil {
		panic(err)
	}
	return cards
}
