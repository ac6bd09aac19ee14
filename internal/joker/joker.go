// Package joker decides which cards act as wild for a game.
package joker

import (
	"fmt"
	"strings"

	"github.com/arcanaland/rummy/internal/card"
)

// Convention selects how jokers are derived from the wildcard.
type Convention int

const (
	// AlternateOneUp makes the wildcard rank in the two suits of the other
	// colour wild, plus one rank up in the wildcard's own suit.
	AlternateOneUp Convention = iota
	// WildRank makes every card of the wildcard's rank wild.
	WildRank
	// Both combines the two.
	Both
)

var conventionNames = map[Convention]string{
	AlternateOneUp: "alternate-one-up",
	WildRank:       "wild-rank",
	Both:           "both",
}

func (c Convention) String() string {
	if n, ok := conventionNames[c]; ok {
		return n
	}
	return fmt.Sprintf("convention(%d)", int(c))
}

// ParseConvention accepts the names produced by Convention.String.
func ParseConvention(s string) (Convention, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for c, n := range conventionNames {
		if n == want {
			return c, nil
		}
	}
	return AlternateOneUp, fmt.Errorf("unknown joker convention %q", s)
}

// Source records why a signature is wild.
type Source int

const (
	AlternateColor Source = iota + 1
	OneUp
)

// Signature is a suit and rank pair that is wild in every deck.
type Signature struct {
	Suit   card.Suit
	Rank   card.Rank
	Source Source
}

// Designation is the fixed joker set of one game. The zero value makes
// only synthetic jokers wild.
type Designation struct {
	Rank       card.Rank
	HasRank    bool
	Signatures []Signature
	// Wildcard is the face turned up to choose the jokers. It is kept for
	// display and for the bot, which never picks it up when it is not wild.
	Wildcard *card.Card
}

// None is the designation with no natural jokers.
var None = Designation{}

// FromWildcard derives the designation for a game whose turned-up card is w.
// An unknown wildcard yields None.
func FromWildcard(w card.Card, conv Convention) Designation {
	if !w.Natural() {
		return None
	}
	wc := w
	d := Designation{Wildcard: &wc}
	if conv == WildRank || conv == Both {
		d.Rank = w.Rank
		d.HasRank = true
	}
	if conv == AlternateOneUp || conv == Both {
		for _, s := range card.Suits {
			if s.Red() != w.Suit.Red() {
				d.Signatures = append(d.Signatures, Signature{Suit: s, Rank: w.Rank, Source: AlternateColor})
			}
		}
		d.Signatures = append(d.Signatures, Signature{Suit: w.Suit, Rank: w.Rank.Next(), Source: OneUp})
	}
	return d
}

// IsJoker reports whether c is wild under d.
func IsJoker(c card.Card, d Designation) bool {
	return d.IsJoker(c)
}

// IsJoker reports whether c is wild under d.
func (d Designation) IsJoker(c card.Card) bool {
	if c.Joker {
		return true
	}
	if !c.Natural() {
		return false
	}
	if d.HasRank && c.Rank == d.Rank {
		return true
	}
	_, ok := d.signature(c)
	return ok
}

func (d Designation) signature(c card.Card) (Signature, bool) {
	for _, s := range d.Signatures {
		if s.Suit == c.Suit && s.Rank == c.Rank {
			return s, true
		}
	}
	return Signature{}, false
}

// IsWildcardFace reports whether c shows the turned-up wildcard's face.
func (d Designation) IsWildcardFace(c card.Card) bool {
	return d.Wildcard != nil && c.SameFace(*d.Wildcard)
}

// Points is the penalty contribution of a joker held at the end of a
// round. Alternate colour jokers count -10, one-up jokers -20, rank and
// synthetic jokers 0. ok is false for cards that are not jokers.
func (d Designation) Points(c card.Card) (points int, ok bool) {
	if !d.IsJoker(c) {
		return 0, false
	}
	if c.Joker {
		return 0, true
	}
	if s, found := d.signature(c); found {
		switch s.Source {
		case AlternateColor:
			return -10, true
		case OneUp:
			return -20, true
		}
	}
	return 0, true
}

// Describe lists the wild faces in short notation.
func (d Designation) Describe() string {
	var parts []string
	if d.HasRank {
		parts = append(parts, "all "+d.Rank.Display()+"s")
	}
	for _, s := range d.Signatures {
		parts = append(parts, card.Of(s.Suit, s.Rank, 0).String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
