// Package bot chooses draws, discards and declarations for computer
// players.
package bot

import (
	"cmp"
	"slices"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/hand"
)

// Source is where a draw comes from.
type Source int

const (
	SourceNone Source = iota
	SourceDeck
	SourceDiscard
)

func (s Source) String() string {
	switch s {
	case SourceDeck:
		return "deck"
	case SourceDiscard:
		return "discard"
	default:
		return "none"
	}
}

// Memory is what a bot remembers between turns.
type Memory struct {
	// LastTaken is the id of the card just picked from the discard pile.
	LastTaken string
	// RecentDiscards holds the ids of the bot's own latest discards,
	// oldest first.
	RecentDiscards []string
	// OpponentTakes are cards other players recently picked from the
	// discard pile, oldest first.
	OpponentTakes []card.Card
}

func (m Memory) discardedRecently(id string) bool {
	return slices.Contains(m.RecentDiscards, id)
}

// DrawDecision is the outcome of the draw step.
type DrawDecision struct {
	Source     Source
	Reason     string
	Usefulness float64
	// Exhausted is set when neither pile has a card to offer.
	Exhausted bool
}

// DiscardDecision is the outcome of the discard step.
type DiscardDecision struct {
	Card    card.Card
	Declare bool
	// Decomposition is set when Declare is true.
	Decomposition hand.Decomposition
	Reason        string
}

// ScoredCard is a card with its keep score and the contribution of each
// rule, in rule order.
type ScoredCard struct {
	Card  card.Card
	Score float64
	Parts []RuleScore
}

type RuleScore struct {
	Rule  string
	Score float64
}

// Engine makes decisions from a snapshot of the game. It keeps no state:
// the same hand, piles and memory always give the same decision.
type Engine struct {
	hand   *hand.Engine
	tuning Tuning
	rules  []Rule
}

// NewEngine builds an engine with the default rule table.
func NewEngine(h *hand.Engine, t Tuning) *Engine {
	return &Engine{hand: h, tuning: t, rules: DefaultRules()}
}

// WithRules returns a copy of e scoring with rules instead.
func (e *Engine) WithRules(rules ...Rule) *Engine {
	c := *e
	c.rules = rules
	return &c
}

func (e *Engine) Tuning() Tuning { return e.tuning }

func (e *Engine) Hand() *hand.Engine { return e.hand }

// Score evaluates c against the other cards held.
func (e *Engine) Score(c card.Card, others []card.Card, m Memory) ScoredCard {
	f := Extract(e.hand, c, others, m.OpponentTakes)
	sc := ScoredCard{Card: c, Parts: make([]RuleScore, len(e.rules))}
	for i, r := range e.rules {
		s := r.Score(f, e.tuning)
		sc.Parts[i] = RuleScore{Rule: r.Name(), Score: s}
		sc.Score += s
	}
	return sc
}

// ScoreHand scores every card of cards against the rest, in hand order.
func (e *Engine) ScoreHand(cards []card.Card, m Memory) []ScoredCard {
	out := make([]ScoredCard, len(cards))
	for i, c := range cards {
		out[i] = e.Score(c, card.Remove(cards, c.ID), m)
	}
	return out
}

// ChooseDraw picks a pile. top is the discard pile's top card when hasTop
// is set; drawLeft is the number of cards left in the draw pile.
func (e *Engine) ChooseDraw(cards []card.Card, top card.Card, hasTop bool, drawLeft int, m Memory) DrawDecision {
	jokers := e.hand.Validator().Jokers
	switch {
	case !hasTop && drawLeft <= 0:
		return DrawDecision{Source: SourceNone, Exhausted: true, Reason: "both piles are empty"}
	case !hasTop:
		return DrawDecision{Source: SourceDeck, Reason: "discard pile is empty"}
	case drawLeft <= 0:
		return DrawDecision{Source: SourceDiscard, Reason: "draw pile is empty"}
	case m.discardedRecently(top.ID):
		return DrawDecision{Source: SourceDeck, Reason: "own recent discard"}
	case jokers.IsJoker(top):
		return DrawDecision{Source: SourceDiscard, Usefulness: e.tuning.JokerWeight, Reason: "joker"}
	case jokers.IsWildcardFace(top):
		return DrawDecision{Source: SourceDeck, Reason: "wildcard face is not wild"}
	}

	if len(cards) == hand.Size {
		with := append(slices.Clone(cards), top)
		for _, w := range e.hand.WinningDiscards(with) {
			if _, ok := e.substitute(with, w.Card, top.ID); ok {
				return DrawDecision{Source: SourceDiscard, Usefulness: e.tuning.CompletionWeight, Reason: "completes the hand"}
			}
		}
	}

	useful := e.Score(top, cards, m).Score
	if useful >= e.tuning.TakeThreshold {
		return DrawDecision{Source: SourceDiscard, Usefulness: useful, Reason: "useful"}
	}
	return DrawDecision{Source: SourceDeck, Usefulness: useful, Reason: "not useful enough"}
}

// substitute returns c, or another held card showing the same face, as
// long as it is not the card with id banned.
func (e *Engine) substitute(cards []card.Card, c card.Card, banned string) (card.Card, bool) {
	if c.ID != banned {
		return c, true
	}
	jokers := e.hand.Validator().Jokers
	for _, o := range cards {
		if o.ID != banned && o.SameFace(c) && jokers.IsJoker(o) == jokers.IsJoker(c) {
			return o, true
		}
	}
	return card.Card{}, false
}

// ChooseDiscard picks the card to lay down from a hand that has just
// drawn. A winning discard is always preferred and declares.
func (e *Engine) ChooseDiscard(cards []card.Card, m Memory) DiscardDecision {
	if len(cards) == 0 {
		return DiscardDecision{Reason: "empty hand"}
	}

	for _, w := range e.hand.WinningDiscards(cards) {
		if c, ok := e.substitute(cards, w.Card, m.LastTaken); ok {
			return DiscardDecision{Card: c, Declare: true, Decomposition: w.Decomposition, Reason: "declare"}
		}
	}

	jokers := e.hand.Validator().Jokers
	eligible := make([]ScoredCard, 0, len(cards))
	for _, sc := range e.ScoreHand(cards, m) {
		if sc.Card.ID != m.LastTaken && !jokers.IsJoker(sc.Card) {
			eligible = append(eligible, sc)
		}
	}
	if len(eligible) == 0 {
		for _, sc := range e.ScoreHand(cards, m) {
			if sc.Card.ID != m.LastTaken {
				eligible = append(eligible, sc)
			}
		}
	}
	if len(eligible) == 0 {
		lowest := slices.MinFunc(cards, func(a, b card.Card) int {
			if c := cmp.Compare(a.Value(), b.Value()); c != 0 {
				return c
			}
			return card.Compare(a, b)
		})
		return DiscardDecision{Card: lowest, Reason: "no other choice"}
	}

	best := slices.MinFunc(eligible, func(a, b ScoredCard) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Card.Value(), b.Card.Value()); c != 0 {
			return c
		}
		return card.Compare(a.Card, b.Card)
	})
	return DiscardDecision{Card: best.Card, Reason: "lowest keep score"}
}

// View is a position to decide from: the cards held, the discard pile's
// top card and the draw pile's size.
type View struct {
	Hand     []card.Card
	Top      card.Card
	HasTop   bool
	DrawLeft int
	Memory   Memory
}

// Decision answers a whole turn as far as it can be seen from a view. A
// 14-card hand skips straight to the discard. When the bot would draw
// blind from the deck the discard is unknown and Discard is nil.
type Decision struct {
	Action        Source
	Draw          DrawDecision
	Discard       *card.Card
	CanDeclare    bool
	Decomposition *hand.Decomposition
	Exhausted     bool
	Reason        string
}

// Decide runs the draw and discard steps against a view.
func (e *Engine) Decide(v View) Decision {
	cards := v.Hand
	m := v.Memory
	var d Decision

	if len(cards) != hand.Size+1 {
		d.Draw = e.ChooseDraw(cards, v.Top, v.HasTop, v.DrawLeft, m)
		d.Action = d.Draw.Source
		d.Exhausted = d.Draw.Exhausted
		d.Reason = d.Draw.Reason
		if d.Action != SourceDiscard {
			return d
		}
		cards = append(slices.Clone(cards), v.Top)
		m.LastTaken = v.Top.ID
	}

	dd := e.ChooseDiscard(cards, m)
	d.Discard = &dd.Card
	d.CanDeclare = dd.Declare
	if dd.Declare {
		dec := dd.Decomposition
		d.Decomposition = &dec
	}
	if d.Reason == "" {
		d.Reason = dd.Reason
	}
	return d
}
