package validator

import (
	"fmt"
	"strings"

	"github.com/arcanaland/rummy/internal/card"
)

// HandSize is the number of cards a declaration must cover.
const HandSize = 13

// Results collects the problems found in a declared arrangement.
type Results struct {
	Errors   []string
	Warnings []string
	Melds    []Meld
}

// OK reports whether the arrangement is a valid declaration.
func (r Results) OK() bool { return len(r.Errors) == 0 }

// report accumulates findings for a single Validate call.
type report struct {
	v       *Validator
	melds   [][]card.Card
	Results Results
}

// Validate checks an arrangement a player lays down: each group must be a
// meld, no card may appear twice, and a full thirteen-card arrangement
// must hold two runs of which one is pure.
func (v *Validator) Validate(melds [][]card.Card) Results {
	r := &report{v: v, melds: melds}

	r.validateCards()
	r.validateMelds()
	r.validateDeclaration()

	return r.Results
}

func (r *report) errorf(format string, args ...any) {
	r.Results.Errors = append(r.Results.Errors, fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.Results.Warnings = append(r.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateCards checks that every card is real and used once
func (r *report) validateCards() {
	seen := make(map[string]int)
	for i, group := range r.melds {
		for _, c := range group {
			if !c.Natural() && !r.v.IsJoker(c) {
				r.errorf("meld %d: %q is not a playing card", i+1, c.ID)
				continue
			}
			if prev, ok := seen[c.ID]; ok {
				r.errorf("meld %d: card %s already used in meld %d", i+1, c, prev)
				continue
			}
			seen[c.ID] = i + 1
		}
	}
}

func (r *report) validateMelds() {
	for i, group := range r.melds {
		m, ok := r.v.Meld(group)
		if !ok {
			r.errorf("meld %d [%s]: %s", i+1, join(group), r.v.Explain(group))
			continue
		}
		r.Results.Melds = append(r.Results.Melds, m)

		jokers := 0
		for _, c := range group {
			if r.v.IsJoker(c) {
				jokers++
			}
		}
		if jokers > 0 && jokers*2 >= len(group) {
			r.warnf("meld %d [%s]: %d of %d cards are jokers", i+1, join(group), jokers, len(group))
		}
	}
}

// validateDeclaration applies the whole-hand requirements
func (r *report) validateDeclaration() {
	total := 0
	for _, group := range r.melds {
		total += len(group)
	}
	if total != HandSize {
		r.warnf("arrangement covers %d cards, a declaration needs %d", total, HandSize)
		return
	}

	runs, pure := 0, 0
	for _, m := range r.Results.Melds {
		if m.Run() {
			runs++
		}
		if m.Pure {
			pure++
		}
	}
	if runs < 2 {
		r.errorf("declaration needs at least 2 runs, found %d", runs)
	}
	if pure < 1 {
		r.errorf("declaration needs a pure run")
	}
}

// Explain describes why cards are not a meld. It returns an empty string
// for a valid meld.
func (v *Validator) Explain(cards []card.Card) string {
	if _, ok := v.Classify(cards); ok {
		return ""
	}
	if len(cards) < 3 {
		return fmt.Sprintf("needs at least 3 cards, has %d", len(cards))
	}
	if card.HasDuplicateIDs(cards) {
		return "uses the same card twice"
	}
	anchors, jokers, ok := v.split(cards)
	if !ok {
		return "contains a card that is not a playing card"
	}
	if len(anchors) == 0 {
		return "contains only jokers"
	}

	switch {
	case sameSuit(anchors):
		if len(cards) > MaxRunSize {
			return fmt.Sprintf("run is longer than %d cards", MaxRunSize)
		}
		gaps, _ := runGaps(anchors, len(jokers))
		if gaps < 0 {
			return "not a run: a rank repeats"
		}
		return fmt.Sprintf("not a run: %d missing ranks but only %d jokers", gaps, len(jokers))
	case sameRank(anchors):
		if len(cards) > MaxSetSize {
			return fmt.Sprintf("set has more than %d cards", MaxSetSize)
		}
		return "not a set: a suit repeats"
	}
	return "cards share neither a suit nor a rank"
}

func join(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
