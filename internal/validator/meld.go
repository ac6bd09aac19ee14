package validator

import (
	"strings"

	"github.com/arcanaland/rummy/internal/card"
)

// Kind of a valid meld.
type Kind int

const (
	Invalid Kind = iota
	PureRun
	ImpureRun
	Set
)

func (k Kind) String() string {
	switch k {
	case PureRun:
		return "pure run"
	case ImpureRun:
		return "run with joker"
	case Set:
		return "set"
	default:
		return "invalid"
	}
}

// Meld is a classified group of cards.
type Meld struct {
	Kind  Kind
	Cards []card.Card
	// Tanala marks a set of identical cards drawn from different decks.
	Tanala bool
	// Pure is true for pure runs and, when the rules allow it, tanalas.
	Pure bool
}

// Run reports whether m counts towards the run requirement of a declaration.
func (m Meld) Run() bool {
	return m.Kind == PureRun || m.Kind == ImpureRun || m.Pure
}

func (m Meld) String() string {
	parts := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		parts[i] = c.String()
	}
	label := m.Kind.String()
	if m.Tanala {
		label = "tanala"
	}
	return label + " [" + strings.Join(parts, " ") + "]"
}
