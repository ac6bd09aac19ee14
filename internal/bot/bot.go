package bot

import (
	"errors"
	"fmt"

	"github.com/arcanaland/rummy/internal/card"
)

// ErrWrongPhase is returned when a bot is asked to act out of turn order.
var ErrWrongPhase = errors.New("wrong turn phase")

// Phase is a bot's position in its own turn.
type Phase int

const (
	AwaitingDraw Phase = iota
	AwaitingDiscard
	TurnComplete
)

func (p Phase) String() string {
	switch p {
	case AwaitingDraw:
		return "awaiting-draw"
	case AwaitingDiscard:
		return "awaiting-discard"
	case TurnComplete:
		return "turn-complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// opponentMemory bounds how many opponent pickups a bot tracks.
const opponentMemory = 6

// Bot is one computer player. It owns its memory and turn phase; the game
// state stays with the caller. A Bot is not safe for concurrent use.
type Bot struct {
	Name   string
	engine *Engine
	phase  Phase
	memory Memory
}

func New(name string, e *Engine) *Bot {
	return &Bot{Name: name, engine: e}
}

func (b *Bot) Phase() Phase { return b.phase }

// Memory returns a copy of what the bot remembers.
func (b *Bot) Memory() Memory {
	m := b.memory
	m.RecentDiscards = append([]string(nil), m.RecentDiscards...)
	m.OpponentTakes = append([]card.Card(nil), m.OpponentTakes...)
	return m
}

func (b *Bot) Engine() *Engine { return b.engine }

// Draw starts a turn and picks a pile. A discard pick is remembered so the
// same card is not thrown straight back. When both piles are empty the
// turn ends at once with Exhausted set.
func (b *Bot) Draw(cards []card.Card, top card.Card, hasTop bool, drawLeft int) (DrawDecision, error) {
	if b.phase == AwaitingDiscard {
		return DrawDecision{}, fmt.Errorf("%s: draw while %s: %w", b.Name, b.phase, ErrWrongPhase)
	}
	d := b.engine.ChooseDraw(cards, top, hasTop, drawLeft, b.memory)
	b.memory.LastTaken = ""
	switch d.Source {
	case SourceNone:
		b.phase = TurnComplete
		return d, nil
	case SourceDiscard:
		b.memory.LastTaken = top.ID
	}
	b.phase = AwaitingDiscard
	return d, nil
}

// Discard finishes the turn from the hand after drawing.
func (b *Bot) Discard(cards []card.Card) (DiscardDecision, error) {
	if b.phase != AwaitingDiscard {
		return DiscardDecision{}, fmt.Errorf("%s: discard while %s: %w", b.Name, b.phase, ErrWrongPhase)
	}
	d := b.engine.ChooseDiscard(cards, b.memory)
	b.remember(d.Card.ID)
	b.phase = TurnComplete
	return d, nil
}

func (b *Bot) remember(id string) {
	limit := b.engine.tuning.Memory
	if limit <= 0 {
		b.memory.RecentDiscards = nil
		return
	}
	b.memory.RecentDiscards = append(b.memory.RecentDiscards, id)
	if over := len(b.memory.RecentDiscards) - limit; over > 0 {
		b.memory.RecentDiscards = b.memory.RecentDiscards[over:]
	}
}

// ObserveTake records that another player picked c from the discard pile.
func (b *Bot) ObserveTake(c card.Card) {
	b.memory.OpponentTakes = append(b.memory.OpponentTakes, c)
	if over := len(b.memory.OpponentTakes) - opponentMemory; over > 0 {
		b.memory.OpponentTakes = b.memory.OpponentTakes[over:]
	}
}

// Reset clears memory and phase for a new round.
func (b *Bot) Reset() {
	b.phase = AwaitingDraw
	b.memory = Memory{}
}
