package bot

import (
	"testing"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotPhaseOrder(t *testing.T) {
	b := New("bot-1", plainEngine())
	cards := card.MustParseList(handThirteen)
	assert.Equal(t, AwaitingDraw, b.Phase())

	_, err := b.Discard(cards)
	require.ErrorIs(t, err, ErrWrongPhase)

	d, err := b.Draw(cards, card.Card{}, false, 10)
	require.NoError(t, err)
	assert.Equal(t, SourceDeck, d.Source)
	assert.Equal(t, AwaitingDiscard, b.Phase())

	_, err = b.Draw(cards, card.Card{}, false, 10)
	require.ErrorIs(t, err, ErrWrongPhase)

	full := append(cards, one("8H"))
	dd, err := b.Discard(full)
	require.NoError(t, err)
	assert.Equal(t, TurnComplete, b.Phase())
	assert.Equal(t, []string{dd.Card.ID}, b.Memory().RecentDiscards)

	_, err = b.Draw(cards, card.Card{}, false, 10)
	assert.NoError(t, err)
}

func TestBotExhaustedEndsTurn(t *testing.T) {
	b := New("bot-1", plainEngine())
	d, err := b.Draw(card.MustParseList(handThirteen), card.Card{}, false, 0)
	require.NoError(t, err)
	assert.True(t, d.Exhausted)
	assert.Equal(t, TurnComplete, b.Phase())
}

func TestBotRemembersTakenCard(t *testing.T) {
	b := New("bot-1", plainEngine())
	cards := card.MustParseList("AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH 2D")
	top := one("7C")
	top = card.Of(top.Suit, top.Rank, 2)

	// Completes nothing, but the draw pile is empty so the bot must take it.
	d, err := b.Draw(cards, top, true, 0)
	require.NoError(t, err)
	require.Equal(t, SourceDiscard, d.Source)
	assert.Equal(t, top.ID, b.Memory().LastTaken)

	dd, err := b.Discard(append(cards, top))
	require.NoError(t, err)
	assert.NotEqual(t, top.ID, dd.Card.ID)
}

func TestBotDoesNotLoop(t *testing.T) {
	b := New("bot-1", plainEngine())
	cards := card.MustParseList(handThirteen)

	_, err := b.Draw(cards, card.Card{}, false, 10)
	require.NoError(t, err)
	dd, err := b.Discard(append(cards, one("8H")))
	require.NoError(t, err)

	rest := card.Remove(append(cards, one("8H")), dd.Card.ID)
	d, err := b.Draw(rest, dd.Card, true, 10)
	require.NoError(t, err)
	assert.Equal(t, SourceDeck, d.Source)
}

func TestBotMemoryBounded(t *testing.T) {
	b := New("bot-1", plainEngine())
	for i := 0; i < 5; i++ {
		b.remember(card.NewJoker(i).ID)
	}
	assert.Equal(t, []string{"joker-2", "joker-3", "joker-4"}, b.Memory().RecentDiscards)

	for i := 0; i < 10; i++ {
		b.ObserveTake(card.NewJoker(i))
	}
	assert.Len(t, b.Memory().OpponentTakes, opponentMemory)

	b.Reset()
	assert.Empty(t, b.Memory().RecentDiscards)
	assert.Equal(t, AwaitingDraw, b.Phase())
}
