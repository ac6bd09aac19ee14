// Package sim plays bots against each other. It exists to exercise the
// engine end to end; nothing in the core depends on it.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/rummy/internal/bot"
	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/config"
	"github.com/arcanaland/rummy/internal/deck"
	"github.com/arcanaland/rummy/internal/hand"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
)

// ErrInvariant is returned when the game state loses, duplicates or
// invents a card, or a bot makes an illegal move.
var ErrInvariant = errors.New("game invariant violated")

// maxRounds bounds a game played to elimination.
const maxRounds = 50

// Config describes the table and how many games to play.
type Config struct {
	Decks             int
	Players           int
	CardsPerPlayer    int
	Convention        joker.Convention
	Rules             validator.Rules
	Tuning            bot.Tuning
	TuningSpread      float64 // per-seat jitter, see bot.Tuning.Perturb
	Reshuffle         bool
	MaxTurns          int
	EliminationPoints int
	Rounds            int // per game; zero plays until one player is left
	Seed              uint64
	Parallelism       int
	Logger            *logrus.Logger
}

// FromConfig builds a simulation config from the house rules.
func FromConfig(c *config.Config) Config {
	return Config{
		Decks:             c.Game.Decks,
		Players:           c.Game.Players,
		CardsPerPlayer:    c.Game.CardsPerPlayer,
		Convention:        c.Convention(),
		Rules:             c.ValidatorRules(),
		Tuning:            c.Tuning(),
		TuningSpread:      0.25,
		Reshuffle:         c.Game.ReshuffleDiscards,
		MaxTurns:          c.Game.MaxTurns,
		EliminationPoints: c.Game.EliminationPoints,
		Rounds:            1,
		Parallelism:       4,
	}
}

// Player is one seat at the table.
type Player struct {
	Name   string
	Hand   []card.Card
	Score  int
	Out    bool
	tuning bot.Tuning
	bot    *bot.Bot
}

// Outcome of a round.
type Outcome int

const (
	TurnLimit Outcome = iota
	Declared
	Voided
)

func (o Outcome) String() string {
	switch o {
	case Declared:
		return "declared"
	case Voided:
		return "voided"
	default:
		return "turn-limit"
	}
}

// RoundResult records what happened in one round.
type RoundResult struct {
	Outcome    Outcome
	Winner     int
	Wildcard   card.Card
	Turns      int
	Reshuffles int
	// DeckDraws and DiscardTakes count where cards were drawn from.
	DeckDraws    int
	DiscardTakes int
	Penalties    []int
	// Discards counts discarded faces by short notation.
	Discards map[string]int
}

// Game is the full state of one table. The caller owns it; nothing is
// shared between games.
type Game struct {
	ID      uuid.UUID
	cfg     Config
	rng     *rand.Rand
	Players []*Player
	log     *logrus.Entry

	// per round
	all     []card.Card
	draw    *deck.Pile
	discard *deck.Pile
	engine  *hand.Engine
	jokers  joker.Designation
}

// NewGame seats cfg.Players bots. Each seat gets its own tuning drawn from
// the game's seed.
func NewGame(cfg Config, seed uint64) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	g := &Game{
		ID:  uuid.New(),
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
	}
	g.log = logger.WithField("game", g.ID.String())
	for i := 0; i < cfg.Players; i++ {
		g.Players = append(g.Players, &Player{
			Name:   fmt.Sprintf("bot-%d", i+1),
			tuning: cfg.Tuning.Perturb(g.rng, cfg.TuningSpread),
		})
	}
	return g
}

func (g *Game) active() []int {
	var seats []int
	for i, p := range g.Players {
		if !p.Out {
			seats = append(seats, i)
		}
	}
	return seats
}

// deal prepares a round: a fresh shuffled deck, hands for every active
// seat, and the wildcard pulled from the middle of the draw pile to start
// the discard pile.
func (g *Game) deal(seats []int) (card.Card, error) {
	g.all = deck.New(g.cfg.Decks, deck.Seeded(g.rng.Uint64()))
	dealt := deck.Deal(g.all, len(seats), g.cfg.CardsPerPlayer)
	g.draw = deck.NewPile(dealt.DrawPile)
	g.discard = deck.NewPile(nil)

	wildcard, ok := g.draw.RemoveAt(g.draw.Len() / 2)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: no card left for the wildcard", ErrInvariant)
	}
	g.discard.Push(wildcard)
	g.jokers = joker.FromWildcard(wildcard, g.cfg.Convention)
	g.engine = hand.New(validator.New(g.jokers, g.cfg.Rules))

	for _, p := range g.Players {
		p.Hand = nil
	}
	for i, seat := range seats {
		p := g.Players[seat]
		p.Hand = dealt.Hand(i)
		p.bot = bot.New(p.Name, bot.NewEngine(g.engine, p.tuning))
	}
	return wildcard, g.checkInvariants()
}

// PlayRound plays one round starting from seat index first among the
// active players.
func (g *Game) PlayRound(ctx context.Context, first int) (RoundResult, error) {
	seats := g.active()
	res := RoundResult{Winner: -1, Discards: map[string]int{}}
	if len(seats) < 2 {
		return res, fmt.Errorf("need at least 2 active players, have %d", len(seats))
	}
	wildcard, err := g.deal(seats)
	if err != nil {
		return res, err
	}
	res.Wildcard = wildcard
	g.log.WithFields(logrus.Fields{
		"wildcard": wildcard.String(),
		"jokers":   g.jokers.Describe(),
		"players":  len(seats),
	}).Info("round started")

	for res.Turns < g.cfg.MaxTurns {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		seat := seats[(first+res.Turns)%len(seats)]
		done, err := g.playTurn(seat, res.Turns, &res)
		if err != nil {
			return res, err
		}
		res.Turns++
		if err := g.checkInvariants(); err != nil {
			return res, err
		}
		if done {
			break
		}
	}

	res.Penalties = make([]int, len(g.Players))
	if res.Outcome == Declared {
		for _, seat := range seats {
			if seat == res.Winner {
				continue
			}
			p := g.Players[seat]
			res.Penalties[seat] = g.engine.Penalty(p.Hand)
			p.Score += res.Penalties[seat]
		}
	}
	g.log.WithFields(logrus.Fields{
		"outcome":    res.Outcome.String(),
		"winner":     res.Winner,
		"turns":      res.Turns,
		"reshuffles": res.Reshuffles,
	}).Info("round finished")
	return res, nil
}

// playTurn runs one bot turn. done reports that the round is over.
func (g *Game) playTurn(seat, turn int, res *RoundResult) (done bool, err error) {
	p := g.Players[seat]
	log := g.log.WithFields(logrus.Fields{"player": p.Name, "turn": turn})

	if g.draw.Len() == 0 {
		if !g.cfg.Reshuffle {
			log.Info("draw pile exhausted, round void")
			res.Outcome = Voided
			return true, nil
		}
		if rest := g.discard.TakeAllButTop(); len(rest) > 0 {
			deck.Shuffle(rest, deck.Seeded(g.rng.Uint64()))
			g.draw = deck.NewPile(rest)
			res.Reshuffles++
			log.WithField("cards", len(rest)).Debug("discards reshuffled into draw pile")
		}
	}

	top, hasTop := g.discard.Top()
	dd, err := p.bot.Draw(p.Hand, top, hasTop, g.draw.Len())
	if err != nil {
		return false, err
	}

	var drawn card.Card
	switch dd.Source {
	case bot.SourceNone:
		log.Info("both piles exhausted, round void")
		res.Outcome = Voided
		return true, nil
	case bot.SourceDeck:
		c, ok := g.draw.Draw()
		if !ok {
			return false, fmt.Errorf("%w: %s drew from an empty pile", ErrInvariant, p.Name)
		}
		drawn = c
		res.DeckDraws++
	case bot.SourceDiscard:
		c, ok := g.discard.Draw()
		if !ok {
			return false, fmt.Errorf("%w: %s took from an empty discard pile", ErrInvariant, p.Name)
		}
		drawn = c
		res.DiscardTakes++
		for _, other := range g.Players {
			if other != p && other.bot != nil && !other.Out {
				other.bot.ObserveTake(c)
			}
		}
	}
	p.Hand = append(p.Hand, drawn)
	log.WithFields(logrus.Fields{"source": dd.Source.String(), "reason": dd.Reason}).Debug("drew")

	disc, err := p.bot.Discard(p.Hand)
	if err != nil {
		return false, err
	}
	idx := slices.IndexFunc(p.Hand, func(c card.Card) bool { return c.ID == disc.Card.ID })
	if idx < 0 {
		return false, fmt.Errorf("%w: %s discarded %s which it does not hold", ErrInvariant, p.Name, disc.Card.ID)
	}
	p.Hand = slices.Delete(p.Hand, idx, idx+1)
	g.discard.Push(disc.Card)
	res.Discards[disc.Card.String()]++
	log.WithFields(logrus.Fields{"card": disc.Card.String(), "reason": disc.Reason}).Debug("discarded")

	if disc.Declare {
		if !g.engine.IsWinning(p.Hand) {
			return false, fmt.Errorf("%w: %s declared a hand that does not win", ErrInvariant, p.Name)
		}
		res.Outcome = Declared
		res.Winner = seat
		log.WithField("melds", disc.Decomposition.String()).Info("declared")
		return true, nil
	}
	return false, nil
}

// checkInvariants verifies that hands and piles together hold exactly the
// cards dealt this round.
func (g *Game) checkInvariants() error {
	seen := make(map[string]bool, len(g.all))
	count := 0
	add := func(where string, cards []card.Card) error {
		for _, c := range cards {
			if seen[c.ID] {
				return fmt.Errorf("%w: card %s appears twice (%s)", ErrInvariant, c.ID, where)
			}
			seen[c.ID] = true
			count++
		}
		return nil
	}
	for _, p := range g.Players {
		if err := add(p.Name, p.Hand); err != nil {
			return err
		}
		if !p.Out && len(p.Hand) != g.cfg.CardsPerPlayer && len(p.Hand) != 0 {
			return fmt.Errorf("%w: %s holds %d cards", ErrInvariant, p.Name, len(p.Hand))
		}
	}
	if err := add("draw pile", g.draw.Cards()); err != nil {
		return err
	}
	if err := add("discard pile", g.discard.Cards()); err != nil {
		return err
	}
	if count != len(g.all) {
		return fmt.Errorf("%w: %d cards in play, %d dealt", ErrInvariant, count, len(g.all))
	}
	for _, c := range g.all {
		if !seen[c.ID] {
			return fmt.Errorf("%w: card %s went missing", ErrInvariant, c.ID)
		}
	}
	return nil
}

// Result is the outcome of a whole game.
type Result struct {
	ID     uuid.UUID
	Rounds []RoundResult
	Scores []int
	// Winner is the seat with the lowest score among those still in.
	Winner int
}

// Play runs rounds until cfg.Rounds are done or only one player has not
// been eliminated.
func (g *Game) Play(ctx context.Context) (Result, error) {
	res := Result{ID: g.ID, Winner: -1}
	limit := g.cfg.Rounds
	if limit <= 0 {
		limit = maxRounds
	}
	for round := 0; round < limit && len(g.active()) > 1; round++ {
		rr, err := g.PlayRound(ctx, round)
		if err != nil {
			return res, fmt.Errorf("game %s round %d: %w", g.ID, round+1, err)
		}
		res.Rounds = append(res.Rounds, rr)
		for _, p := range g.Players {
			if !p.Out && p.Score >= g.cfg.EliminationPoints {
				p.Out = true
				g.log.WithFields(logrus.Fields{"player": p.Name, "score": p.Score}).Info("eliminated")
			}
		}
	}

	best := -1
	for i, p := range g.Players {
		res.Scores = append(res.Scores, p.Score)
		if p.Out {
			continue
		}
		if best < 0 || p.Score < g.Players[best].Score {
			best = i
		}
	}
	res.Winner = best
	return res, nil
}
