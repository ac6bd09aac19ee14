package sim

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates many games.
type Summary struct {
	Games        int
	Rounds       int
	Declared     int
	Voided       int
	TurnLimited  int
	Turns        int
	DeckDraws    int
	DiscardTakes int
	Reshuffles   int
	// WinsBySeat counts declarations per seat.
	WinsBySeat map[int]int
	// Discards counts discarded faces across all games.
	Discards map[string]int
	Results  []Result
}

// AverageTurns is the mean number of turns per round.
func (s Summary) AverageTurns() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Rounds)
}

// DiscardTakeRate is the share of draws taken from the discard pile.
func (s Summary) DiscardTakeRate() float64 {
	total := s.DeckDraws + s.DiscardTakes
	if total == 0 {
		return 0
	}
	return float64(s.DiscardTakes) / float64(total)
}

func (s *Summary) add(r Result) {
	s.Games++
	s.Results = append(s.Results, r)
	for _, rr := range r.Rounds {
		s.Rounds++
		s.Turns += rr.Turns
		s.DeckDraws += rr.DeckDraws
		s.DiscardTakes += rr.DiscardTakes
		s.Reshuffles += rr.Reshuffles
		switch rr.Outcome {
		case Declared:
			s.Declared++
			s.WinsBySeat[rr.Winner]++
		case Voided:
			s.Voided++
		default:
			s.TurnLimited++
		}
		for face, n := range rr.Discards {
			s.Discards[face] += n
		}
	}
}

// RunMany plays n independent games, at most cfg.Parallelism at a time.
// Game i is seeded from cfg.Seed so a run is reproducible; a zero seed
// picks one at random. The first error cancels the remaining games.
func RunMany(ctx context.Context, cfg Config, n int) (Summary, error) {
	sum := Summary{WinsBySeat: map[int]int{}, Discards: map[string]int{}}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}

	// Each game owns its slot, so results need no lock and keep seed order.
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := NewGame(cfg, seed+uint64(i)).Play(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	for _, r := range results {
		sum.add(r)
	}
	return sum, nil
}
