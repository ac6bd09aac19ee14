package bot

import "math/rand/v2"

// Tuning holds the weights the scoring rules combine. Higher keep scores
// mean a card is worth holding.
type Tuning struct {
	// TakeThreshold is the keep score a discard-pile card needs before the
	// bot picks it up instead of drawing blind.
	TakeThreshold    float64
	CompletionWeight float64
	ExtensionWeight  float64
	JokerWeight      float64
	DefensiveWeight  float64
	IsolationPenalty float64
	FlexibilityBonus float64
	// Memory is how many of its own discards a bot refuses to take back.
	Memory int
}

// DefaultTuning balances building melds against shedding dead cards.
var DefaultTuning = Tuning{
	TakeThreshold:    4.5,
	CompletionWeight: 10.0,
	ExtensionWeight:  4.0,
	JokerWeight:      100.0,
	DefensiveWeight:  1.5,
	IsolationPenalty: 3.0,
	FlexibilityBonus: 1.0,
	Memory:           3,
}

// Perturb returns a copy of t with every weight scaled by a random factor
// in [1-spread, 1+spread]. Simulated tables use it so bots do not all play
// one fixed strategy.
func (t Tuning) Perturb(r *rand.Rand, spread float64) Tuning {
	if r == nil || spread <= 0 {
		return t
	}
	jitter := func(v float64) float64 {
		return v * (1 + spread*(2*r.Float64()-1))
	}
	t.TakeThreshold = jitter(t.TakeThreshold)
	t.CompletionWeight = jitter(t.CompletionWeight)
	t.ExtensionWeight = jitter(t.ExtensionWeight)
	t.DefensiveWeight = jitter(t.DefensiveWeight)
	t.IsolationPenalty = jitter(t.IsolationPenalty)
	t.FlexibilityBonus = jitter(t.FlexibilityBonus)
	return t
}
