package bot

// Rule is one scoring heuristic. Scores from all rules are summed into a
// card's keep score.
type Rule interface {
	Name() string
	Score(f Features, t Tuning) float64
}

// DefaultRules is the scoring table every engine starts with.
func DefaultRules() []Rule {
	return []Rule{
		MeldCompletionRule{},
		MeldExtensionRule{},
		JokerPriorityRule{},
		DefensivePenaltyRule{},
		IsolationRule{},
		FlexibilityRule{},
	}
}

// MeldCompletionRule rewards cards that sit in a complete run or set, or
// would with one of the jokers already held.
type MeldCompletionRule struct{}

func (MeldCompletionRule) Name() string { return "meld-completion" }

func (MeldCompletionRule) Score(f Features, t Tuning) float64 {
	if f.Joker {
		return 0
	}
	switch {
	case f.RunLength >= 3, f.SetMates >= 2:
		return t.CompletionWeight
	case f.TanalaAllowed && f.Twins >= 2:
		return t.CompletionWeight
	case f.Jokers > 0 && (f.RunLength == 2 || f.SetMates == 1 || f.GapFill > 0):
		return t.CompletionWeight * 0.75
	}
	return 0
}

// MeldExtensionRule rewards partial melds one card short of complete.
type MeldExtensionRule struct{}

func (MeldExtensionRule) Name() string { return "meld-extension" }

func (MeldExtensionRule) Score(f Features, t Tuning) float64 {
	if f.Joker {
		return 0
	}
	score := 0.0
	if f.RunLength == 2 {
		score += t.ExtensionWeight
	}
	if f.SetMates == 1 {
		score += t.ExtensionWeight * 0.8
	}
	if f.GapFill > 0 {
		score += t.ExtensionWeight * 0.5
	}
	if f.TanalaAllowed && f.Twins == 1 {
		score += t.ExtensionWeight * 0.4
	}
	return score
}

// JokerPriorityRule keeps jokers above everything else.
type JokerPriorityRule struct{}

func (JokerPriorityRule) Name() string { return "joker-priority" }

func (JokerPriorityRule) Score(f Features, t Tuning) float64 {
	if f.Joker {
		return t.JokerWeight
	}
	return 0
}

// DefensivePenaltyRule makes cards opponents are collecting expensive to
// give away.
type DefensivePenaltyRule struct{}

func (DefensivePenaltyRule) Name() string { return "defensive-penalty" }

func (DefensivePenaltyRule) Score(f Features, t Tuning) float64 {
	if f.Joker {
		return 0
	}
	return t.DefensiveWeight * f.Threat
}

// IsolationRule pushes down cards with no partner, heavier ones most.
type IsolationRule struct{}

func (IsolationRule) Name() string { return "isolation" }

func (IsolationRule) Score(f Features, t Tuning) float64 {
	if f.Joker || f.Neighbours > 0 || f.SetMates > 0 || f.Twins > 0 {
		return 0
	}
	return -t.IsolationPenalty * (1 + float64(f.Points)/10)
}

// FlexibilityRule rewards cards that can join melds several ways.
type FlexibilityRule struct{}

func (FlexibilityRule) Name() string { return "flexibility" }

func (FlexibilityRule) Score(f Features, t Tuning) float64 {
	if f.Joker {
		return 0
	}
	return t.FlexibilityBonus * float64(f.Neighbours+f.SetMates)
}
