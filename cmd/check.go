package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/hand"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [cards...]",
	Short: "Check a meld, a hand or a declaration",
	Long: `Check classifies cards written in short notation (AS, 10h, Qd, 7♣, JK for a
joker, optional @n for the source deck).

  3 to 12 cards   classify them as a pure run, run with joker or set
  13 cards        report whether the hand can be declared, and how
  14 cards        find the discard that leaves a winning hand

With --melds the argument is a declared arrangement, groups separated by |,
and every group is validated.

Examples:
  rummy check AS 2S 3S
  rummy check --wildcard 7H 5D 6D 7C
  rummy check --melds "AS 2S 3S | 4H 5H JK | 9D 9C 9S | KD KC KH KS"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := validatorFromFlags(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if melds, _ := cmd.Flags().GetString("melds"); melds != "" {
			return checkMelds(cmd, v, melds)
		}

		cards, err := card.ParseList(strings.Join(args, " "))
		if err != nil {
			return err
		}
		engine := hand.New(v)
		d := v.Jokers

		switch n := len(cards); {
		case n >= 3 && n < hand.Size:
			kind, ok := v.Classify(cards)
			if !ok {
				fmt.Fprintf(out, "❌ %s is not a meld: %s\n", cardsString(cards, d), v.Explain(cards))
				return fmt.Errorf("not a meld")
			}
			m, _ := v.Meld(cards)
			if m.Tanala {
				fmt.Fprintf(out, "✅ %s is a tanala\n", cardsString(cards, d))
				return nil
			}
			fmt.Fprintf(out, "✅ %s is a %s\n", cardsString(cards, d), kind)
		case n == hand.Size:
			dec, ok := engine.Decompose(cards)
			if !ok {
				fmt.Fprintf(out, "❌ Hand does not win. Penalty if caught: %d points\n", engine.Penalty(cards))
				return fmt.Errorf("not a winning hand")
			}
			fmt.Fprintln(out, "✅ Winning hand:")
			for _, m := range dec.Melds {
				fmt.Fprintln(out, "   "+meldString(m, d))
			}
		case n == hand.Size+1:
			wins := engine.WinningDiscards(cards)
			if len(wins) == 0 {
				fmt.Fprintln(out, "❌ No discard leaves a winning hand")
				return fmt.Errorf("no winning discard")
			}
			fmt.Fprintf(out, "✅ Discard %s to declare:\n", cardString(wins[0].Card, d))
			for _, m := range wins[0].Decomposition.Melds {
				fmt.Fprintln(out, "   "+meldString(m, d))
			}
			if len(wins) > 1 {
				alts := make([]card.Card, 0, len(wins)-1)
				for _, w := range wins[1:] {
					alts = append(alts, w.Card)
				}
				fmt.Fprintln(out, label.Sprint("Also wins: ")+cardsString(alts, d))
			}
		default:
			return fmt.Errorf("need 3 to %d cards, got %d", hand.Size+1, n)
		}
		return nil
	},
}

func checkMelds(cmd *cobra.Command, v *validator.Validator, arrangement string) error {
	var sizes []int
	for i, g := range strings.Split(arrangement, "|") {
		cards, err := card.ParseList(g)
		if err != nil {
			return fmt.Errorf("meld %d: %w", i+1, err)
		}
		sizes = append(sizes, len(cards))
	}
	// Parse once more as a whole so a face repeated across melds is read
	// as a card from the next deck.
	all, err := card.ParseList(strings.ReplaceAll(arrangement, "|", " "))
	if err != nil {
		return err
	}
	groups := make([][]card.Card, 0, len(sizes))
	for _, n := range sizes {
		groups = append(groups, all[:n])
		all = all[n:]
	}
	results := v.Validate(groups)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Validation Results:")
	fmt.Fprintln(out, "-------------------")

	if results.OK() {
		fmt.Fprintln(out, "✅ Declaration is valid.")
		for _, m := range results.Melds {
			fmt.Fprintln(out, "   "+meldString(m, v.Jokers))
		}
	} else {
		fmt.Fprintf(out, "❌ Declaration has %d validation errors:\n", len(results.Errors))
		for i, err := range results.Errors {
			fmt.Fprintf(out, "%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Fprintf(out, "%d. %s\n", i+1, warn)
		}
	}

	if !results.OK() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// validatorFromFlags builds the meld validator from --wildcard and
// --convention, falling back to the config.
func validatorFromFlags(cmd *cobra.Command) (*validator.Validator, error) {
	conv := cfg.Convention()
	if s, _ := cmd.Flags().GetString("convention"); s != "" {
		c, err := joker.ParseConvention(s)
		if err != nil {
			return nil, err
		}
		conv = c
	}

	d := joker.None
	if s, _ := cmd.Flags().GetString("wildcard"); s != "" {
		w, err := card.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("--wildcard: %w", err)
		}
		if w.Joker {
			return nil, fmt.Errorf("--wildcard must be a natural card")
		}
		d = joker.FromWildcard(w, conv)
	}
	return validator.New(d, cfg.ValidatorRules()), nil
}

func addRulesFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("wildcard", "w", "", "Turned-up wildcard that decides the jokers, e.g. 7H")
	cmd.Flags().String("convention", "", "Joker convention: alternate-one-up, wild-rank or both")
}

func init() {
	addRulesFlags(checkCmd)
	checkCmd.Flags().String("melds", "", "Validate a declared arrangement, groups separated by |")
}
