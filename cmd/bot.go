package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/rummy/internal/bot"
	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/hand"
	"github.com/arcanaland/rummy/internal/joker"
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Ask the bot what it would play",
	Long: `Bot shows the decision the computer player makes for a position: which pile
it draws from, which card it discards and whether it declares.

Pass a 13-card hand with the discard pile's top card, or a 14-card hand that
has already drawn.

Examples:
  rummy bot --hand "AS 2S 3S 4H 5H 6H 9D 9C 9S KD KC KH 2D" --discard 7H
  rummy bot --hand "..." --discard 7H --wildcard 5C --explain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := validatorFromFlags(cmd)
		if err != nil {
			return err
		}
		engine := bot.NewEngine(hand.New(v), cfg.Tuning())
		d := v.Jokers

		handText, _ := cmd.Flags().GetString("hand")
		topText, _ := cmd.Flags().GetString("discard")
		drawLeft, _ := cmd.Flags().GetInt("draw-left")
		takenText, _ := cmd.Flags().GetString("taken")
		recentText, _ := cmd.Flags().GetString("recent")
		explain, _ := cmd.Flags().GetBool("explain")

		// Parse hand and top together so repeated faces get distinct decks.
		all, err := card.ParseList(handText + " " + topText)
		if err != nil {
			return err
		}
		view := bot.View{DrawLeft: drawLeft}
		if strings.TrimSpace(topText) != "" {
			if len(all) == 0 {
				return fmt.Errorf("--discard: no card given")
			}
			view.Top, view.HasTop = all[len(all)-1], true
			all = all[:len(all)-1]
		}
		view.Hand = all
		if n := len(view.Hand); n != hand.Size && n != hand.Size+1 {
			return fmt.Errorf("--hand needs %d or %d cards, got %d", hand.Size, hand.Size+1, n)
		}

		if takenText != "" {
			taken, err := card.Parse(takenText)
			if err != nil {
				return fmt.Errorf("--taken: %w", err)
			}
			// The card just picked up is the last copy of its face.
			for _, c := range slices.Backward(view.Hand) {
				if c.SameFace(taken) {
					view.Memory.LastTaken = c.ID
					break
				}
			}
			if view.Memory.LastTaken == "" {
				return fmt.Errorf("--taken %s is not in the hand", takenText)
			}
		}
		if recentText != "" {
			recent, err := card.ParseList(recentText)
			if err != nil {
				return fmt.Errorf("--recent: %w", err)
			}
			for _, c := range recent {
				id := c.ID
				if view.HasTop && c.SameFace(view.Top) {
					id = view.Top.ID
				}
				view.Memory.RecentDiscards = append(view.Memory.RecentDiscards, id)
			}
		}

		dec := engine.Decide(view)
		out := cmd.OutOrStdout()

		printWrapped(out, "Hand:    ", view.Hand, d)
		if view.HasTop {
			fmt.Fprintln(out, label.Sprint("Top:     ")+cardString(view.Top, d))
		}
		if len(view.Hand) == hand.Size {
			if dec.Exhausted {
				fmt.Fprintln(out, label.Sprint("Draw:    ")+"nothing, both piles are empty")
				return nil
			}
			fmt.Fprintf(out, "%s%s (%s, usefulness %.1f)\n", label.Sprint("Draw:    "), dec.Action, dec.Draw.Reason, dec.Draw.Usefulness)
		}

		held := view.Hand
		mem := view.Memory
		if dec.Action == bot.SourceDiscard {
			held = append(slices.Clone(held), view.Top)
			mem.LastTaken = view.Top.ID
		}
		if dec.Discard == nil {
			fmt.Fprintln(out, label.Sprint("Discard: ")+"decided after the blind draw")
		} else {
			fmt.Fprintln(out, label.Sprint("Discard: ")+cardString(*dec.Discard, d))
			if dec.CanDeclare {
				fmt.Fprintln(out, "✅ Declares with:")
				for _, m := range dec.Decomposition.Melds {
					fmt.Fprintln(out, "   "+meldString(m, d))
				}
			}
		}

		if explain {
			fmt.Fprintln(out)
			printScores(cmd, engine.ScoreHand(held, mem), d, mem.LastTaken)
		}
		return nil
	},
}

// printScores lists keep scores from most to least wanted with each
// rule's contribution.
func printScores(cmd *cobra.Command, scores []bot.ScoredCard, d joker.Designation, lastTaken string) {
	if len(scores) == 0 {
		return
	}
	slices.SortStableFunc(scores, func(a, b bot.ScoredCard) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return card.Compare(a.Card, b.Card)
	})
	lo, hi := scores[len(scores)-1].Score, scores[0].Score

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Keep scores:")
	for _, sc := range scores {
		name := sc.Card.DisplayRank() + sc.Card.DisplaySuit()
		if d.IsJoker(sc.Card) {
			name += "*"
		}
		var parts []string
		for _, p := range sc.Parts {
			if p.Score != 0 {
				parts = append(parts, fmt.Sprintf("%s %+.1f", p.Rule, p.Score))
			}
		}
		note := strings.Join(parts, ", ")
		if sc.Card.ID == lastTaken {
			note += " (just taken)"
		}
		score := ansiColorString(fmt.Sprintf("%7.1f", sc.Score), scoreColor(sc.Score, lo, hi))
		fmt.Fprintf(out, "  %-5s %s  %s\n", name, score, note)
	}
}

func init() {
	addRulesFlags(botCmd)
	botCmd.Flags().String("hand", "", "Cards held, 13 or 14")
	botCmd.Flags().StringP("discard", "d", "", "Top card of the discard pile")
	botCmd.Flags().Int("draw-left", 40, "Cards left in the draw pile")
	botCmd.Flags().String("taken", "", "Card just picked from the discard pile (14-card hands)")
	botCmd.Flags().String("recent", "", "The bot's own recent discards")
	botCmd.Flags().Bool("explain", false, "Show the keep score of every card")
	_ = botCmd.MarkFlagRequired("hand")
}
