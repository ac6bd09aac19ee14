package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arcanaland/rummy/internal/card"
	"github.com/arcanaland/rummy/internal/deck"
	"github.com/arcanaland/rummy/internal/hand"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
)

// dealCmd represents the deal command
var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Shuffle and deal a round",
	Long: `Deal shuffles the configured number of decks, deals a hand to each player,
turns up the wildcard from the middle of the draw pile and shows which
cards are jokers.

Examples:
  rummy deal
  rummy deal --players 2 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		decks, _ := cmd.Flags().GetInt("decks")
		players, _ := cmd.Flags().GetInt("players")
		perPlayer, _ := cmd.Flags().GetInt("cards")
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("decks") {
			decks = cfg.Game.Decks
		}
		if !cmd.Flags().Changed("players") {
			players = cfg.Game.Players
		}
		if !cmd.Flags().Changed("cards") {
			perPlayer = cfg.Game.CardsPerPlayer
		}
		if decks < 1 || players < 1 || perPlayer < 1 {
			return fmt.Errorf("decks, players and cards must be positive")
		}
		if decks > deck.MaxDecks {
			return fmt.Errorf("at most %d decks, got %d", deck.MaxDecks, decks)
		}

		src := deck.Seeded(seed)
		if seed == 0 {
			src = nil
		}
		dealt := deck.Deal(deck.New(decks, src), players, perPlayer)
		draw := deck.NewPile(dealt.DrawPile)
		wildcard, ok := draw.RemoveAt(draw.Len() / 2)
		if !ok {
			return fmt.Errorf("%d decks are not enough for %d players", decks, players)
		}

		d := joker.FromWildcard(wildcard, cfg.Convention())
		engine := hand.New(validator.New(d, cfg.ValidatorRules()))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, label.Sprint("Wildcard: ")+cardString(wildcard, joker.None))
		fmt.Fprintln(out, label.Sprint("Jokers:   ")+d.Describe())
		fmt.Fprintln(out, label.Sprint("Draw:     ")+fmt.Sprintf("%d cards", draw.Len()))
		fmt.Fprintln(out)

		for i, h := range dealt.Hands {
			sorted := slices.Clone(h)
			slices.SortFunc(sorted, card.Compare)
			printWrapped(out, fmt.Sprintf("Player %d: ", i+1), sorted, d)
			if len(h) < perPlayer {
				fmt.Fprintf(out, "          short by %d cards\n", perPlayer-len(h))
			}
			if engine.IsWinning(h) {
				fmt.Fprintln(out, "          dealt a winning hand")
			}
		}
		return nil
	},
}

func init() {
	dealCmd.Flags().Int("decks", 3, "Number of decks to shuffle together")
	dealCmd.Flags().IntP("players", "p", 4, "Number of players")
	dealCmd.Flags().Int("cards", 13, "Cards per player")
	dealCmd.Flags().Uint64("seed", 0, "Shuffle seed (0 picks one at random)")
}
