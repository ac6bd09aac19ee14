package cmd

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcanaland/rummy/internal/sim"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play bots against each other",
	Long: `Simulate plays complete games between bots using the configured house rules
and prints a summary of the outcomes. Every seat gets slightly different bot
weights so the table does not play in lockstep.

Examples:
  rummy simulate --games 200
  rummy simulate --games 20 --rounds 0 --seed 7 -vv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		games, _ := cmd.Flags().GetInt("games")
		parallel, _ := cmd.Flags().GetInt("parallel")
		seed, _ := cmd.Flags().GetUint64("seed")
		rounds, _ := cmd.Flags().GetInt("rounds")
		players, _ := cmd.Flags().GetInt("players")
		verbose, _ := cmd.Flags().GetCount("verbose")
		top, _ := cmd.Flags().GetInt("top")
		if games < 1 {
			return fmt.Errorf("--games must be at least 1")
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		switch verbose {
		case 0:
			logger.SetLevel(logrus.WarnLevel)
		case 1:
			logger.SetLevel(logrus.InfoLevel)
		default:
			logger.SetLevel(logrus.DebugLevel)
		}

		sc := sim.FromConfig(cfg)
		sc.Seed = seed
		sc.Rounds = rounds
		sc.Logger = logger
		if parallel > 0 {
			sc.Parallelism = parallel
		}
		if cmd.Flags().Changed("players") {
			sc.Players = players
		}
		if sc.Players < 2 {
			return fmt.Errorf("need at least 2 players, have %d", sc.Players)
		}

		logger.WithFields(logrus.Fields{"games": games, "players": sc.Players, "seed": seed}).Info("starting simulation")
		sum, err := sim.RunMany(cmd.Context(), sc, games)
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), sum, sc.Players, top)
	},
}

func renderSummary(w io.Writer, sum sim.Summary, players, top int) error {
	table := func(data pterm.TableData) error {
		s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}

	pct := func(n int) string {
		if sum.Rounds == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(sum.Rounds))
	}
	data := pterm.TableData{
		{"Metric", "Value"},
		{"Games", fmt.Sprint(sum.Games)},
		{"Rounds", fmt.Sprint(sum.Rounds)},
		{"Declared", fmt.Sprintf("%d (%s)", sum.Declared, pct(sum.Declared))},
		{"Voided", fmt.Sprintf("%d (%s)", sum.Voided, pct(sum.Voided))},
		{"Turn limit", fmt.Sprintf("%d (%s)", sum.TurnLimited, pct(sum.TurnLimited))},
		{"Turns per round", fmt.Sprintf("%.1f", sum.AverageTurns())},
		{"Discard take rate", fmt.Sprintf("%.1f%%", 100*sum.DiscardTakeRate())},
		{"Reshuffles", fmt.Sprint(sum.Reshuffles)},
	}
	if err := table(data); err != nil {
		return err
	}

	seats := pterm.TableData{{"Seat", "Declarations"}}
	for i := 0; i < players; i++ {
		seats = append(seats, []string{fmt.Sprintf("bot-%d", i+1), fmt.Sprint(sum.WinsBySeat[i])})
	}
	if err := table(seats); err != nil {
		return err
	}

	if top <= 0 || len(sum.Discards) == 0 {
		return nil
	}
	faces := slices.SortedFunc(maps.Keys(sum.Discards), func(a, b string) int {
		if c := cmp.Compare(sum.Discards[b], sum.Discards[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	discards := pterm.TableData{{"Most discarded", "Count"}}
	for _, f := range faces[:min(top, len(faces))] {
		discards = append(discards, []string{f, fmt.Sprint(sum.Discards[f])})
	}
	return table(discards)
}

func init() {
	simulateCmd.Flags().IntP("games", "n", 100, "Number of games to play")
	simulateCmd.Flags().Int("parallel", 0, "Games played at once (default from config)")
	simulateCmd.Flags().Uint64("seed", 0, "Base seed; game i uses seed+i (0 picks one at random)")
	simulateCmd.Flags().Int("rounds", 1, "Rounds per game; 0 plays until one player is left")
	simulateCmd.Flags().IntP("players", "p", 0, "Players per table (default from config)")
	simulateCmd.Flags().Int("top", 5, "Show the most discarded faces")
	simulateCmd.Flags().CountP("verbose", "v", "Log rounds (-v) or every move (-vv) to stderr")
}
