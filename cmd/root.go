package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/rummy/internal/config"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rummy",
	Short: "Rummy rules engine and bot",
	Long: `Rummy deals thirteen-card rummy hands, checks runs, sets and declarations,
asks the bot what it would play and runs bot-versus-bot simulations.

House rules and bot weights are read from $XDG_CONFIG_HOME/rummy/config.toml,
which is created with defaults on first use. Set RUMMY_CONFIG to use another file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			if err := os.Setenv(config.EnvConfigPath, path); err != nil {
				return err
			}
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		setupColor(noColor)

		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides RUMMY_CONFIG)")
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	RootCmd.AddCommand(dealCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(botCmd)
	RootCmd.AddCommand(simulateCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}
