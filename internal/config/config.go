package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/arcanaland/rummy/internal/bot"
	"github.com/arcanaland/rummy/internal/deck"
	"github.com/arcanaland/rummy/internal/joker"
	"github.com/arcanaland/rummy/internal/validator"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "RUMMY_CONFIG"

// Config represents the application configuration
type Config struct {
	Game  GameConfig  `toml:"game"`
	Rules RulesConfig `toml:"rules"`
	Bot   BotConfig   `toml:"bot"`
}

// GameConfig holds table setup and round limits.
type GameConfig struct {
	Decks             int    `toml:"decks"`
	Players           int    `toml:"players"`
	CardsPerPlayer    int    `toml:"cards_per_player"`
	JokerConvention   string `toml:"joker_convention"`
	ReshuffleDiscards bool   `toml:"reshuffle_discards"`
	EliminationPoints int    `toml:"elimination_points"`
	MaxTurns          int    `toml:"max_turns"`
}

// RulesConfig holds the meld variants.
type RulesConfig struct {
	AllowTanala            bool `toml:"allow_tanala"`
	TanalaIsPure           bool `toml:"tanala_is_pure"`
	NaturalJokersInPureRun bool `toml:"natural_jokers_in_pure_run"`
}

// BotConfig mirrors bot.Tuning.
type BotConfig struct {
	TakeThreshold    float64 `toml:"take_threshold"`
	CompletionWeight float64 `toml:"completion_weight"`
	ExtensionWeight  float64 `toml:"extension_weight"`
	JokerWeight      float64 `toml:"joker_weight"`
	DefensiveWeight  float64 `toml:"defensive_weight"`
	IsolationPenalty float64 `toml:"isolation_penalty"`
	FlexibilityBonus float64 `toml:"flexibility_bonus"`
	Memory           int     `toml:"memory"`
}

// Default returns the standard table: three decks, four players.
func Default() *Config {
	r := validator.DefaultRules()
	t := bot.DefaultTuning
	return &Config{
		Game: GameConfig{
			Decks:             3,
			Players:           4,
			CardsPerPlayer:    13,
			JokerConvention:   joker.AlternateOneUp.String(),
			ReshuffleDiscards: true,
			EliminationPoints: 151,
			MaxTurns:          400,
		},
		Rules: RulesConfig{
			AllowTanala:            r.AllowTanala,
			TanalaIsPure:           r.TanalaIsPure,
			NaturalJokersInPureRun: r.NaturalJokersInPureRun,
		},
		Bot: BotConfig{
			TakeThreshold:    t.TakeThreshold,
			CompletionWeight: t.CompletionWeight,
			ExtensionWeight:  t.ExtensionWeight,
			JokerWeight:      t.JokerWeight,
			DefensiveWeight:  t.DefensiveWeight,
			IsolationPenalty: t.IsolationPenalty,
			FlexibilityBonus: t.FlexibilityBonus,
			Memory:           t.Memory,
		},
	}
}

// LoadEnv reads KEY=value pairs from .env style files into the
// environment without overriding variables already set. Missing files
// are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", f, err)
		}
	}
	return nil
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(GetXDGConfigHome(), "rummy", "config.toml")
}

// LoadConfig loads the config file, writing the defaults first if it
// does not exist yet.
func LoadConfig() (*Config, error) {
	return LoadFrom(GetConfigFilePath())
}

// LoadFrom loads the config at path. Keys missing from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultConfig(path)
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := Save(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes config to path as TOML, creating the directory if needed.
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// Validate rejects settings no game can be played with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.Decks < 1 {
		errs = append(errs, fmt.Errorf("game.decks must be at least 1, got %d", c.Game.Decks))
	}
	if c.Game.Players < 2 {
		errs = append(errs, fmt.Errorf("game.players must be at least 2, got %d", c.Game.Players))
	}
	if c.Game.CardsPerPlayer != validator.HandSize {
		errs = append(errs, fmt.Errorf("game.cards_per_player must be %d, got %d", validator.HandSize, c.Game.CardsPerPlayer))
	}
	if c.Game.Decks > deck.MaxDecks {
		errs = append(errs, fmt.Errorf("game.decks must be at most %d, got %d", deck.MaxDecks, c.Game.Decks))
	}
	// The wildcard and one draw-pile card must remain after dealing.
	if c.Game.Decks >= 1 && c.Game.Decks <= deck.MaxDecks && c.Game.Players >= 2 && c.Game.CardsPerPlayer > 0 &&
		c.Game.Players > (c.Game.Decks*deck.CardsPerDeck-2)/c.Game.CardsPerPlayer {
		errs = append(errs, fmt.Errorf("%d decks cannot seat %d players", c.Game.Decks, c.Game.Players))
	}
	if _, err := joker.ParseConvention(c.Game.JokerConvention); err != nil {
		errs = append(errs, fmt.Errorf("game.joker_convention: %w", err))
	}
	if c.Game.EliminationPoints < 1 {
		errs = append(errs, fmt.Errorf("game.elimination_points must be positive"))
	}
	if c.Game.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("game.max_turns must be positive"))
	}
	if c.Bot.Memory < 0 {
		errs = append(errs, fmt.Errorf("bot.memory must not be negative"))
	}
	return errors.Join(errs...)
}

// ValidatorRules returns the meld rules described by the config.
func (c *Config) ValidatorRules() validator.Rules {
	return validator.Rules{
		AllowTanala:            c.Rules.AllowTanala,
		TanalaIsPure:           c.Rules.TanalaIsPure,
		NaturalJokersInPureRun: c.Rules.NaturalJokersInPureRun,
	}
}

// Convention returns the configured joker convention.
func (c *Config) Convention() joker.Convention {
	conv, err := joker.ParseConvention(c.Game.JokerConvention)
	if err != nil {
		return joker.AlternateOneUp
	}
	return conv
}

// Tuning returns the bot weights described by the config.
func (c *Config) Tuning() bot.Tuning {
	return bot.Tuning{
		TakeThreshold:    c.Bot.TakeThreshold,
		CompletionWeight: c.Bot.CompletionWeight,
		ExtensionWeight:  c.Bot.ExtensionWeight,
		JokerWeight:      c.Bot.JokerWeight,
		DefensiveWeight:  c.Bot.DefensiveWeight,
		IsolationPenalty: c.Bot.IsolationPenalty,
		FlexibilityBonus: c.Bot.FlexibilityBonus,
		Memory:           c.Bot.Memory,
	}
}
