package config

import (
	"os"
	"time"

	"drawpoker-server/internal/util"
	"drawpoker-server/pkg/poker/draw"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the draw poker server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	}
	Game struct {
		StartingChips      int `yaml:"startingChips" envconfig:"starting_chips"`
		SmallBlind         int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind           int `yaml:"bigBlind" envconfig:"big_blind"`
		Ante               int `yaml:"ante"`
		MinBet             int `yaml:"minBet" envconfig:"min_bet"`
		MaxRaiseMultiplier int `yaml:"maxRaiseMultiplier" envconfig:"max_raise_multiplier"`
		MaxRaisesPerRound  int `yaml:"maxRaisesPerRound" envconfig:"max_raises_per_round"`
		MaxRounds          int `yaml:"maxRounds" envconfig:"max_rounds"`

		// DecisionTimeout is in seconds
		DecisionTimeout int `yaml:"decisionTimeout" envconfig:"decision_timeout"`
		RetryBudget     int `yaml:"retryBudget" envconfig:"retry_budget"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is fine;
// the environment alone can configure the server.
func Load() error {
	config = defaults()

	configFile := util.Getenv("DP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("dp", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

func defaults() Config {
	var c Config
	options := draw.DefaultOptions()

	c.Log.Level = "info"
	c.Game.StartingChips = options.StartingChips
	c.Game.SmallBlind = options.SmallBlind
	c.Game.BigBlind = options.BigBlind
	c.Game.DecisionTimeout = int(options.DecisionTimeout / time.Second)
	c.Game.RetryBudget = options.RetryBudget

	return c
}

// GameOptions returns the configured table rules
func (c Config) GameOptions() draw.Options {
	options := draw.DefaultOptions()
	options.StartingChips = c.Game.StartingChips
	options.SmallBlind = c.Game.SmallBlind
	options.BigBlind = c.Game.BigBlind
	options.Ante = c.Game.Ante
	options.MinBet = c.Game.MinBet
	options.MaxRaiseMultiplier = c.Game.MaxRaiseMultiplier
	options.MaxRaisesPerRound = c.Game.MaxRaisesPerRound
	options.MaxRounds = c.Game.MaxRounds
	options.DecisionTimeout = time.Duration(c.Game.DecisionTimeout) * time.Second
	options.RetryBudget = c.Game.RetryBudget

	return options
}
