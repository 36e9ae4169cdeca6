package cmd

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/ai/gemini"
	"github.com/hsinyuc/talentsift/internal/ai/openai"
	"github.com/hsinyuc/talentsift/internal/match"
	"github.com/hsinyuc/talentsift/internal/scoring"
	"github.com/hsinyuc/talentsift/internal/secrets"
	"github.com/hsinyuc/talentsift/internal/store"
)

const (
	app = "talentsift"
)

type Config struct {
	Database *DatabaseConfig `mapstructure:"database"`
	Job      *JobConfig      `mapstructure:"job"`
	Scoring  map[string]any  `mapstructure:"scoring"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type DatabaseConfig struct {
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
}

type JobConfig struct {
	Title string `mapstructure:"title"`
	File  string `mapstructure:"file"`
}

type AIConfig struct {
	Embeddings *EmbeddingsConfig `mapstructure:"embeddings"`
	Review     *ReviewConfig     `mapstructure:"review"`
}

type EmbeddingsConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	APIKey            string `mapstructure:"api-key"`
	APIKeyFile        string `mapstructure:"api-key-file"`
	Model             string `mapstructure:"model"`
	RetryAfterSeconds int    `mapstructure:"retry-after-seconds"`
}

type ReviewConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentsift parses 104 resume markdown and scores candidates against job requirements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database.dsn", "TALENTSIFT_DB_DSN"); err != nil {
		log.Fatalf("binding TALENTSIFT_DB_DSN environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentsift.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Local development keeps secrets in .env. Missing file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func openStore(config *Config, logger *zap.Logger) (*store.Store, error) {
	var src secrets.Source
	if config.Database != nil {
		src = secrets.Source{
			Name:  "database dsn",
			Value: config.Database.DSN,
			File:  config.Database.DSNFile,
			Env:   "TALENTSIFT_DB_DSN",
		}
	} else {
		src = secrets.Source{Name: "database dsn", Env: "TALENTSIFT_DB_DSN"}
	}

	dsn, err := secrets.Load(src)
	if err != nil {
		return nil, err
	}

	return store.Open(dsn, logger)
}

// buildRunner assembles the scoring runner from the configuration. AI
// providers are attached only when enabled and their keys resolve.
func buildRunner(ctx context.Context, config *Config, st *store.Store, logger *zap.Logger) (*match.Runner, error) {
	cfg, err := scoring.Decode(config.Scoring)
	if err != nil {
		return nil, err
	}

	runner := &match.Runner{
		Store:  st,
		Config: cfg,
		Logger: logger,
	}

	if config.AI == nil {
		return runner, nil
	}

	if e := config.AI.Embeddings; e != nil && e.Enabled {
		key, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: e.APIKey,
			File:  e.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		embedder, err := openai.NewEmbedder(key, e.Model, time.Duration(e.RetryAfterSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		runner.Embedder = embedder
	}

	if rv := config.AI.Review; rv != nil && rv.Enabled {
		key, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: rv.APIKey,
			File:  rv.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		generator, err := gemini.NewGenerator(ctx, key, rv.Model)
		if err != nil {
			return nil, err
		}
		runner.Opiner = gemini.NewOpiner(generator, logger, rv.MaxLogLength)
	}

	return runner, nil
}
