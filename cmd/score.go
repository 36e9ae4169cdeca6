package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/logger"
	"github.com/hsinyuc/talentsift/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score <code-104>",
	Short: "Score one stored candidate against the configured job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func score(_ *cobra.Command, code104 string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st, err := openStore(config, logger)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}

	runner, err := buildRunner(ctx, config, st, logger)
	if err != nil {
		logger.Fatal("building the runner", zap.Error(err))
	}

	job, err := resolveJob(ctx, config, st)
	if err != nil {
		logger.Fatal("resolving the job", zap.Error(err))
	}

	outcome, err := runner.ScoreCandidate(ctx, code104, job)
	if err != nil {
		logger.Fatal("scoring candidate", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(outcome.Result, "", "  ")
	fmt.Println(string(pretty))
}

// resolveJob loads the job requirement named in the configuration, reading
// the payload file when one is configured so edits take effect immediately.
func resolveJob(ctx context.Context, config *Config, st *store.Store) (*store.Job, error) {
	if config.Job == nil || config.Job.Title == "" {
		return nil, errors.New("job title is required under the 'job' configuration key")
	}

	var payload []byte
	if config.Job.File != "" {
		data, err := os.ReadFile(config.Job.File)
		if err != nil {
			return nil, fmt.Errorf("reading job file: %w", err)
		}
		payload = data
	}

	return st.EnsureJob(ctx, config.Job.Title, payload)
}
