package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/funnel"
	"github.com/hsinyuc/talentsift/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every stored candidate against the configured job and print the ranking",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("concurrency", "c", 4, "number of candidates scored in parallel")
	batchCmd.Flags().IntP("top", "t", 20, "size of the printed ranking")
	batchCmd.Flags().BoolP("force", "f", false, "re-score candidates that already have a current result")
	batchCmd.Flags().StringP("exclude-file", "e", "", "file with 104 codes to skip, one per line")
}

func batch(cmd *cobra.Command) {
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

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	top, _ := cmd.Flags().GetInt("top")
	force, _ := cmd.Flags().GetBool("force")
	excludeFile, _ := cmd.Flags().GetString("exclude-file")

	runner.Filters = []funnel.Filter{
		funnel.NewRequireMarkdown(),
		funnel.NewExcludeFile(excludeFile),
		funnel.NewSkipScored(force),
	}

	outcomes, err := runner.ScoreAll(ctx, job, concurrency)
	if err != nil {
		logger.Fatal("batch scoring", zap.Error(err))
	}

	logger.Info("batch finished",
		zap.String("job", job.Title),
		zap.Int("scored", len(outcomes)),
	)

	ranked, err := st.TopMatches(ctx, job.ID, top)
	if err != nil {
		logger.Fatal("loading the ranking", zap.Error(err))
	}

	for i, row := range ranked {
		status := "passed"
		if !row.PassedHardFilter {
			status = "filtered"
		}
		fmt.Printf("%2d. candidate=%d score=%.1f tier=%d (%s)\n",
			i+1, row.CandidateID, row.OverallScore, row.Tier, status)
	}
}
