package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/extract"
	"github.com/hsinyuc/talentsift/internal/logger"
)

var reparseCmd = &cobra.Command{
	Use:   "reparse",
	Short: "Re-run the extractor on the stored raw markdown of every candidate",
	Long: "Re-run the extractor on the stored raw markdown of every candidate. " +
		"Useful after an extractor upgrade: no resume files are needed, the " +
		"stored markdown is the source of truth.",
	Run: func(cmd *cobra.Command, _ []string) {
		reparse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reparseCmd)
}

func reparse(_ *cobra.Command) {
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

	candidates, err := st.ListCandidates(ctx)
	if err != nil {
		logger.Fatal("listing candidates", zap.Error(err))
	}

	var updated, skipped int
	for _, c := range candidates {
		if c.RawMarkdown == "" {
			logger.Warn("candidate has no stored markdown", zap.String("code_104", c.Code104))
			skipped++
			continue
		}

		parsed := extract.Parse(c.RawMarkdown)
		if parsed.Code104 == "" {
			parsed.Code104 = c.Code104
		}

		if _, err := st.ReplaceCandidate(ctx, parsed); err != nil {
			logger.Fatal("replacing candidate", zap.String("code_104", c.Code104), zap.Error(err))
		}
		updated++
	}

	logger.Info("reparse finished", zap.Int("updated", updated), zap.Int("skipped", skipped))
}
